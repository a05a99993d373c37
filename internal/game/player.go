package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

// Intent is the continuous movement input. Forward is +1 ahead, -1 back;
// Right is +1 strafe right, -1 left.
type Intent struct {
	Forward float64
	Right   float64
}

func (in Intent) Zero() bool { return in.Forward == 0 && in.Right == 0 }

const maxPitch = math.Pi / 2

// Player is the first-person pose. Yaw 0 looks down -Z; positive yaw turns
// left, positive pitch looks up.
type Player struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

func NewPlayer() Player {
	return Player{Position: mgl64.Vec3{0, world.PlayerHeight, 0}}
}

// Look applies a pointer delta in pixels. Moving right turns right; moving
// down looks down.
func (p *Player) Look(dx, dy, sensitivity float64) {
	p.Yaw -= dx * sensitivity
	p.Pitch -= dy * sensitivity
	p.Pitch = math.Max(-maxPitch, math.Min(maxPitch, p.Pitch))
}

// Forward is the unit view direction.
func (p *Player) Forward() mgl64.Vec3 {
	sy, cy := math.Sincos(p.Yaw)
	sp, cp := math.Sincos(p.Pitch)
	return mgl64.Vec3{-sy * cp, sp, -cy * cp}
}

// Heading is the view direction flattened onto the ground plane.
func (p *Player) Heading() mgl64.Vec3 {
	sy, cy := math.Sincos(p.Yaw)
	return mgl64.Vec3{-sy, 0, -cy}
}

// RightAxis is the ground-plane strafe direction.
func (p *Player) RightAxis() mgl64.Vec3 {
	sy, cy := math.Sincos(p.Yaw)
	return mgl64.Vec3{cy, 0, -sy}
}

func (p *Player) Pose() world.Pose {
	return world.Pose{Position: p.Position, Forward: p.Forward()}
}

// Displacement turns intent into this frame's horizontal move: normalized,
// then scaled by PlayerSpeed*dt. Pitch does not slow ground movement.
func (p *Player) Displacement(in Intent, dt float64) mgl64.Vec3 {
	if in.Zero() || dt <= 0 {
		return mgl64.Vec3{}
	}
	dir := p.Heading().Mul(in.Forward).Add(p.RightAxis().Mul(in.Right))
	l := dir.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return dir.Mul(world.PlayerSpeed * dt / l)
}
