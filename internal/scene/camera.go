package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

// Camera and environment constants.
const (
	FovY       = 70.0 // degrees
	NearPlane  = 0.1
	FarPlane   = 150.0
	FogNear    = 30.0
	FogFar     = world.AreaSize * 0.8
	GroundSize = world.AreaSize * 1.5
)

var (
	Background  = world.HexRGB(0x050a10)
	GroundColor = world.HexRGB(0x1a2a1a)
	AmbientSky  = world.HexRGB(0x607080)
)

// Camera is a first-person eye with yaw about +Y and pitch about the local X
// axis. Yaw 0 looks down -Z.
type Camera struct {
	Eye        mgl32.Vec3
	Yaw, Pitch float32
	Aspect     float32
}

func NewCamera(eye mgl64.Vec3, yaw, pitch float64, fbW, fbH int) Camera {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return Camera{Eye: Vec32(eye), Yaw: float32(yaw), Pitch: float32(pitch), Aspect: aspect}
}

func (c Camera) Forward() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	return mgl32.Vec3{float32(-sy * cp), float32(sp), float32(-cy * cp)}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Eye.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FovY), c.Aspect, NearPlane, FarPlane)
}

func (c Camera) ViewProj() mgl32.Mat4 { return c.Projection().Mul4(c.View()) }

// EyeToWorld is the inverse view: it places camera-local geometry such as
// the gun in the world.
func (c Camera) EyeToWorld() mgl32.Mat4 {
	return mgl32.Translate3D(c.Eye[0], c.Eye[1], c.Eye[2]).
		Mul4(mgl32.HomogRotate3DY(c.Yaw)).
		Mul4(mgl32.HomogRotate3DX(c.Pitch))
}

// Project maps a world point to framebuffer pixels with the origin at the top
// left. ok is false for points behind the eye or outside the depth range.
func (c Camera) Project(p mgl32.Vec3, fbW, fbH int) (x, y float32, ok bool) {
	clip := c.ViewProj().Mul4x1(p.Vec4(1))
	if clip[3] <= NearPlane {
		return 0, 0, false
	}
	win := mgl32.Project(p, c.View(), c.Projection(), 0, 0, fbW, fbH)
	if win[2] < 0 || win[2] > 1 {
		return 0, 0, false
	}
	return win[0], float32(fbH) - win[1], true
}

// Vec32 narrows a world vector for rendering.
func Vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
