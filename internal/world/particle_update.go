package world

import "github.com/go-gl/mathgl/mgl64"

var gravity = mgl64.Vec3{0, ParticleGravity, 0}

// Advance ages every active particle by dt: expired ones are deactivated, the
// rest get gravity, an explicit Euler position step and a fade alpha.
func (ps *ParticlePool) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range ps.P {
		p := &ps.P[i]
		if !p.Active {
			continue
		}
		p.Life -= dt
		if p.Life <= 0 {
			p.Active = false
			p.Alpha = 0
			ps.active--
			continue
		}
		p.Vel = p.Vel.Add(gravity.Mul(dt))
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Alpha = clampF(p.Life/p.MaxLife, 0, 1)
	}
}
