package world

import "github.com/go-gl/mathgl/mgl64"

// Particle is one slot of the pool. Inactive slots keep their last values.
type Particle struct {
	Active  bool
	Pos     mgl64.Vec3
	Vel     mgl64.Vec3
	Life    float64 // seconds remaining
	MaxLife float64
	Alpha   float64 // Life/MaxLife clamped to [0,1]
}

// ParticlePool is a closed, fixed-capacity pool: slots are allocated once and
// only flip between active and inactive.
type ParticlePool struct {
	P         []Particle
	PerEffect int

	active int
	rng    *Rand
}

func NewParticlePool(maxParticles int, seed uint64) *ParticlePool {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticlePool{
		P:         make([]Particle, maxParticles),
		PerEffect: ParticlesPerEffect,
		rng:       NewRand(MixSeed(seed, 0xBEAD)),
	}
}

func (ps *ParticlePool) Cap() int         { return len(ps.P) }
func (ps *ParticlePool) ActiveCount() int { return ps.active }

// Reset deactivates every slot.
func (ps *ParticlePool) Reset() {
	for i := range ps.P {
		ps.P[i].Active = false
		ps.P[i].Alpha = 0
	}
	ps.active = 0
}

// Each visits active particles.
func (ps *ParticlePool) Each(fn func(p *Particle)) {
	for i := range ps.P {
		if ps.P[i].Active {
			fn(&ps.P[i])
		}
	}
}

// RenderData appends [x, y, z, alpha] per active particle.
func (ps *ParticlePool) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	for i := range ps.P {
		p := &ps.P[i]
		if !p.Active || p.Alpha <= 0 {
			continue
		}
		buf = append(buf, float32(p.Pos[0]), float32(p.Pos[1]), float32(p.Pos[2]), float32(p.Alpha))
	}
	return buf
}
