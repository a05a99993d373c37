package world

import "github.com/go-gl/mathgl/mgl64"

// Spawn activates up to PerEffect free slots at origin with an upward and
// outward burst. When fewer slots are free only those are used. Returns the
// number activated.
func (ps *ParticlePool) Spawn(origin mgl64.Vec3) int {
	r := ps.rng
	spawned := 0
	for i := 0; i < len(ps.P) && spawned < ps.PerEffect; i++ {
		p := &ps.P[i]
		if p.Active {
			continue
		}
		life := r.RangeF(ParticleMinLife, ParticleMaxLife)
		*p = Particle{
			Active:  true,
			Pos:     origin,
			Vel:     mgl64.Vec3{(r.Float64() - 0.5) * 6, r.Float64()*5 + 3, (r.Float64() - 0.5) * 6},
			Life:    life,
			MaxLife: life,
			Alpha:   1,
		}
		spawned++
	}
	ps.active += spawned
	return spawned
}
