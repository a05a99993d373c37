package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

// ShotResult describes one fire attempt.
type ShotResult struct {
	Fired  bool // ammo was spent
	Hit    bool
	Target world.ObjectID
	Point  mgl64.Vec3
	Won    bool
}

// Shooter resolves fire events against the target subset. It owns the only
// object removal path in the game.
type Shooter struct {
	World     *world.World
	Caster    world.Caster
	Particles *world.ParticlePool
	// Range bounds the shot ray; zero means unbounded.
	Range float64
}

// Resolve casts ray against targets only. When the nearest hit is a live
// target it is removed together with its label and a burst is spawned at the
// hit point. Hits on anything already removed count as a miss.
func (s *Shooter) Resolve(ray world.Ray) (world.Hit, bool) {
	far := s.Range
	if far <= 0 {
		far = math.Inf(1)
	}
	hits := s.Caster.Cast(ray, far, world.ScopeTargets)
	if len(hits) == 0 {
		return world.Hit{}, false
	}
	h := hits[0]
	obj, ok := s.World.Objects.Get(h.Object)
	if !ok || !obj.IsTarget {
		return world.Hit{}, false
	}
	if !s.World.Objects.Remove(h.Object) {
		return world.Hit{}, false
	}
	s.World.Labels.Remove(h.Object)
	if s.Particles != nil {
		s.Particles.Spawn(h.Point)
	}
	return h, true
}
