package world

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Label is the on-screen marker bound to one live target.
type Label struct {
	Target  ObjectID
	Ordinal int
	Text    string
	Anchor  mgl64.Vec3
	Visible bool
}

// LabelSet maps target IDs to their labels. Removal is O(1) swap-and-pop.
type LabelSet struct {
	labels []*Label
	pos    map[ObjectID]int
}

func NewLabelSet() *LabelSet {
	return &LabelSet{pos: make(map[ObjectID]int)}
}

// Bind creates a hidden label for target. Rebinding replaces the anchor.
func (s *LabelSet) Bind(target ObjectID, ordinal int, anchor mgl64.Vec3) *Label {
	if i, ok := s.pos[target]; ok {
		l := s.labels[i]
		l.Anchor = anchor
		return l
	}
	l := &Label{Target: target, Ordinal: ordinal, Text: strconv.Itoa(ordinal), Anchor: anchor}
	s.pos[target] = len(s.labels)
	s.labels = append(s.labels, l)
	return l
}

func (s *LabelSet) Get(target ObjectID) (*Label, bool) {
	i, ok := s.pos[target]
	if !ok {
		return nil, false
	}
	return s.labels[i], true
}

func (s *LabelSet) Remove(target ObjectID) bool {
	i, ok := s.pos[target]
	if !ok {
		return false
	}
	last := len(s.labels) - 1
	moved := s.labels[last]
	s.labels[i] = moved
	s.pos[moved.Target] = i
	s.labels[last] = nil
	s.labels = s.labels[:last]
	delete(s.pos, target)
	return true
}

func (s *LabelSet) Len() int { return len(s.labels) }

// Each visits every label. fn must not add or remove labels.
func (s *LabelSet) Each(fn func(l *Label)) {
	for _, l := range s.labels {
		fn(l)
	}
}

// Pose is the camera position and unit forward vector.
type Pose struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
}

// Culler recomputes label visibility at most once per Interval.
type Culler struct {
	Interval float64
	// OnDetach is called for each binding dropped because its target left
	// the registry.
	OnDetach func(target ObjectID)

	acc float64
}

func NewCuller() *Culler {
	return &Culler{Interval: LabelUpdateInterval}
}

// Update drops orphaned bindings, then recomputes visibility when the
// throttle interval has elapsed or force is set. Reports whether a recompute
// happened.
func (c *Culler) Update(dt float64, pose Pose, w *World, caster Caster, force bool) bool {
	c.prune(w)

	c.acc += dt
	if c.acc < c.Interval && !force {
		return false
	}
	c.acc = 0

	w.Labels.Each(func(l *Label) {
		obj, ok := w.Objects.Get(l.Target)
		if !ok {
			l.Visible = false
			return
		}
		l.Visible = LabelVisible(pose, obj, caster)
	})
	return true
}

func (c *Culler) prune(w *World) {
	var orphans []ObjectID
	w.Labels.Each(func(l *Label) {
		if !w.Objects.Alive(l.Target) {
			orphans = append(orphans, l.Target)
		}
	})
	for _, id := range orphans {
		w.Labels.Remove(id)
		if c.OnDetach != nil {
			c.OnDetach(id)
		}
	}
}

// LabelVisible reports whether target's label should show from pose: within
// LabelVisibilityDistance, inside the facing cone, and with the nearest ray
// hit toward the target top belonging to the target itself. A ray that hits
// nothing counts as occluded.
func LabelVisible(pose Pose, target *Object, caster Caster) bool {
	toCenter := target.Position.Sub(pose.Position)
	dist := toCenter.Len()
	if dist > LabelVisibilityDistance {
		return false
	}
	if dist < rayEps {
		return false
	}
	if pose.Forward.Dot(toCenter.Mul(1/dist)) < LabelFacingDot {
		return false
	}

	ray, _, ok := RayToward(pose.Position, target.Top())
	if !ok {
		return false
	}
	hits := caster.Cast(ray, dist+LabelRayPadding, ScopeAll)
	if len(hits) == 0 {
		return false
	}
	return hits[0].Object == target.ID
}
