package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectID is a generation-tagged handle: low 32 bits slot index, high 32 bits
// generation. The zero ID never names a live object.
type ObjectID uint64

func makeID(index, gen uint32) ObjectID { return ObjectID(uint64(gen)<<32 | uint64(index)) }

func (id ObjectID) Index() uint32 { return uint32(id) }
func (id ObjectID) Gen() uint32   { return uint32(id >> 32) }

func (id ObjectID) String() string { return fmt.Sprintf("obj#%d.%d", id.Index(), id.Gen()) }

// Object is one placed entity. Objects never move after placement.
type Object struct {
	ID       ObjectID
	Shape    Shape
	Position mgl64.Vec3
	Radius   float64 // horizontal bounding radius
	Height   float64
	IsTarget bool
	Ordinal  int // 1-based, targets only
	Color    RGB

	Parts []Part // world-space solids, filled by Registry.Add
}

// Top is the centre of the object's top face, used as the label ray anchor.
func (o *Object) Top() mgl64.Vec3 {
	return mgl64.Vec3{o.Position[0], o.Position[1] + o.Height/2, o.Position[2]}
}

type slot struct {
	obj  Object
	gen  uint32
	live bool
	tpos int32 // index into Registry.targets, -1 for non-targets
}

// Registry is the authoritative arena of placed objects plus the target-only
// subset. Iteration order is slot order, which equals placement order until a
// freed slot is reused.
type Registry struct {
	slots   []slot
	free    []uint32
	count   int
	targets []ObjectID
}

func NewRegistry(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{slots: make([]slot, 0, capacity)}
}

// Add stores obj, assigns its ID and precomputes its solids.
func (r *Registry) Add(obj Object) ObjectID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.gen++
	s.live = true
	s.tpos = -1

	obj.ID = makeID(idx, s.gen)
	obj.Parts = obj.Shape.AppendParts(s.obj.Parts[:0], obj.Position)
	s.obj = obj
	r.count++

	if obj.IsTarget {
		s.tpos = int32(len(r.targets))
		r.targets = append(r.targets, obj.ID)
	}
	return obj.ID
}

func (r *Registry) slotOf(id ObjectID) *slot {
	idx := id.Index()
	if int(idx) >= len(r.slots) {
		return nil
	}
	s := &r.slots[idx]
	if !s.live || s.gen != id.Gen() {
		return nil
	}
	return s
}

// Get returns the live object for id. The pointer is valid until the object is
// removed.
func (r *Registry) Get(id ObjectID) (*Object, bool) {
	s := r.slotOf(id)
	if s == nil {
		return nil, false
	}
	return &s.obj, true
}

func (r *Registry) Alive(id ObjectID) bool { return r.slotOf(id) != nil }

// Remove deletes the object and drops it from the target subset in O(1).
// Returns false when id is stale or unknown.
func (r *Registry) Remove(id ObjectID) bool {
	s := r.slotOf(id)
	if s == nil {
		return false
	}
	if s.tpos >= 0 {
		last := len(r.targets) - 1
		moved := r.targets[last]
		r.targets[s.tpos] = moved
		r.slots[moved.Index()].tpos = s.tpos
		r.targets = r.targets[:last]
	}
	s.live = false
	s.tpos = -1
	s.obj = Object{Parts: s.obj.Parts[:0]}
	r.free = append(r.free, id.Index())
	r.count--
	return true
}

func (r *Registry) Len() int         { return r.count }
func (r *Registry) TargetCount() int { return len(r.targets) }

// Targets returns the live target IDs. The slice is owned by the registry and
// is reordered by Remove.
func (r *Registry) Targets() []ObjectID { return r.targets }

// Each calls fn for every live object in slot order until fn returns false.
func (r *Registry) Each(fn func(o *Object) bool) {
	for i := range r.slots {
		s := &r.slots[i]
		if !s.live {
			continue
		}
		if !fn(&s.obj) {
			return
		}
	}
}

// EachTarget calls fn for every live target until fn returns false.
func (r *Registry) EachTarget(fn func(o *Object) bool) {
	for _, id := range r.targets {
		if !fn(&r.slots[id.Index()].obj) {
			return
		}
	}
}
