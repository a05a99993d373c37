package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func cylinderAt(x, z, r, h float64) Object {
	return Object{
		Shape:    Shape{Kind: ShapeCylinder, Radius: r, Height: h},
		Position: mgl64.Vec3{x, h / 2, z},
		Radius:   r,
		Height:   h,
	}
}

func cubeAt(x, z, size float64) Object {
	s := Shape{Kind: ShapeCube, Size: size}
	r, h := s.Footprint()
	return Object{Shape: s, Position: mgl64.Vec3{x, s.RestY(), z}, Radius: r, Height: h}
}

func TestRegistryAddGet(t *testing.T) {
	reg := NewRegistry(4)
	a := reg.Add(cubeAt(1, 2, 1))
	b := reg.Add(cubeAt(3, 4, 1))

	if a == b {
		t.Fatalf("ids must differ: %v %v", a, b)
	}
	if reg.Alive(0) {
		t.Fatal("zero id must never be alive")
	}
	o, ok := reg.Get(b)
	if !ok {
		t.Fatal("expected b to be live")
	}
	if o.ID != b || o.Position[0] != 3 {
		t.Fatalf("wrong object: %+v", o)
	}
	if len(o.Parts) != 1 || o.Parts[0].Kind != PrimBox {
		t.Fatalf("parts not precomputed: %+v", o.Parts)
	}
	if reg.Len() != 2 {
		t.Fatalf("len=%d want 2", reg.Len())
	}
}

func TestRegistryRemoveSwapsTargetSubset(t *testing.T) {
	reg := NewRegistry(8)
	var ids []ObjectID
	for i := 0; i < 4; i++ {
		o := cylinderAt(float64(i*5), 0, 0.5, 2)
		o.IsTarget = true
		o.Ordinal = i + 1
		ids = append(ids, reg.Add(o))
		reg.Add(cubeAt(float64(i*5), 5, 1))
	}
	if reg.TargetCount() != 4 {
		t.Fatalf("targets=%d want 4", reg.TargetCount())
	}

	if !reg.Remove(ids[1]) {
		t.Fatal("remove of live target failed")
	}
	if reg.Remove(ids[1]) {
		t.Fatal("second remove must report false")
	}
	if reg.Alive(ids[1]) {
		t.Fatal("removed target still alive")
	}
	if reg.TargetCount() != 3 || reg.Len() != 7 {
		t.Fatalf("targets=%d len=%d", reg.TargetCount(), reg.Len())
	}

	seen := map[ObjectID]bool{}
	for _, id := range reg.Targets() {
		seen[id] = true
		o, ok := reg.Get(id)
		if !ok || !o.IsTarget {
			t.Fatalf("target subset holds bad id %v", id)
		}
	}
	for _, id := range []ObjectID{ids[0], ids[2], ids[3]} {
		if !seen[id] {
			t.Fatalf("target %v missing after swap-and-pop", id)
		}
	}

	// The moved entry must still be removable in O(1).
	if !reg.Remove(ids[3]) || reg.TargetCount() != 2 {
		t.Fatalf("remove of moved target failed, targets=%d", reg.TargetCount())
	}
}

func TestRegistryReusedSlotGetsNewGeneration(t *testing.T) {
	reg := NewRegistry(2)
	old := reg.Add(cubeAt(0, 0, 1))
	reg.Remove(old)
	fresh := reg.Add(cubeAt(9, 9, 1))

	if fresh.Index() != old.Index() {
		t.Fatalf("expected slot reuse, got %v after %v", fresh, old)
	}
	if fresh.Gen() == old.Gen() {
		t.Fatal("reused slot must bump generation")
	}
	if reg.Alive(old) {
		t.Fatal("stale id resolved to the new occupant")
	}
}

func TestRegistryEachVisitsInPlacementOrder(t *testing.T) {
	reg := NewRegistry(5)
	for i := 0; i < 5; i++ {
		reg.Add(cubeAt(float64(i), 0, 1))
	}
	reg.Remove(makeID(2, 1))

	var xs []float64
	reg.Each(func(o *Object) bool {
		xs = append(xs, o.Position[0])
		return true
	})
	want := []float64{0, 1, 3, 4}
	if len(xs) != len(want) {
		t.Fatalf("visited %v want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("visited %v want %v", xs, want)
		}
	}
}
