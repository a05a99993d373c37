package world

import (
	"io"
	"log"
	"math"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func checkSpacing(t *testing.T, w *World, spacing float64) {
	t.Helper()
	var objs []*Object
	w.Objects.Each(func(o *Object) bool {
		objs = append(objs, o)
		return true
	})
	for i := 0; i < len(objs); i++ {
		for j := i + 1; j < len(objs); j++ {
			a, b := objs[i], objs[j]
			need := a.Radius + b.Radius + spacing
			if d := a.Position.Sub(b.Position).Len(); d < need-1e-9 {
				t.Fatalf("%v and %v too close: %.4f < %.4f", a.ID, b.ID, d, need)
			}
		}
	}
}

func TestGenerateKeepsSpacing(t *testing.T) {
	for _, seed := range []uint64{1, 2, 7, 42, 1337} {
		w := NewGenerator(DefaultParams(), seed).Generate()
		checkSpacing(t, w, MinSpacing)

		half := AreaSize / 2
		w.Objects.Each(func(o *Object) bool {
			if math.Abs(o.Position[0]) > half || math.Abs(o.Position[2]) > half {
				t.Fatalf("seed %d: %v outside area at %v", seed, o.ID, o.Position)
			}
			if o.Radius < 0.15 {
				t.Fatalf("seed %d: radius %.3f below minimum", seed, o.Radius)
			}
			return true
		})
	}
}

func TestGenerateTargetAccounting(t *testing.T) {
	for _, seed := range []uint64{3, 99, 2024} {
		w := NewGenerator(DefaultParams(), seed).Generate()
		st := w.Stats

		if st.Attempted != ObjectCount {
			t.Fatalf("attempted=%d want %d", st.Attempted, ObjectCount)
		}
		if st.Placed+st.Dropped != st.Attempted {
			t.Fatalf("placed %d + dropped %d != attempted %d", st.Placed, st.Dropped, st.Attempted)
		}
		if st.Targets > TargetCount {
			t.Fatalf("targets=%d exceeds %d", st.Targets, TargetCount)
		}
		if st.Targets != TargetCount-st.DroppedTargets {
			t.Fatalf("targets=%d dropped=%d", st.Targets, st.DroppedTargets)
		}
		if w.Labels.Len() != st.Targets {
			t.Fatalf("labels=%d targets=%d", w.Labels.Len(), st.Targets)
		}

		ordinals := map[int]bool{}
		w.Objects.EachTarget(func(o *Object) bool {
			if o.Shape.Kind != ShapeCylinder {
				t.Fatalf("target %v has shape %s", o.ID, o.Shape.Kind)
			}
			if o.Ordinal < 1 || o.Ordinal > TargetCount || ordinals[o.Ordinal] {
				t.Fatalf("bad ordinal %d", o.Ordinal)
			}
			ordinals[o.Ordinal] = true

			l, ok := w.Labels.Get(o.ID)
			if !ok {
				t.Fatalf("target %v has no label", o.ID)
			}
			if l.Visible {
				t.Fatalf("label %s starts visible", l.Text)
			}
			wantY := o.Position[1] + o.Height/2 + LabelAnchorOffset
			if math.Abs(l.Anchor[1]-wantY) > 1e-9 {
				t.Fatalf("anchor y=%.3f want %.3f", l.Anchor[1], wantY)
			}
			return true
		})
	}
}

func TestGenerateSparseAreaPlacesAllTargets(t *testing.T) {
	p := DefaultParams()
	p.Objects = 20
	w := NewGenerator(p, 11).Generate()

	if w.Stats.Targets != TargetCount {
		t.Fatalf("targets=%d want %d", w.Stats.Targets, TargetCount)
	}
	if w.Objects.Len() != 20 {
		t.Fatalf("placed=%d want 20", w.Objects.Len())
	}
}

func TestGenerateCrowdedAreaDropsSilently(t *testing.T) {
	p := Params{Objects: 50, Targets: 5, AreaSize: 3, MinSpacing: MinSpacing, MaxAttempts: MaxPlacementAttempts}
	w := NewGenerator(p, 5).Generate()

	if w.Stats.Dropped == 0 {
		t.Fatal("expected drops in a 3x3 area")
	}
	if w.Objects.Len() >= 50 {
		t.Fatalf("placed %d of 50 in a 3x3 area", w.Objects.Len())
	}
	checkSpacing(t, w, MinSpacing)
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(DefaultParams(), 77).Generate()
	b := NewGenerator(DefaultParams(), 77).Generate()
	if a.Objects.Len() != b.Objects.Len() {
		t.Fatalf("len %d vs %d", a.Objects.Len(), b.Objects.Len())
	}
	var pa, pb []Object
	a.Objects.Each(func(o *Object) bool { pa = append(pa, *o); return true })
	b.Objects.Each(func(o *Object) bool { pb = append(pb, *o); return true })
	for i := range pa {
		if pa[i].Position != pb[i].Position || pa[i].Shape != pb[i].Shape {
			t.Fatalf("object %d differs", i)
		}
	}
}

func TestShapeRestsOnGround(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  float64
	}{
		{"cylinder", Shape{Kind: ShapeCylinder, Radius: 0.5, Height: 2}, 1},
		{"cube", Shape{Kind: ShapeCube, Size: 1.4}, 0.7},
		{"sphere", Shape{Kind: ShapeSphere, Radius: 0.9}, 0.9},
		{"cone", Shape{Kind: ShapeCone, Radius: 0.6, Height: 1.8}, 0.9},
		{"tree", Shape{Kind: ShapeTree, TrunkRadius: 0.2, TrunkHeight: 1.2, FoliageRadius: 0.8, FoliageHeight: 2}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.RestY(); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("RestY=%.3f want %.3f", got, tt.want)
			}
		})
	}
}

func TestTreeFootprintUsesFoliage(t *testing.T) {
	s := Shape{Kind: ShapeTree, TrunkRadius: 0.2, TrunkHeight: 1.2, FoliageRadius: 0.8, FoliageHeight: 2}
	r, h := s.Footprint()
	if r != 0.8 || math.Abs(h-3.2) > 1e-9 {
		t.Fatalf("footprint r=%.2f h=%.2f", r, h)
	}
	parts := s.AppendParts(nil, mgl64.Vec3{0, s.RestY(), 0})
	if len(parts) != 2 || parts[0].Kind != PrimCylinder || parts[1].Kind != PrimCone {
		t.Fatalf("tree parts %+v", parts)
	}
	// Foliage sits directly on the trunk top.
	if want := 1.2 + 1.0; math.Abs(parts[1].Center[1]-want) > 1e-9 {
		t.Fatalf("foliage centre y=%.2f want %.2f", parts[1].Center[1], want)
	}
}
