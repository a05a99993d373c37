package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var lookNorth = Pose{Position: mgl64.Vec3{0, PlayerHeight, 0}, Forward: mgl64.Vec3{0, 0, -1}}

func targetWorld(t *testing.T, x, z float64) (*World, ObjectID) {
	t.Helper()
	w := NewWorld(8)
	o := cylinderAt(x, z, 0.5, 2)
	o.Ordinal = 1
	return w, w.PlaceTarget(o)
}

func TestLabelVisible(t *testing.T) {
	tests := []struct {
		name     string
		targetZ  float64
		pose     Pose
		blockerZ float64 // zero means no blocker
		want     bool
	}{
		{"clear line", -10, lookNorth, 0, true},
		{"beyond range", -36, lookNorth, 0, false},
		{"edge of range", -34.9, lookNorth, 0, true},
		{"facing away", -10, Pose{Position: lookNorth.Position, Forward: mgl64.Vec3{0, 0, 1}}, 0, false},
		{"outside cone", -10, Pose{Position: lookNorth.Position, Forward: mgl64.Vec3{1, 0, 0}}, 0, false},
		{"occluded", -10, lookNorth, -5, false},
		{"blocker behind target", -10, lookNorth, -15, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, id := targetWorld(t, 0, tt.targetZ)
			if tt.blockerZ != 0 {
				w.Objects.Add(cubeAt(0, tt.blockerZ, 2))
			}
			obj, _ := w.Objects.Get(id)
			got := LabelVisible(tt.pose, obj, NewSceneCaster(w.Objects))
			if got != tt.want {
				t.Fatalf("visible=%v want %v", got, tt.want)
			}
		})
	}
}

type emptyCaster struct{}

func (emptyCaster) Cast(Ray, float64, Scope) []Hit { return nil }

func TestLabelHiddenWhenRayHitsNothing(t *testing.T) {
	w, id := targetWorld(t, 0, -3)
	obj, _ := w.Objects.Get(id)
	if LabelVisible(lookNorth, obj, emptyCaster{}) {
		t.Fatal("a ray with no hits must hide the label")
	}
}

func TestLabelHiddenAtAnyDistanceBeyondRange(t *testing.T) {
	rng := NewRand(9)
	for i := 0; i < 200; i++ {
		d := rng.RangeF(LabelVisibilityDistance+0.01, 60)
		w, id := targetWorld(t, 0, -d)
		obj, _ := w.Objects.Get(id)
		if LabelVisible(lookNorth, obj, NewSceneCaster(w.Objects)) {
			t.Fatalf("visible at %.2f", d)
		}
	}
}

func TestCullerThrottle(t *testing.T) {
	w, id := targetWorld(t, 0, -10)
	c := NewCuller()
	caster := NewSceneCaster(w.Objects)
	label, _ := w.Labels.Get(id)

	for i := 0; i < 2; i++ {
		if c.Update(0.1, lookNorth, w, caster, false) {
			t.Fatalf("recomputed after %d short frames", i+1)
		}
	}
	if label.Visible {
		t.Fatal("label changed before the interval elapsed")
	}
	if !c.Update(0.1, lookNorth, w, caster, false) {
		t.Fatal("no recompute after 0.3s")
	}
	if !label.Visible {
		t.Fatal("label should be visible")
	}

	turned := Pose{Position: lookNorth.Position, Forward: mgl64.Vec3{0, 0, 1}}
	if !c.Update(0, turned, w, caster, true) {
		t.Fatal("forced update skipped")
	}
	if label.Visible {
		t.Fatal("forced update did not hide label")
	}
}

func TestCullerPrunesRemovedTargets(t *testing.T) {
	w, id := targetWorld(t, 0, -10)
	other := cylinderAt(3, -10, 0.5, 2)
	other.Ordinal = 2
	keep := w.PlaceTarget(other)

	var detached []ObjectID
	c := NewCuller()
	c.OnDetach = func(target ObjectID) { detached = append(detached, target) }

	w.Objects.Remove(id)
	// Pruning runs even when the throttle skips the recompute.
	c.Update(0, lookNorth, w, NewSceneCaster(w.Objects), false)

	if len(detached) != 1 || detached[0] != id {
		t.Fatalf("detached %v", detached)
	}
	if _, ok := w.Labels.Get(id); ok {
		t.Fatal("orphan label kept")
	}
	if _, ok := w.Labels.Get(keep); !ok || w.Labels.Len() != 1 {
		t.Fatal("live label lost")
	}
}

func TestLabelAnchorAboveTarget(t *testing.T) {
	w, id := targetWorld(t, 2, -4)
	l, ok := w.Labels.Get(id)
	if !ok || l.Text != "1" {
		t.Fatalf("label %+v", l)
	}
	if math.Abs(l.Anchor[1]-(1+1+LabelAnchorOffset)) > 1e-9 || l.Anchor[0] != 2 || l.Anchor[2] != -4 {
		t.Fatalf("anchor %v", l.Anchor)
	}
}
