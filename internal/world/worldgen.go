package world

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Params controls world generation.
type Params struct {
	Objects     int     // total placement requests, targets included
	Targets     int     // how many of Objects are targets
	AreaSize    float64 // side length of the square placement area
	MinSpacing  float64 // gap required between bounding circles
	MaxAttempts int     // position samples per object before it is dropped
}

func DefaultParams() Params {
	return Params{
		Objects:     ObjectCount,
		Targets:     TargetCount,
		AreaSize:    AreaSize,
		MinSpacing:  MinSpacing,
		MaxAttempts: MaxPlacementAttempts,
	}
}

// GenStats summarises a world build.
type GenStats struct {
	Attempted      int
	Placed         int
	Targets        int
	Dropped        int
	DroppedTargets int
}

// World bundles the object registry with the target label bindings.
type World struct {
	Objects *Registry
	Labels  *LabelSet
	Stats   GenStats
}

// NewWorld returns an empty world sized for capacity objects.
func NewWorld(capacity int) *World {
	return &World{
		Objects: NewRegistry(capacity),
		Labels:  NewLabelSet(),
	}
}

// PlaceTarget registers a target and its hidden label binding.
func (w *World) PlaceTarget(obj Object) ObjectID {
	obj.IsTarget = true
	id := w.Objects.Add(obj)
	o, _ := w.Objects.Get(id)
	anchor := mgl64.Vec3{o.Position[0], o.Position[1] + o.Height/2 + LabelAnchorOffset, o.Position[2]}
	w.Labels.Bind(id, o.Ordinal, anchor)
	return id
}

type rosterEntry struct {
	target bool
	color  RGB
}

// Generator fills a world by constrained random placement.
type Generator struct {
	p   Params
	rng *Rand
}

func NewGenerator(p Params, seed uint64) *Generator {
	if p.Targets > p.Objects {
		p.Targets = p.Objects
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	return &Generator{p: p, rng: NewRand(MixSeed(seed, 0x3A7E1D))}
}

// Generate builds a new world. Objects that cannot be placed within the
// attempt budget are dropped, so the result may hold fewer than p.Objects.
func (g *Generator) Generate() *World {
	w := NewWorld(g.p.Objects)
	roster := g.roster()

	ordinal := 0
	for _, e := range roster {
		w.Stats.Attempted++

		shape := g.shape(e.target)
		radius, height := shape.Footprint()

		pos, ok := g.place(w.Objects, radius)
		if !ok {
			w.Stats.Dropped++
			if e.target {
				w.Stats.DroppedTargets++
			}
			continue
		}
		pos[1] = shape.RestY()

		obj := Object{
			Shape:    shape,
			Position: pos,
			Radius:   radius,
			Height:   height,
			Color:    e.color,
		}
		if e.target {
			ordinal++
			obj.Ordinal = ordinal
			w.PlaceTarget(obj)
		} else {
			w.Objects.Add(obj)
		}
	}

	w.Stats.Placed = w.Objects.Len()
	w.Stats.Targets = w.Objects.TargetCount()
	log.Printf("worldgen: attempted %d, placed %d objects, %d targets (%d dropped)",
		w.Stats.Attempted, w.Stats.Placed, w.Stats.Targets, w.Stats.Dropped)
	return w
}

// roster marks the targets, colours the rest, and shuffles so target slots in
// generation order are unbiased.
func (g *Generator) roster() []rosterEntry {
	r := g.rng
	out := make([]rosterEntry, 0, g.p.Objects)
	for range g.p.Targets {
		out = append(out, rosterEntry{target: true, color: TargetColor})
	}
	for range g.p.Objects - g.p.Targets {
		out = append(out, rosterEntry{color: HSL(r.Float64(), 0.6, 0.4+r.Float64()*0.2)})
	}
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

var obstacleKinds = [...]ShapeKind{ShapeCube, ShapeSphere, ShapeCone, ShapeTree}

func (g *Generator) shape(target bool) Shape {
	r := g.rng
	scale := r.RangeF(MinObjScale, MaxObjScale)

	if target {
		maxRadius := MaxBaseSizeTarget / 2 * scale
		maxHeight := MaxBaseSizeTarget * 1.5 * scale
		return Shape{
			Kind:   ShapeCylinder,
			Radius: math.Max(0.3, maxRadius*r.RangeF(0.7, 1.0)),
			Height: math.Max(1.0, maxHeight*r.RangeF(0.6, 1.0)),
		}
	}

	base := MaxBaseSizeOther * scale
	kind := obstacleKinds[r.Intn(len(obstacleKinds))]
	switch kind {
	case ShapeCube:
		return Shape{Kind: kind, Size: math.Max(0.8, base*r.RangeF(0.8, 1.2))}
	case ShapeSphere:
		return Shape{Kind: kind, Radius: math.Max(0.5, base*r.RangeF(0.4, 0.7))}
	case ShapeCone:
		return Shape{
			Kind:   kind,
			Radius: math.Max(0.5, base*r.RangeF(0.4, 0.7)),
			Height: math.Max(1.2, base*1.2*r.RangeF(0.8, 1.2)),
		}
	default:
		return Shape{
			Kind:          ShapeTree,
			TrunkHeight:   math.Max(1.0, base*0.8*r.RangeF(0.7, 1.0)),
			TrunkRadius:   math.Max(0.15, base*0.15*r.RangeF(0.7, 1.0)),
			FoliageHeight: math.Max(1.2, base*1.2*r.RangeF(0.8, 1.2)),
			FoliageRadius: math.Max(0.5, base*0.5*r.RangeF(0.8, 1.2)),
		}
	}
}

// place samples ground positions until one clears every placed object.
func (g *Generator) place(reg *Registry, radius float64) (mgl64.Vec3, bool) {
	r := g.rng
	for range g.p.MaxAttempts {
		cand := mgl64.Vec3{
			(r.Float64() - 0.5) * g.p.AreaSize,
			0,
			(r.Float64() - 0.5) * g.p.AreaSize,
		}
		clear := true
		reg.Each(func(o *Object) bool {
			need := o.Radius + radius + g.p.MinSpacing
			if distXZSq(cand, o.Position) < need*need {
				clear = false
				return false
			}
			return true
		})
		if clear {
			return cand, true
		}
	}
	return mgl64.Vec3{}, false
}
