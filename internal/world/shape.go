package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind identifies the geometry family of a placed object.
type ShapeKind uint8

const (
	ShapeCylinder ShapeKind = iota // targets only
	ShapeCube
	ShapeSphere
	ShapeCone
	ShapeTree // trunk cylinder + foliage cone
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCylinder:
		return "cylinder"
	case ShapeCube:
		return "cube"
	case ShapeSphere:
		return "sphere"
	case ShapeCone:
		return "cone"
	case ShapeTree:
		return "tree"
	}
	return "unknown"
}

// Shape carries the per-kind geometry parameters. Only the fields relevant to
// Kind are set.
type Shape struct {
	Kind ShapeKind

	Radius float64 // cylinder, sphere, cone
	Height float64 // cylinder, cone
	Size   float64 // cube edge

	TrunkRadius   float64
	TrunkHeight   float64
	FoliageRadius float64
	FoliageHeight float64
}

// Footprint returns the horizontal bounding radius and vertical extent.
func (s Shape) Footprint() (radius, height float64) {
	switch s.Kind {
	case ShapeCylinder, ShapeCone:
		return s.Radius, s.Height
	case ShapeCube:
		return s.Size * 0.707, s.Size
	case ShapeSphere:
		return s.Radius, s.Radius * 2
	case ShapeTree:
		return s.FoliageRadius, s.TrunkHeight + s.FoliageHeight
	}
	return 0, 0
}

// RestY is the y of the object origin that puts it on the ground plane.
// Trees rest on their trunk; foliage sits on top of it.
func (s Shape) RestY() float64 {
	switch s.Kind {
	case ShapeSphere:
		return s.Radius
	case ShapeTree:
		return s.TrunkHeight / 2
	}
	_, h := s.Footprint()
	return h / 2
}

// PrimKind is a ray-testable solid.
type PrimKind uint8

const (
	PrimCylinder PrimKind = iota
	PrimBox
	PrimSphere
	PrimCone // apex up
)

// Part is one solid of an object in world space. For boxes Radius is the half
// extent; for spheres Height is unused.
type Part struct {
	Kind   PrimKind
	Center mgl64.Vec3
	Radius float64
	Height float64
}

// BoundRadius is the radius of a sphere around Center enclosing the part.
func (p Part) BoundRadius() float64 {
	switch p.Kind {
	case PrimSphere:
		return p.Radius
	case PrimBox:
		return p.Radius * math.Sqrt(3)
	}
	return math.Hypot(p.Radius, p.Height/2)
}

// AppendParts appends the solids of the shape placed with its origin at pos.
// Part indices are stable: for trees, 0 is the trunk and 1 the foliage.
func (s Shape) AppendParts(dst []Part, pos mgl64.Vec3) []Part {
	switch s.Kind {
	case ShapeCylinder:
		return append(dst, Part{Kind: PrimCylinder, Center: pos, Radius: s.Radius, Height: s.Height})
	case ShapeCube:
		return append(dst, Part{Kind: PrimBox, Center: pos, Radius: s.Size / 2, Height: s.Size})
	case ShapeSphere:
		return append(dst, Part{Kind: PrimSphere, Center: pos, Radius: s.Radius})
	case ShapeCone:
		return append(dst, Part{Kind: PrimCone, Center: pos, Radius: s.Radius, Height: s.Height})
	case ShapeTree:
		foliage := pos.Add(mgl64.Vec3{0, s.TrunkHeight/2 + s.FoliageHeight/2, 0})
		return append(dst,
			Part{Kind: PrimCylinder, Center: pos, Radius: s.TrunkRadius, Height: s.TrunkHeight},
			Part{Kind: PrimCone, Center: foliage, Radius: s.FoliageRadius, Height: s.FoliageHeight},
		)
	}
	return dst
}
