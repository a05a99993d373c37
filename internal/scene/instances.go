package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"arena/internal/world"
)

// Instance is one drawable part: a unit mesh placed by Model and tinted.
type Instance struct {
	Owner world.ObjectID
	Model mgl32.Mat4
	Color mgl32.Vec3
}

// Set groups instances by mesh so each mesh is bound once per frame. It
// mirrors the registry through Rebuild and RemoveObject.
type Set struct {
	byMesh [NumMeshes][]Instance
}

func NewSet() *Set { return &Set{} }

func (s *Set) Rebuild(w *world.World) {
	for k := range s.byMesh {
		s.byMesh[k] = s.byMesh[k][:0]
	}
	w.Objects.Each(func(o *world.Object) bool {
		for i, p := range o.Parts {
			kind := MeshFor(o.Shape.Kind, i)
			s.byMesh[kind] = append(s.byMesh[kind], Instance{
				Owner: o.ID,
				Model: PartModel(p),
				Color: partColor(o, i),
			})
		}
		return true
	})
}

// RemoveObject drops every instance owned by id.
func (s *Set) RemoveObject(id world.ObjectID) {
	for k := range s.byMesh {
		list := s.byMesh[k]
		for i := 0; i < len(list); {
			if list[i].Owner != id {
				i++
				continue
			}
			last := len(list) - 1
			list[i] = list[last]
			list = list[:last]
		}
		s.byMesh[k] = list
	}
}

func (s *Set) Instances(kind MeshKind) []Instance { return s.byMesh[kind] }

func (s *Set) Len() int {
	n := 0
	for k := range s.byMesh {
		n += len(s.byMesh[k])
	}
	return n
}

// MeshFor picks the unit mesh for part index i of a shape.
func MeshFor(kind world.ShapeKind, part int) MeshKind {
	switch kind {
	case world.ShapeCylinder:
		return MeshPillar
	case world.ShapeCube:
		return MeshBox
	case world.ShapeSphere:
		return MeshSphere
	case world.ShapeCone:
		return MeshPyramid
	case world.ShapeTree:
		if part == 0 {
			return MeshTrunk
		}
		return MeshFoliage
	}
	return MeshBox
}

// PartModel scales and places a unit mesh to match a world solid.
func PartModel(p world.Part) mgl32.Mat4 {
	c := mgl32.Vec3{float32(p.Center[0]), float32(p.Center[1]), float32(p.Center[2])}
	r, h := float32(p.Radius), float32(p.Height)
	var sx, sy, sz float32
	switch p.Kind {
	case world.PrimSphere:
		sx, sy, sz = r, r, r
	case world.PrimBox:
		sx, sy, sz = 2*r, 2*r, 2*r
	default:
		sx, sy, sz = 2*r, h, 2*r
	}
	return mgl32.Translate3D(c[0], c[1], c[2]).Mul4(mgl32.Scale3D(sx, sy, sz))
}

func partColor(o *world.Object, part int) mgl32.Vec3 {
	c := o.Color
	if o.Shape.Kind == world.ShapeTree {
		c = world.FoliageColor
		if part == 0 {
			c = world.TrunkColor
		}
	}
	r, g, b := c.Float()
	return mgl32.Vec3{r, g, b}
}
