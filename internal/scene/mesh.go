// Package scene turns world state into render-ready data: unit meshes,
// per-object instances, camera matrices and a bitmap glyph atlas. It has no
// GL dependency so it can be tested headless.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Stride is the float count per vertex: position xyz then normal xyz.
const Stride = 6

// MeshKind indexes the shared unit meshes.
type MeshKind int

const (
	MeshPillar  MeshKind = iota // 8-sided cylinder, targets
	MeshTrunk                   // 5-sided cylinder
	MeshBox                     // cube
	MeshSphere                  // 10x6 UV sphere
	MeshPyramid                 // 4-sided cone
	MeshFoliage                 // 6-sided cone
	MeshGround                  // XZ quad
	NumMeshes
)

// Mesh is a flat triangle list. Unit meshes span [-0.5,0.5] on every axis
// except the sphere, which has radius 1.
type Mesh struct {
	Verts []float32
}

func (m *Mesh) Count() int { return len(m.Verts) / Stride }

func (m *Mesh) tri(a, b, c, n mgl32.Vec3) {
	m.Verts = append(m.Verts,
		a[0], a[1], a[2], n[0], n[1], n[2],
		b[0], b[1], b[2], n[0], n[1], n[2],
		c[0], c[1], c[2], n[0], n[1], n[2],
	)
}

func (m *Mesh) vert(p, n mgl32.Vec3) {
	m.Verts = append(m.Verts, p[0], p[1], p[2], n[0], n[1], n[2])
}

// BuildMesh returns the unit mesh for kind.
func BuildMesh(kind MeshKind) Mesh {
	switch kind {
	case MeshPillar:
		return cylinder(8)
	case MeshTrunk:
		return cylinder(5)
	case MeshBox:
		return box()
	case MeshSphere:
		return sphere(10, 6)
	case MeshPyramid:
		return cone(4)
	case MeshFoliage:
		return cone(6)
	case MeshGround:
		return ground()
	}
	return Mesh{}
}

func ring(i, segments int) (float32, float32) {
	a := 2 * math.Pi * float64(i) / float64(segments)
	return float32(math.Sin(a)), float32(math.Cos(a))
}

func cylinder(segments int) Mesh {
	var m Mesh
	up, down := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}
	top, bot := mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, -0.5, 0}
	for i := 0; i < segments; i++ {
		s0, c0 := ring(i, segments)
		s1, c1 := ring(i+1, segments)
		a0 := mgl32.Vec3{0.5 * s0, 0, 0.5 * c0}
		a1 := mgl32.Vec3{0.5 * s1, 0, 0.5 * c1}
		t0, t1 := a0.Add(top), a1.Add(top)
		b0, b1 := a0.Add(bot), a1.Add(bot)

		n := mgl32.Vec3{s0 + s1, 0, c0 + c1}.Normalize()
		m.tri(b0, b1, t1, n)
		m.tri(b0, t1, t0, n)
		m.tri(top, t0, t1, up)
		m.tri(bot, b1, b0, down)
	}
	return m
}

func box() Mesh {
	var m Mesh
	faces := [6]struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for _, f := range faces {
		c := f.n.Mul(0.5)
		u, v := f.u.Mul(0.5), f.v.Mul(0.5)
		p00 := c.Sub(u).Sub(v)
		p10 := c.Add(u).Sub(v)
		p11 := c.Add(u).Add(v)
		p01 := c.Sub(u).Add(v)
		m.tri(p00, p10, p11, f.n)
		m.tri(p00, p11, p01, f.n)
	}
	return m
}

func sphere(widthSeg, heightSeg int) Mesh {
	var m Mesh
	point := func(i, j int) mgl32.Vec3 {
		theta := math.Pi * float64(j) / float64(heightSeg)
		phi := 2 * math.Pi * float64(i) / float64(widthSeg)
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return mgl32.Vec3{float32(st * sp), float32(ct), float32(st * cp)}
	}
	for j := 0; j < heightSeg; j++ {
		for i := 0; i < widthSeg; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			if j != 0 {
				m.vert(a, a)
				m.vert(c, c)
				m.vert(b, b)
			}
			if j != heightSeg-1 {
				m.vert(a, a)
				m.vert(d, d)
				m.vert(c, c)
			}
		}
	}
	return m
}

func cone(segments int) Mesh {
	var m Mesh
	apex := mgl32.Vec3{0, 0.5, 0}
	base := mgl32.Vec3{0, -0.5, 0}
	down := mgl32.Vec3{0, -1, 0}
	for i := 0; i < segments; i++ {
		s0, c0 := ring(i, segments)
		s1, c1 := ring(i+1, segments)
		b0 := mgl32.Vec3{0.5 * s0, -0.5, 0.5 * c0}
		b1 := mgl32.Vec3{0.5 * s1, -0.5, 0.5 * c1}
		n := b1.Sub(b0).Cross(apex.Sub(b0)).Normalize()
		m.tri(b0, b1, apex, n)
		m.tri(base, b1, b0, down)
	}
	return m
}

func ground() Mesh {
	var m Mesh
	up := mgl32.Vec3{0, 1, 0}
	m.tri(mgl32.Vec3{-0.5, 0, 0.5}, mgl32.Vec3{0.5, 0, 0.5}, mgl32.Vec3{0.5, 0, -0.5}, up)
	m.tri(mgl32.Vec3{-0.5, 0, 0.5}, mgl32.Vec3{0.5, 0, -0.5}, mgl32.Vec3{-0.5, 0, -0.5}, up)
	return m
}
