package world

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

const rayEps = 1e-9

// Ray is a half-line; Dir must be unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// RayToward builds a ray from origin through point. ok is false when the two
// coincide.
func RayToward(origin, point mgl64.Vec3) (Ray, float64, bool) {
	d := point.Sub(origin)
	l := d.Len()
	if l < rayEps {
		return Ray{}, 0, false
	}
	return Ray{Origin: origin, Dir: d.Mul(1 / l)}, l, true
}

func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Hit names the struck object, which of its parts was hit, and where.
type Hit struct {
	Object ObjectID
	Part   int
	Dist   float64
	Point  mgl64.Vec3
}

// Scope selects the object set a ray is tested against.
type Scope uint8

const (
	ScopeAll     Scope = iota // every registered object
	ScopeTargets              // the target subset only
)

// Caster intersects rays with the scene. Hits are ordered nearest first.
type Caster interface {
	Cast(ray Ray, far float64, scope Scope) []Hit
}

// SceneCaster brute-forces rays against the registry's solids. Only front
// faces count: a ray starting inside a solid does not hit it.
type SceneCaster struct {
	reg  *Registry
	hits []Hit
}

func NewSceneCaster(reg *Registry) *SceneCaster {
	return &SceneCaster{reg: reg, hits: make([]Hit, 0, 16)}
}

// Cast returns the hits within far. The slice is reused by the next call.
func (c *SceneCaster) Cast(ray Ray, far float64, scope Scope) []Hit {
	c.hits = c.hits[:0]
	test := func(o *Object) bool {
		for i, p := range o.Parts {
			if !rayNearSphere(ray, p.Center, p.BoundRadius(), far) {
				continue
			}
			t, ok := intersectPart(p, ray)
			if !ok || t > far {
				continue
			}
			c.hits = append(c.hits, Hit{Object: o.ID, Part: i, Dist: t, Point: ray.At(t)})
		}
		return true
	}
	if scope == ScopeTargets {
		c.reg.EachTarget(test)
	} else {
		c.reg.Each(test)
	}
	slices.SortFunc(c.hits, func(a, b Hit) int { return cmp.Compare(a.Dist, b.Dist) })
	return c.hits
}

// rayNearSphere is a cheap reject before the exact solid test.
func rayNearSphere(ray Ray, center mgl64.Vec3, radius, far float64) bool {
	oc := center.Sub(ray.Origin)
	t := oc.Dot(ray.Dir)
	if t+radius < 0 || t-radius > far {
		return false
	}
	d2 := oc.Dot(oc) - t*t
	return d2 <= radius*radius
}

func intersectPart(p Part, ray Ray) (float64, bool) {
	switch p.Kind {
	case PrimCylinder:
		return intersectCylinder(ray, p.Center, p.Radius, p.Height/2)
	case PrimBox:
		return intersectBox(ray, p.Center, p.Radius)
	case PrimSphere:
		return intersectSphere(ray, p.Center, p.Radius)
	case PrimCone:
		return intersectCone(ray, p.Center, p.Radius, p.Height)
	}
	return 0, false
}

type nearest struct {
	t  float64
	ok bool
}

func (n *nearest) offer(t float64) {
	if t < 0 {
		return
	}
	if !n.ok || t < n.t {
		n.t, n.ok = t, true
	}
}

// intersectCylinder tests a vertical cylinder centred at c with half height h.
func intersectCylinder(ray Ray, c mgl64.Vec3, radius, h float64) (float64, bool) {
	o := ray.Origin.Sub(c)
	d := ray.Dir
	var n nearest

	a := d[0]*d[0] + d[2]*d[2]
	if a > rayEps {
		b := 2 * (o[0]*d[0] + o[2]*d[2])
		cc := o[0]*o[0] + o[2]*o[2] - radius*radius
		if disc := b*b - 4*a*cc; disc >= 0 {
			t := (-b - math.Sqrt(disc)) / (2 * a)
			if y := o[1] + t*d[1]; t >= 0 && math.Abs(y) <= h+rayEps {
				n.offer(t)
			}
		}
	}
	r2 := radius*radius + rayEps
	if d[1] < -rayEps {
		t := (h - o[1]) / d[1]
		x, z := o[0]+t*d[0], o[2]+t*d[2]
		if x*x+z*z <= r2 {
			n.offer(t)
		}
	}
	if d[1] > rayEps {
		t := (-h - o[1]) / d[1]
		x, z := o[0]+t*d[0], o[2]+t*d[2]
		if x*x+z*z <= r2 {
			n.offer(t)
		}
	}
	return n.t, n.ok
}

// intersectBox tests an axis-aligned cube with half extent e (slab method).
func intersectBox(ray Ray, c mgl64.Vec3, e float64) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		o := ray.Origin[i] - c[i]
		d := ray.Dir[i]
		if math.Abs(d) < rayEps {
			if o < -e || o > e {
				return 0, false
			}
			continue
		}
		t1 := (-e - o) / d
		t2 := (e - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmax < tmin {
			return 0, false
		}
	}
	if tmin < 0 {
		return 0, false
	}
	return tmin, true
}

func intersectSphere(ray Ray, c mgl64.Vec3, radius float64) (float64, bool) {
	o := ray.Origin.Sub(c)
	b := o.Dot(ray.Dir)
	cc := o.Dot(o) - radius*radius
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// intersectCone tests an upright cone of base radius and full height H
// centred at c (base at c.y-H/2, apex at c.y+H/2).
func intersectCone(ray Ray, c mgl64.Vec3, radius, height float64) (float64, bool) {
	if height <= 0 {
		return 0, false
	}
	apex := mgl64.Vec3{c[0], c[1] + height/2, c[2]}
	o := ray.Origin.Sub(apex)
	d := ray.Dir
	k2 := (radius / height) * (radius / height)
	var n nearest

	side := func(t float64) {
		p := o.Add(d.Mul(t))
		if p[1] < -height-rayEps || p[1] > rayEps {
			return
		}
		// Entering when moving against the outward gradient of x²+z²-k²y².
		if p[0]*d[0]-k2*p[1]*d[1]+p[2]*d[2] < 0 {
			n.offer(t)
		}
	}

	a := d[0]*d[0] + d[2]*d[2] - k2*d[1]*d[1]
	b := 2 * (o[0]*d[0] + o[2]*d[2] - k2*o[1]*d[1])
	cc := o[0]*o[0] + o[2]*o[2] - k2*o[1]*o[1]
	if math.Abs(a) < rayEps {
		if math.Abs(b) > rayEps {
			side(-cc / b)
		}
	} else if disc := b*b - 4*a*cc; disc >= 0 {
		sq := math.Sqrt(disc)
		side((-b - sq) / (2 * a))
		side((-b + sq) / (2 * a))
	}

	if d[1] > rayEps {
		t := (-height - o[1]) / d[1]
		x, z := o[0]+t*d[0], o[2]+t*d[2]
		if x*x+z*z <= radius*radius+rayEps {
			n.offer(t)
		}
	}
	return n.t, n.ok
}
