package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Resolve moves the player from pos by disp and pushes the result out of every
// overlapping object on the ground plane. Objects are visited once in registry
// order; a later push may reintroduce a smaller overlap with an earlier object.
// The returned y is always PlayerHeight.
func Resolve(pos, disp mgl64.Vec3, reg *Registry) mgl64.Vec3 {
	next := pos.Add(disp)
	next[1] = PlayerHeight

	reg.Each(func(o *Object) bool {
		broad := CollisionCheckRadius + o.Radius
		if distXZSq(pos, o.Position) > broad*broad {
			return true
		}
		reach := o.Radius + PlayerRadius
		d2 := distXZSq(next, o.Position)
		if d2 >= reach*reach {
			return true
		}

		d := math.Sqrt(d2)
		var push mgl64.Vec3
		if d > 1e-9 {
			push = mgl64.Vec3{(next[0] - o.Position[0]) / d, 0, (next[2] - o.Position[2]) / d}
		} else {
			push = fallbackPush(disp)
		}
		next = next.Add(push.Mul((reach - d) * PushSafety))
		next[1] = PlayerHeight
		return true
	})
	return next
}

// fallbackPush picks a direction when the player stands exactly on an object
// centre: back along the attempted move, or +X when there was none.
func fallbackPush(disp mgl64.Vec3) mgl64.Vec3 {
	back := mgl64.Vec3{-disp[0], 0, -disp[2]}
	if l := back.Len(); l > 1e-9 {
		return back.Mul(1 / l)
	}
	return mgl64.Vec3{1, 0, 0}
}
