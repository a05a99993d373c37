package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"arena/internal/world"
)

// Gun placement in eye space. Recoil adds to the z offset.
var (
	GunOffset   = mgl32.Vec3{0.2, -0.15, -0.5}
	GunYaw      = float32(-0.05)
	GunColor    = world.HexRGB(0xc0c0c0)
	BarrelColor = world.HexRGB(0x2a2a2a)
	FlashColor  = world.HexRGB(0xfff59d)
)

const (
	FlashSize    = 0.15
	FlashOpacity = 0.9
)

// GunPart is one unlit piece of the view model in gun-local space.
type GunPart struct {
	Mesh  MeshKind
	Model mgl32.Mat4
	Color mgl32.Vec3
}

func rgb32(c world.RGB) mgl32.Vec3 {
	r, g, b := c.Float()
	return mgl32.Vec3{r, g, b}
}

func boxAt(pos, size mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
}

// GunParts returns body, grip, barrel and sight.
func GunParts() []GunPart {
	grip := mgl32.Translate3D(0, -0.08, 0.02).
		Mul4(mgl32.HomogRotate3DX(-0.2)).
		Mul4(mgl32.Scale3D(0.04, 0.18, 0.05))
	barrel := mgl32.Translate3D(0, 0.01, -0.2).
		Mul4(mgl32.HomogRotate3DX(math.Pi / 2)).
		Mul4(mgl32.Scale3D(0.05, 0.22, 0.05))
	return []GunPart{
		{MeshBox, boxAt(mgl32.Vec3{0, 0, -0.05}, mgl32.Vec3{0.08, 0.08, 0.25}), rgb32(GunColor)},
		{MeshBox, grip, rgb32(GunColor)},
		{MeshPillar, barrel, rgb32(BarrelColor)},
		{MeshBox, boxAt(mgl32.Vec3{0, 0.055, -0.1}, mgl32.Vec3{0.02, 0.02, 0.03}), rgb32(BarrelColor)},
	}
}

// GunTransform places the gun group in eye space.
func GunTransform(recoil float64) mgl32.Mat4 {
	return mgl32.Translate3D(GunOffset[0], GunOffset[1], GunOffset[2]+float32(recoil)).
		Mul4(mgl32.HomogRotate3DY(GunYaw))
}

// FlashModel places the unit muzzle flash quad (XY plane, ±0.5) at the barrel
// tip, spun by roll.
func FlashModel(recoil, roll float64) mgl32.Mat4 {
	return GunTransform(recoil).
		Mul4(mgl32.Translate3D(0, 0.01, -0.31)).
		Mul4(mgl32.HomogRotate3DZ(float32(roll))).
		Mul4(mgl32.Scale3D(FlashSize, FlashSize, 1))
}

// QuadVerts is a unit XY quad as position xy and uv, two triangles.
var QuadVerts = [24]float32{
	-0.5, -0.5, 0, 1,
	0.5, -0.5, 1, 1,
	0.5, 0.5, 1, 0,
	-0.5, -0.5, 0, 1,
	0.5, 0.5, 1, 0,
	-0.5, 0.5, 0, 0,
}
