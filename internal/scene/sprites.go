package scene

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// SpriteSize is the side of the generated sprite textures.
const SpriteSize = 64

type gradientStop struct {
	at         float64
	r, g, b, a float64
}

// sampleStops linearly interpolates a colour ramp at t in [0,1].
func sampleStops(stops []gradientStop, t float64) (r, g, b, a float64) {
	if t <= stops[0].at {
		s := stops[0]
		return s.r, s.g, s.b, s.a
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t <= s1.at {
			f := (t - s0.at) / (s1.at - s0.at)
			return s0.r + (s1.r-s0.r)*f, s0.g + (s1.g-s0.g)*f, s0.b + (s1.b-s0.b)*f, s0.a + (s1.a-s0.a)*f
		}
	}
	s := stops[len(stops)-1]
	return s.r, s.g, s.b, s.a
}

// ParticleImage is the soft orange blob used for hit debris.
func ParticleImage() *image.NRGBA {
	stops := []gradientStop{
		{0, 1, 1, 1, 1},
		{0.2, 1, 224.0 / 255, 180.0 / 255, 0.9},
		{0.5, 1, 200.0 / 255, 100.0 / 255, 0.5},
		{1, 1, 150.0 / 255, 0, 0},
	}
	img := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	radialOver(img, stops, 0, SpriteSize/2)
	return img
}

// FlashImage is a ten-point star under a radial glow.
func FlashImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))

	star := [...][2]float32{
		{32, 5}, {38, 26}, {60, 28}, {44, 40}, {48, 62},
		{32, 50}, {16, 62}, {20, 40}, {4, 28}, {26, 26},
	}
	z := vector.NewRasterizer(SpriteSize, SpriteSize)
	z.MoveTo(star[0][0], star[0][1])
	for _, p := range star[1:] {
		z.LineTo(p[0], p[1])
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{255, 245, 157, 255}), image.Point{})

	stops := []gradientStop{
		{0, 1, 1, 1, 0.8},
		{0.4, 1, 245.0 / 255, 157.0 / 255, 0.5},
		{1, 1, 220.0 / 255, 50.0 / 255, 0},
	}
	radialOver(img, stops, 5, 30)
	return img
}

// radialOver composites a centred radial gradient over img with source-over.
// Pixels inside r0 take the first stop, outside r1 the last.
func radialOver(img *image.NRGBA, stops []gradientStop, r0, r1 float64) {
	c := SpriteSize / 2.0
	for y := 0; y < SpriteSize; y++ {
		for x := 0; x < SpriteSize; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			t := math.Max(0, math.Min(1, (d-r0)/(r1-r0)))
			sr, sg, sb, sa := sampleStops(stops, t)

			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			dr, dg, db, da := float64(p[0])/255, float64(p[1])/255, float64(p[2])/255, float64(p[3])/255
			oa := sa + da*(1-sa)
			if oa <= 0 {
				p[0], p[1], p[2], p[3] = 0, 0, 0, 0
				continue
			}
			blend := func(s, d float64) uint8 {
				return uint8(math.Round((s*sa + d*da*(1-sa)) / oa * 255))
			}
			p[0], p[1], p[2] = blend(sr, dr), blend(sg, dg), blend(sb, db)
			p[3] = uint8(math.Round(oa * 255))
		}
	}
}
