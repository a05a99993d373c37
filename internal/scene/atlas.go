package scene

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph atlas layout: printable ASCII in a 16x6 grid of fixed cells.
const (
	AtlasCols  = 16
	AtlasRows  = 6
	firstGlyph = 32
	lastGlyph  = 127
)

// Atlas is a white-on-transparent bitmap of the basic 7x13 face.
type Atlas struct {
	Image        *image.NRGBA
	CellW, CellH int
	Ascent       int
}

// NewAtlas rasterizes every printable ASCII glyph into its own cell.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cw, ch := face.Advance, face.Height
	a := &Atlas{
		Image:  image.NewNRGBA(image.Rect(0, 0, AtlasCols*cw, AtlasRows*ch)),
		CellW:  cw,
		CellH:  ch,
		Ascent: face.Ascent,
	}

	mask := image.NewAlpha(a.Image.Bounds())
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	for c := firstGlyph; c < lastGlyph; c++ {
		col, row := a.cell(rune(c))
		d.Dot = fixed.P(col*cw, row*ch+face.Ascent)
		d.DrawString(string(rune(c)))
	}
	draw.DrawMask(a.Image, a.Image.Bounds(), image.White, image.Point{}, mask, image.Point{}, draw.Src)
	return a
}

func (a *Atlas) cell(r rune) (col, row int) {
	i := int(r) - firstGlyph
	return i % AtlasCols, i / AtlasCols
}

// UV returns the normalized texture rectangle of r. ok is false for runes the
// face cannot draw.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32, ok bool) {
	if r < firstGlyph || r >= lastGlyph {
		return 0, 0, 0, 0, false
	}
	col, row := a.cell(r)
	w := float32(a.Image.Bounds().Dx())
	h := float32(a.Image.Bounds().Dy())
	u0 = float32(col*a.CellW) / w
	v0 = float32(row*a.CellH) / h
	u1 = float32((col+1)*a.CellW) / w
	v1 = float32((row+1)*a.CellH) / h
	return u0, v0, u1, v1, true
}

// TextWidth is the pixel width of the longest line of text at scale.
func (a *Atlas) TextWidth(text string, scale float32) int {
	line, longest := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			longest = max(longest, line)
			line = 0
			continue
		}
		line++
	}
	longest = max(longest, line)
	return int(float32(longest*a.CellW) * scale)
}
