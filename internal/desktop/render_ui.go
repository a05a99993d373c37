//go:build !android

package desktop

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"arena/internal/scene"
)

// initFont rasterizes the glyph atlas and sets up the text pipeline.
func (r *Renderer) initFont() error {
	r.atlas = scene.NewAtlas()
	r.fontTex = uploadTexture(r.atlas.Image, gl.NEAREST)

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return err
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = uniform(prog, "uResolution")
	r.textUFontTex = uniform(prog, "uFontTex")
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	gl.GenVertexArrays(1, &r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 512*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	gl.BindVertexArray(0)
	return nil
}

// DrawChar queues a single glyph as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col [4]float32) {
	u0, v0, u1, v1, ok := r.atlas.UV(ch)
	if !ok {
		return
	}
	w := float32(r.atlas.CellW) * scale
	h := float32(r.atlas.CellH) * scale
	cr, cg, cb, ca := col[0], col[1], col[2], col[3]

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, ca,
		sx+w, sy, u1, v0, cr, cg, cb, ca,
		sx, sy+h, u0, v1, cr, cg, cb, ca,
		sx+w, sy, u1, v0, cr, cg, cb, ca,
		sx+w, sy+h, u1, v1, cr, cg, cb, ca,
		sx, sy+h, u0, v1, cr, cg, cb, ca,
	)
}

// DrawString queues text at the top-left pixel (sx, sy). '\n' starts a line.
func (r *Renderer) DrawString(text string, sx, sy float32, scale float32, col [4]float32) {
	advance := float32(r.atlas.CellW) * scale
	lineAdvance := float32(r.atlas.CellH) * scale
	x, y := sx, sy
	for _, ch := range text {
		if ch == '\n' {
			x = sx
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// DrawOutlined draws text with a one-pixel-per-scale dark rim, as used for
// target labels.
func (r *Renderer) DrawOutlined(text string, sx, sy, scale float32, col [4]float32) {
	rim := [4]float32{0, 0, 0, 0.7 * col[3]}
	for _, d := range [4][2]float32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r.DrawString(text, sx+d[0]*scale, sy+d[1]*scale, scale, rim)
	}
	r.DrawString(text, sx, sy, scale, col)
}

// DrawCentered queues text horizontally centred on cx.
func (r *Renderer) DrawCentered(text string, cx, sy, scale float32, col [4]float32) {
	r.DrawString(text, cx-float32(r.TextWidth(text, scale))/2, sy, scale, col)
}

func (r *Renderer) TextWidth(text string, scale float32) int {
	return r.atlas.TextWidth(text, scale)
}

func (r *Renderer) LineHeight(scale float32) float32 {
	return float32(r.atlas.CellH) * scale
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
	r.textBuf = r.textBuf[:0]
}
