//go:build !android

package desktop

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"arena/internal/scene"
	"arena/internal/world"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Lighting; hemisphere sky and ground tints at the given intensity.
var (
	hemiSky    = mgl32.Vec3{1, 1, 1}
	hemiGround = mgl32.Vec3{0x44 / 255.0, 0x44 / 255.0, 0x44 / 255.0}
)

const hemiIntensity = 0.8

type meshBuffer struct {
	vao, vbo uint32
	count    int32
}

type Renderer struct {
	// Solid meshes.
	meshProg  uint32
	meshes    [scene.NumMeshes]meshBuffer

	uModel, uViewProj, uColor, uEye int32
	uAmbient, uSky, uGround, uHemi  int32
	uFogColor, uFogNear, uFogFar    int32
	uUnlit                          int32

	// Particles.
	pointProg   uint32
	pointVAO    uint32
	pointVBO    uint32
	uPointView  int32
	uPointProj  int32
	particleTex uint32
	particleBuf []float32

	// Muzzle flash.
	flashProg   uint32
	quadVAO     uint32
	quadVBO     uint32
	uFlashMVP   int32
	uFlashColor int32
	uFlashAlpha int32
	flashTex    uint32

	// Screen-space quads.
	flatProg uint32
	flatVAO  uint32
	flatVBO  uint32
	uFlatRes int32
	flatBuf  []float32

	// Font/text rendering.
	atlas        *scene.Atlas
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	gun []scene.GunPart
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{gun: scene.GunParts()}
	progs := []struct {
		dst        *uint32
		vert, frag string
		name       string
	}{
		{&r.meshProg, meshVertSrc, meshFragSrc, "mesh"},
		{&r.pointProg, pointVertSrc, pointFragSrc, "particle"},
		{&r.flashProg, flashVertSrc, flashFragSrc, "flash"},
		{&r.flatProg, flatVertSrc, flatFragSrc, "flat"},
	}
	for _, p := range progs {
		prog, err := linkProgram(p.vert, p.frag)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("%s program: %w", p.name, err)
		}
		*p.dst = prog
	}

	for k := scene.MeshKind(0); k < scene.NumMeshes; k++ {
		m := scene.BuildMesh(k)
		r.meshes[k] = uploadMesh(m)
	}

	gl.UseProgram(r.meshProg)
	r.uModel = uniform(r.meshProg, "uModel")
	r.uViewProj = uniform(r.meshProg, "uViewProj")
	r.uColor = uniform(r.meshProg, "uColor")
	r.uEye = uniform(r.meshProg, "uEye")
	r.uAmbient = uniform(r.meshProg, "uAmbient")
	r.uSky = uniform(r.meshProg, "uSky")
	r.uGround = uniform(r.meshProg, "uGround")
	r.uHemi = uniform(r.meshProg, "uHemi")
	r.uFogColor = uniform(r.meshProg, "uFogColor")
	r.uFogNear = uniform(r.meshProg, "uFogNear")
	r.uFogFar = uniform(r.meshProg, "uFogFar")
	r.uUnlit = uniform(r.meshProg, "uUnlit")
	ar, ag, ab := scene.AmbientSky.Float()
	gl.Uniform3f(r.uAmbient, ar, ag, ab)
	gl.Uniform3f(r.uSky, hemiSky[0], hemiSky[1], hemiSky[2])
	gl.Uniform3f(r.uGround, hemiGround[0], hemiGround[1], hemiGround[2])
	gl.Uniform1f(r.uHemi, hemiIntensity)
	fr, fg, fb := scene.Background.Float()
	gl.Uniform3f(r.uFogColor, fr, fg, fb)
	gl.Uniform1f(r.uFogNear, scene.FogNear)
	gl.Uniform1f(r.uFogFar, scene.FogFar)

	// Particle VAO/VBO: per-point pos(3) + alpha(1).
	gl.GenVertexArrays(1, &r.pointVAO)
	gl.GenBuffers(1, &r.pointVBO)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	stride := int32(4 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, world.MaxParticles*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))

	gl.UseProgram(r.pointProg)
	r.uPointView = uniform(r.pointProg, "uView")
	r.uPointProj = uniform(r.pointProg, "uProj")
	gl.Uniform1i(uniform(r.pointProg, "uTex"), 1)
	r.particleTex = uploadTexture(scene.ParticleImage(), gl.LINEAR)

	// Flash quad: pos(2) + uv(2).
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(scene.QuadVerts)*4, gl.Ptr(&scene.QuadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, glOffset(2*4))

	gl.UseProgram(r.flashProg)
	r.uFlashMVP = uniform(r.flashProg, "uMVP")
	r.uFlashColor = uniform(r.flashProg, "uColor")
	r.uFlashAlpha = uniform(r.flashProg, "uOpacity")
	gl.Uniform1i(uniform(r.flashProg, "uTex"), 1)
	r.flashTex = uploadTexture(scene.FlashImage(), gl.LINEAR)

	// Flat quads: pos(2) + color(4).
	gl.GenVertexArrays(1, &r.flatVAO)
	gl.GenBuffers(1, &r.flatVBO)
	gl.BindVertexArray(r.flatVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 6*4, glOffset(2*4))
	gl.UseProgram(r.flatProg)
	r.uFlatRes = uniform(r.flatProg, "uResolution")

	gl.BindVertexArray(0)

	if err := r.initFont(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("font: %w", err)
	}
	return r, nil
}

func uploadMesh(m scene.Mesh) meshBuffer {
	var b meshBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Verts)*4, gl.Ptr(m.Verts), gl.STATIC_DRAW)
	stride := int32(scene.Stride * 4)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aNormal
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	b.count = int32(m.Count())
	return b
}

func uploadTexture(img *image.NRGBA, filter int32) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return tex
}

func (r *Renderer) Destroy() {
	for i := range r.meshes {
		m := &r.meshes[i]
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
	}
	for _, id := range []uint32{r.pointVBO, r.quadVBO, r.flatVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.pointVAO, r.quadVAO, r.flatVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.meshProg, r.pointProg, r.flashProg, r.flatProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.particleTex, r.flashTex, r.fontTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := scene.Background.Float()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) drawMesh(kind scene.MeshKind, model mgl32.Mat4, color mgl32.Vec3) {
	m := &r.meshes[kind]
	gl.BindVertexArray(m.vao)
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.Uniform3f(r.uColor, color[0], color[1], color[2])
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// DrawWorld draws the ground and every object instance, lit and fogged.
func (r *Renderer) DrawWorld(cam scene.Camera, set *scene.Set) {
	vp := cam.ViewProj()
	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &vp[0])
	gl.Uniform3f(r.uEye, cam.Eye[0], cam.Eye[1], cam.Eye[2])
	gl.Uniform1i(r.uUnlit, 0)

	gr, gg, gb := scene.GroundColor.Float()
	ground := mgl32.Scale3D(scene.GroundSize, 1, scene.GroundSize)
	r.drawMesh(scene.MeshGround, ground, mgl32.Vec3{gr, gg, gb})

	for k := scene.MeshKind(0); k < scene.NumMeshes; k++ {
		for _, in := range set.Instances(k) {
			r.drawMesh(k, in.Model, in.Color)
		}
	}
	gl.BindVertexArray(0)
}

// DrawParticles draws the debris pool additively without depth writes.
func (r *Renderer) DrawParticles(cam scene.Camera, pool *world.ParticlePool) {
	r.particleBuf = pool.RenderData(r.particleBuf)
	if len(r.particleBuf) == 0 {
		return
	}
	view, proj := cam.View(), cam.Projection()
	gl.UseProgram(r.pointProg)
	gl.UniformMatrix4fv(r.uPointView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uPointProj, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.particleTex)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)

	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.particleBuf)*4, gl.Ptr(r.particleBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(r.particleBuf)/4))

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
}

// DrawGun draws the unlit view model over the world, then the muzzle flash
// when flash is set.
func (r *Renderer) DrawGun(cam scene.Camera, recoil float64, flash bool, roll float64) {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	vp := cam.ViewProj()
	eye := cam.EyeToWorld()
	group := eye.Mul4(scene.GunTransform(recoil))

	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &vp[0])
	gl.Uniform1i(r.uUnlit, 1)
	for _, p := range r.gun {
		r.drawMesh(p.Mesh, group.Mul4(p.Model), p.Color)
	}
	gl.Uniform1i(r.uUnlit, 0)

	if !flash {
		gl.BindVertexArray(0)
		return
	}
	mvp := vp.Mul4(eye).Mul4(scene.FlashModel(recoil, roll))
	fr, fg, fb := scene.FlashColor.Float()
	gl.UseProgram(r.flashProg)
	gl.UniformMatrix4fv(r.uFlashMVP, 1, false, &mvp[0])
	gl.Uniform3f(r.uFlashColor, fr, fg, fb)
	gl.Uniform1f(r.uFlashAlpha, scene.FlashOpacity)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.flashTex)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
}

// Rect queues a filled screen-space rectangle.
func (r *Renderer) Rect(x, y, w, h float32, col [4]float32) {
	x1, y1 := x+w, y+h
	for _, v := range [6][2]float32{{x, y}, {x1, y}, {x, y1}, {x1, y}, {x1, y1}, {x, y1}} {
		r.flatBuf = append(r.flatBuf, v[0], v[1], col[0], col[1], col[2], col[3])
	}
}

// FlushRects draws queued rectangles with alpha blending and clears the queue.
func (r *Renderer) FlushRects(fbW, fbH int) {
	if len(r.flatBuf) == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.flatProg)
	gl.Uniform2f(r.uFlatRes, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(r.flatVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.flatBuf)*4, gl.Ptr(r.flatBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.flatBuf)/6))
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	r.flatBuf = r.flatBuf[:0]
}
