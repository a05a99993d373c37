//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"arena/internal/game"
)

const maxNameLen = 16

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool

	lastX, lastY float64
	tracking     bool

	typed []rune
}

func NewInput(window *glfw.Window) *Input {
	in := &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
	window.SetCharCallback(func(_ *glfw.Window, r rune) {
		in.typed = append(in.typed, r)
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// Lock captures the pointer for mouse look; Unlock releases it.
func (in *Input) Lock(window *glfw.Window) {
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	in.tracking = false
}

func (in *Input) Unlock(window *glfw.Window) {
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	in.tracking = false
}

func (in *Input) Locked(window *glfw.Window) bool {
	return window.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled
}

// CursorDelta returns pointer motion since the last call. The first call
// after locking reports zero so the jump to the captured position is ignored.
func (in *Input) CursorDelta(window *glfw.Window) (dx, dy float64) {
	x, y := window.GetCursorPos()
	if in.tracking {
		dx, dy = x-in.lastX, y-in.lastY
	}
	in.lastX, in.lastY, in.tracking = x, y, true
	return dx, dy
}

// Intent reads WASD and arrow keys.
func (in *Input) Intent(window *glfw.Window) game.Intent {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	var it game.Intent
	if held(glfw.KeyW, glfw.KeyUp) {
		it.Forward++
	}
	if held(glfw.KeyS, glfw.KeyDown) {
		it.Forward--
	}
	if held(glfw.KeyD, glfw.KeyRight) {
		it.Right++
	}
	if held(glfw.KeyA, glfw.KeyLeft) {
		it.Right--
	}
	return it
}

// EndChord reports a fresh Ctrl+Shift+Q press.
func (in *Input) EndChord(window *glfw.Window) bool {
	q := in.JustPressed(window, glfw.KeyQ)
	ctrl := window.GetKey(glfw.KeyLeftControl) == glfw.Press || window.GetKey(glfw.KeyRightControl) == glfw.Press
	shift := window.GetKey(glfw.KeyLeftShift) == glfw.Press || window.GetKey(glfw.KeyRightShift) == glfw.Press
	return q && ctrl && shift
}

// EditName applies typed characters and backspace to name and clears the
// typed queue.
func (in *Input) EditName(window *glfw.Window, name string) string {
	out := []rune(name)
	for _, r := range in.typed {
		if r >= 32 && r < 127 && len(out) < maxNameLen {
			out = append(out, r)
		}
	}
	in.typed = in.typed[:0]
	if in.JustPressed(window, glfw.KeyBackspace) && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return string(out)
}

// DiscardTyped drops queued characters outside the menu.
func (in *Input) DiscardTyped() { in.typed = in.typed[:0] }
