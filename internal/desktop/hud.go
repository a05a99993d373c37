//go:build !android

package desktop

import (
	"fmt"

	"arena/internal/game"
	"arena/internal/scene"
	"arena/internal/world"
)

var (
	colWhite   = [4]float32{1, 1, 1, 1}
	colDim     = [4]float32{0.75, 0.8, 0.85, 1}
	colAccent  = [4]float32{1, 0.85, 0.3, 1}
	colPanel   = [4]float32{0.02, 0.04, 0.07, 0.82}
	colShade   = [4]float32{0, 0, 0, 0.45}
	colFlash   = [4]float32{1, 1, 1, 0.25}
	colCross   = [4]float32{1, 1, 1, 0.85}
	colWarning = [4]float32{1, 0.35, 0.3, 1}
)

// Key help shown on the menu and pause panels.
var controls = []string{
	"WASD / arrows: move    Mouse: look",
	"Left click: shoot      Esc: pause",
	"Ctrl+Shift+Q: end the round",
	"Type to change your name",
}

const (
	hudScale   = 2
	labelScale = 2
	titleScale = 4
)

// hudSink stores the last pushed HUD snapshot for the draw pass.
type hudSink struct {
	st game.HUDState
}

func (h *hudSink) Update(s game.HUDState) { h.st = s }

// drawLabels queues the numeral of every visible target label.
func drawLabels(r *Renderer, cam scene.Camera, labels *world.LabelSet, fbW, fbH int) {
	labels.Each(func(l *world.Label) {
		if !l.Visible {
			return
		}
		x, y, ok := cam.Project(scene.Vec32(l.Anchor), fbW, fbH)
		if !ok {
			return
		}
		w := float32(r.TextWidth(l.Text, labelScale))
		r.DrawOutlined(l.Text, x-w/2, y-r.LineHeight(labelScale)/2, labelScale, colWhite)
	})
}

// drawHUD queues the score line, crosshair, screen flash and any overlay.
func drawHUD(r *Renderer, st game.HUDState, view game.FrameView, fbW, fbH int) {
	w, h := float32(fbW), float32(fbH)
	if view.ScreenFlash {
		r.Rect(0, 0, w, h, colFlash)
	}

	pad := float32(12)
	line := r.LineHeight(hudScale) + 4
	r.Rect(pad/2, pad/2, 230, line*4+pad, colShade)
	r.DrawString("Player:  "+st.Player, pad, pad, hudScale, colWhite)
	ammo := colWhite
	if st.Ammo == 0 {
		ammo = colWarning
	}
	r.DrawString(fmt.Sprintf("Bullets: %d", st.Ammo), pad, pad+line, hudScale, ammo)
	r.DrawString(fmt.Sprintf("Targets: %d/%d", st.Destroyed, st.Total), pad, pad+line*2, hudScale, colWhite)
	clock := colWhite
	if st.TimeLeft <= 10 {
		clock = colWarning
	}
	r.DrawString("Time:    "+st.Clock, pad, pad+line*3, hudScale, clock)

	if st.Crosshair {
		cx, cy := w/2, h/2
		r.Rect(cx-10, cy-1, 20, 2, colCross)
		r.Rect(cx-1, cy-10, 2, 20, colCross)
	}

	ov, ok := game.OverlayFor(st, controls, "Click anywhere")
	if !ok {
		return
	}
	r.Rect(0, 0, w, h, colShade)
	lineH := r.LineHeight(hudScale) + 6
	panelH := r.LineHeight(titleScale) + lineH*float32(len(ov.Lines)+3)
	panelW := float32(r.TextWidth(ov.Title, titleScale))
	for _, l := range ov.Lines {
		panelW = max(panelW, float32(r.TextWidth(l, hudScale)))
	}
	panelW += 60
	px, py := (w-panelW)/2, (h-panelH)/2
	r.Rect(px, py, panelW, panelH, colPanel)

	y := py + 20
	r.DrawCentered(ov.Title, w/2, y, titleScale, colAccent)
	y += r.LineHeight(titleScale) + lineH
	for _, l := range ov.Lines {
		r.DrawCentered(l, w/2, y, hudScale, colDim)
		y += lineH
	}
	r.DrawCentered(ov.Hint, w/2, y+lineH/2, hudScale, colWhite)
}
