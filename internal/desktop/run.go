//go:build !android

// Package desktop is the windowed first-person front end: glfw for the window
// and input, OpenGL 4.1 core for drawing.
package desktop

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"arena/internal/audio"
	"arena/internal/game"
	"arena/internal/scene"
)

// Run opens the window and plays until it is closed.
func Run(cfg game.Config) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.Fullscreen)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	hud := &hudSink{}
	set := scene.NewSet()
	g, err := game.New(cfg, hud, set)
	if err != nil {
		return err
	}
	log.Printf("desktop: seed %d, %d objects, %d targets",
		g.Seed(), g.World.Objects.Len(), g.World.Objects.TargetCount())

	if snd, err := audio.New(cfg.Volume, g.Seed()); err != nil {
		log.Printf("audio init failed (continuing without sound): %v", err)
	} else {
		snd.Attach(g.Events)
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	input := NewInput(window)
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && g.Pause() {
			input.Unlock(w)
		}
	})

	var name string
	if cfg.PlayerName != game.DefaultPlayerName {
		name = cfg.PlayerName
	}
	var fps fpsCounter

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		fps.add(dt)

		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		clicked := input.JustClicked(window, glfw.MouseButtonLeft)
		switch g.Session.Phase {
		case game.PhaseMenu:
			if n := input.EditName(window, name); n != name {
				name = n
				g.SetPlayerName(name)
			}
			if (clicked || input.JustPressed(window, glfw.KeyEnter)) && g.Start() {
				input.Lock(window)
			}

		case game.PhasePlaying:
			input.DiscardTyped()
			if input.JustPressed(window, glfw.KeyEscape) || !input.Locked(window) {
				g.Pause()
				input.Unlock(window)
				break
			}
			if input.EndChord(window) {
				g.EndManual()
				input.Unlock(window)
				break
			}
			g.Look(input.CursorDelta(window))
			if clicked {
				g.Fire()
			}

		case game.PhasePaused:
			input.DiscardTyped()
			if clicked && g.Resume() {
				input.Lock(window)
			}

		case game.PhaseOver:
			input.DiscardTyped()
			if input.Locked(window) {
				input.Unlock(window)
			}
			if input.JustPressed(window, glfw.KeyR) {
				g.Restart()
			}
		}

		g.Tick(dt, input.Intent(window))

		view := g.View()
		cam := scene.NewCamera(view.Eye, view.Yaw, view.Pitch, fbW, fbH)
		rend.BeginFrame(fbW, fbH)
		rend.DrawWorld(cam, set)
		rend.DrawParticles(cam, g.Particles)
		rend.DrawGun(cam, view.Recoil, view.MuzzleFlash, view.MuzzleRoll)
		drawLabels(rend, cam, g.World.Labels, fbW, fbH)
		drawHUD(rend, hud.st, view, fbW, fbH)
		if cfg.Debug {
			stats := fmt.Sprintf("%.0f fps  %d objects  %d particles",
				fps.rate, g.World.Objects.Len(), g.Particles.ActiveCount())
			rend.DrawString(stats, 12, float32(fbH)-rend.LineHeight(1)-8, 1, colDim)
		}
		rend.FlushRects(fbW, fbH)
		rend.FlushText(fbW, fbH)

		window.SwapBuffers()
	}
	return nil
}

// fpsCounter averages frame rate over half-second windows.
type fpsCounter struct {
	acc    float64
	frames int
	rate   float64
}

func (f *fpsCounter) add(dt float64) {
	f.acc += dt
	f.frames++
	if f.acc >= 0.5 {
		f.rate = float64(f.frames) / f.acc
		f.acc, f.frames = 0, 0
	}
}
