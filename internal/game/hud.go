package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

// HUDState is the score/UI snapshot pushed after every relevant mutation.
type HUDState struct {
	Phase     Phase
	Player    string
	Ammo      int
	Destroyed int
	Total     int
	TimeLeft  int
	Clock     string // TimeLeft as m:ss
	Crosshair bool

	// Set once the session is over.
	Title   string
	Message string
}

// HUD receives score updates. Nothing in the core reads it back.
type HUD interface {
	Update(s HUDState)
}

// Scene mirrors registry changes into a renderer.
type Scene interface {
	Rebuild(w *world.World)
	RemoveObject(id world.ObjectID)
}

type nopHUD struct{}

func (nopHUD) Update(HUDState) {}

type nopScene struct{}

func (nopScene) Rebuild(*world.World)         {}
func (nopScene) RemoveObject(world.ObjectID) {}

// FrameView is everything a front end needs to draw one frame.
type FrameView struct {
	Eye         mgl64.Vec3
	Forward     mgl64.Vec3
	Yaw, Pitch  float64
	Recoil      float64
	MuzzleFlash bool
	MuzzleRoll  float64
	ScreenFlash bool
}

// Overlay is the modal panel shown whenever play is not running.
type Overlay struct {
	Title string
	Lines []string
	Hint  string
}

// OverlayFor picks the panel for st. controls lists the front end's key help
// and prompt is its call to action, such as "Click anywhere". ok is false
// while playing.
func OverlayFor(st HUDState, controls []string, prompt string) (Overlay, bool) {
	brief := fmt.Sprintf("Destroy all %d red pillars before time runs out.", st.Total)
	switch st.Phase {
	case PhaseMenu:
		lines := append([]string{"Player: " + st.Player, "", brief, ""}, controls...)
		return Overlay{Title: "Pillar Shooter Arena", Lines: lines, Hint: prompt + " to Start"}, true
	case PhasePaused:
		lines := append([]string{brief, ""}, controls...)
		return Overlay{Title: "Game Paused", Lines: lines, Hint: prompt + " to Resume"}, true
	case PhaseOver:
		return Overlay{Title: st.Title, Lines: []string{st.Message}, Hint: "Press R to play again"}, true
	}
	return Overlay{}, false
}
