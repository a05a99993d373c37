// Package radar is a terminal front end: a heading-up top-down map of the
// arena drawn with tcell. Aiming uses keyboard turns and pitch steps.
package radar

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/audio"
	"arena/internal/game"
	"arena/internal/world"
)

const (
	frameInterval = 33 * time.Millisecond
	// holdWindow keeps a movement key active after its last press or repeat;
	// terminals report no key release.
	holdWindow = 0.3
	turnStep   = 5 * math.Pi / 180
	pitchStep  = 3 * math.Pi / 180
	// cellAspect is how many columns make one world unit look as tall as a row.
	cellAspect   = 2.0
	defaultRange = 20.0 // world units from centre to the top edge
	minRange     = 5.0
	maxRange     = world.AreaSize
)

var (
	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus   = styleBase.Foreground(tcell.ColorLightCyan)
	styleWarn     = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleTarget   = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleSpark    = styleBase.Foreground(tcell.ColorOrange)
	stylePlayer   = styleBase.Foreground(tcell.ColorYellow).Bold(true)
	styleCone     = styleBase.Foreground(tcell.ColorDarkSlateGray)
	stylePanel    = styleBase.Background(tcell.ColorNavy)
	stylePanelHdr = stylePanel.Foreground(tcell.ColorGold).Bold(true)
)

var controls = []string{
	"w/s: move  a/d: strafe  q/e or arrows: turn",
	"r/f: aim up/down  c: level  space: shoot",
	"+/-: zoom  p: pause  X: end round  Ctrl+C: quit",
}

// App couples a game to a tcell screen. Not safe for concurrent use.
type App struct {
	screen tcell.Screen
	g      *game.Game
	st     game.HUDState

	clock     float64
	held      map[rune]float64 // movement key -> expiry on clock
	viewRange float64
}

// New creates the app. Pass it to game.New as the HUD, then call Bind.
func New(screen tcell.Screen) *App {
	return &App{screen: screen, held: make(map[rune]float64), viewRange: defaultRange}
}

func (a *App) Update(s game.HUDState) { a.st = s }

func (a *App) Bind(g *game.Game) {
	a.g = g
	a.st = g.HUDState()
}

// Run plays in the terminal until the player quits.
func Run(cfg game.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	app := New(screen)
	g, err := game.New(cfg, app, nil)
	if err != nil {
		return err
	}
	app.Bind(g)
	log.Printf("radar: seed %d, %d objects, %d targets",
		g.Seed(), g.World.Objects.Len(), g.World.Objects.TargetCount())

	if snd, err := audio.New(cfg.Volume, g.Seed()); err != nil {
		log.Printf("audio init failed (continuing without sound): %v", err)
	} else {
		snd.Attach(g.Events)
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !app.HandleEvent(ev) {
				close(quit)
				return nil
			}
		case now := <-ticker.C:
			app.Step(now.Sub(last).Seconds())
			last = now
			app.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	g := a.g
	switch g.Session.Phase {
	case game.PhaseMenu:
		if ev.Key() == tcell.KeyEnter || ev.Rune() == ' ' {
			g.Start()
		}
	case game.PhasePaused:
		if ev.Key() == tcell.KeyEnter || ev.Rune() == 'p' || ev.Key() == tcell.KeyEscape {
			g.Resume()
		}
	case game.PhaseOver:
		if ev.Rune() == 'r' || ev.Key() == tcell.KeyEnter {
			g.Restart()
		}
	case game.PhasePlaying:
		a.playKey(ev)
	}
	return true
}

func (a *App) playKey(ev *tcell.EventKey) {
	g := a.g
	sens := g.Config().MouseSensitivity
	switch ev.Key() {
	case tcell.KeyEscape:
		g.Pause()
		return
	case tcell.KeyLeft:
		g.Look(-turnStep/sens, 0)
		return
	case tcell.KeyRight:
		g.Look(turnStep/sens, 0)
		return
	case tcell.KeyUp:
		a.held['w'] = a.clock + holdWindow
		return
	case tcell.KeyDown:
		a.held['s'] = a.clock + holdWindow
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch r := ev.Rune(); r {
	case 'w', 's', 'a', 'd':
		a.held[r] = a.clock + holdWindow
	case 'q':
		g.Look(-turnStep/sens, 0)
	case 'e':
		g.Look(turnStep/sens, 0)
	case 'r':
		g.Look(0, -pitchStep/sens)
	case 'f':
		g.Look(0, pitchStep/sens)
	case 'c':
		g.Player.Pitch = 0
	case ' ':
		g.Fire()
	case 'p':
		g.Pause()
	case 'X':
		g.EndManual()
	case '+', '=':
		a.viewRange = math.Max(minRange, a.viewRange/1.25)
	case '-':
		a.viewRange = math.Min(maxRange, a.viewRange*1.25)
	}
}

// Step advances the game by dt using the held movement keys.
func (a *App) Step(dt float64) {
	a.clock += dt
	a.g.Tick(dt, a.intent())
}

func (a *App) intent() game.Intent {
	down := func(r rune) bool { return a.held[r] > a.clock }
	var in game.Intent
	if down('w') {
		in.Forward++
	}
	if down('s') {
		in.Forward--
	}
	if down('d') {
		in.Right++
	}
	if down('a') {
		in.Right--
	}
	return in
}

// Projector maps ground positions to a heading-up radar grid centred on the
// player.
type Projector struct {
	Origin      mgl64.Vec3
	Heading     mgl64.Vec3 // unit, ground plane
	Right       mgl64.Vec3 // unit, ground plane
	CX, CY      int
	RowsPerUnit float64
}

func NewProjector(p *game.Player, w, h int, viewRange float64) Projector {
	cy := h / 2
	return Projector{
		Origin:      p.Position,
		Heading:     p.Heading(),
		Right:       p.RightAxis(),
		CX:          w / 2,
		CY:          cy,
		RowsPerUnit: float64(max(cy-1, 1)) / viewRange,
	}
}

// Cell returns the screen cell of a world position.
func (pr Projector) Cell(pos mgl64.Vec3) (x, y int) {
	d := pos.Sub(pr.Origin)
	d[1] = 0
	ahead := d.Dot(pr.Heading)
	right := d.Dot(pr.Right)
	x = pr.CX + int(math.Round(right*pr.RowsPerUnit*cellAspect))
	y = pr.CY - int(math.Round(ahead*pr.RowsPerUnit))
	return x, y
}

func glyphFor(o *world.Object) rune {
	if o.IsTarget {
		return rune('0' + o.Ordinal%10)
	}
	switch o.Shape.Kind {
	case world.ShapeCube:
		return '#'
	case world.ShapeSphere:
		return 'o'
	case world.ShapeCone:
		return '^'
	case world.ShapeTree:
		return '♣'
	}
	return '?'
}

func objectStyle(o *world.Object) tcell.Style {
	if o.IsTarget {
		return styleTarget
	}
	r, g, b := o.Color.R, o.Color.G, o.Color.B
	return styleBase.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Draw renders the radar, the status line and any overlay.
func (a *App) Draw() {
	s := a.screen
	s.SetStyle(styleBase)
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 1 {
		return
	}

	g := a.g
	pr := NewProjector(&g.Player, w, h, a.viewRange)
	inside := func(x, y int) bool { return x >= 0 && x < w && y >= 1 && y < h }

	// Firing line straight ahead.
	for y := pr.CY - 1; y >= 1; y-- {
		s.SetContent(pr.CX, y, '·', nil, styleCone)
	}

	g.World.Objects.Each(func(o *world.Object) bool {
		if x, y := pr.Cell(o.Position); inside(x, y) {
			s.SetContent(x, y, glyphFor(o), nil, objectStyle(o))
		}
		return true
	})
	g.Particles.Each(func(p *world.Particle) {
		if x, y := pr.Cell(p.Pos); inside(x, y) {
			s.SetContent(x, y, '*', nil, styleSpark)
		}
	})
	s.SetContent(pr.CX, pr.CY, '▲', nil, stylePlayer)

	a.drawStatus(w)
	if ov, ok := game.OverlayFor(a.st, controls, resumePrompt(a.st.Phase)); ok {
		a.drawOverlay(ov, w, h)
	}
	s.Show()
}

func (a *App) drawStatus(w int) {
	st := a.st
	pitch := a.g.Player.Pitch * 180 / math.Pi
	line := fmt.Sprintf(" %s  Bullets: %d  Targets: %d/%d  Time: %s  Aim: %+.0f°  Range: %.0f",
		st.Player, st.Ammo, st.Destroyed, st.Total, st.Clock, pitch, a.viewRange)
	style := styleStatus
	if st.Ammo == 0 || (st.Phase == game.PhasePlaying && st.TimeLeft <= 10) {
		style = styleWarn
	}
	putString(a.screen, 0, 0, w, line, style)
}

func resumePrompt(p game.Phase) string {
	if p == game.PhasePaused {
		return "Press p"
	}
	return "Press Enter"
}

func (a *App) drawOverlay(ov game.Overlay, w, h int) {
	lines := make([]string, 0, len(ov.Lines)+4)
	lines = append(lines, ov.Title, "")
	lines = append(lines, ov.Lines...)
	lines = append(lines, "", ov.Hint)

	bw := 0
	for _, l := range lines {
		bw = max(bw, len([]rune(l)))
	}
	bw = min(bw+4, w)
	bh := min(len(lines)+2, h-1)
	x0, y0 := (w-bw)/2, 1+(h-1-bh)/2
	for y := y0; y < y0+bh; y++ {
		for x := x0; x < x0+bw; x++ {
			a.screen.SetContent(x, y, ' ', nil, stylePanel)
		}
	}
	for i, l := range lines {
		y := y0 + 1 + i
		if y >= y0+bh {
			break
		}
		style := stylePanel
		if i == 0 {
			style = stylePanelHdr
		}
		n := len([]rune(l))
		putString(a.screen, x0+(bw-n)/2, y, x0+bw, l, style)
	}
}

// putString writes s from (x, y), clipped before column limit.
func putString(s tcell.Screen, x, y, limit int, str string, style tcell.Style) {
	for _, r := range str {
		if x >= limit {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
