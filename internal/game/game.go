package game

import (
	"fmt"
	"log"
	"math"

	"arena/internal/world"
)

// Game is the session controller. It owns the world and every per-tick system
// and runs them in a fixed order from Tick. Not safe for concurrent use.
type Game struct {
	cfg  Config
	seed uint64

	World     *world.World
	Caster    world.Caster
	Culler    *world.Culler
	Particles *world.ParticlePool
	Shooter   Shooter
	Session   Session
	Player    Player
	Timer     *Countdown
	Effects   Scheduler
	Recoil    Recoil
	Events    *EventBus

	muzzleRoll float64
	clock      float64
	round      uint64
	rng        *world.Rand
	hud        HUD
	scene      Scene
}

// New validates cfg and generates a world from its seed.
func New(cfg Config, hud HUD, scene Scene) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	seed := cfg.ResolveSeed()
	w := world.NewGenerator(cfg.WorldParams(), seed).Generate()
	g := NewWithWorld(cfg, w, hud, scene)
	g.seed = seed
	g.rng = world.NewRand(world.MixSeed(seed, 0x5E55))
	return g, nil
}

// NewWithWorld wraps an already built world. hud and scene may be nil.
func NewWithWorld(cfg Config, w *world.World, hud HUD, scene Scene) *Game {
	if hud == nil {
		hud = nopHUD{}
	}
	if scene == nil {
		scene = nopScene{}
	}
	g := &Game{
		cfg:    cfg,
		seed:   cfg.Seed,
		Events: NewEventBus(),
		rng:    world.NewRand(world.MixSeed(cfg.Seed, 0x5E55)),
		hud:    hud,
		scene:  scene,
	}
	g.Session.PlayerName = cfg.PlayerName
	g.install(w)
	return g
}

func (g *Game) install(w *world.World) {
	g.World = w
	g.Caster = world.NewSceneCaster(w.Objects)
	g.Culler = world.NewCuller()
	g.Culler.OnDetach = func(id world.ObjectID) { log.Printf("labels: dropped orphan binding %v", id) }
	g.Particles = world.NewParticlePool(world.MaxParticles, g.seed)
	g.Shooter = Shooter{World: w, Caster: g.Caster, Particles: g.Particles}
	g.Player = NewPlayer()
	g.Timer = NewCountdown(g.cfg.TimeLimit)
	g.Effects.Clear()
	g.Recoil.Snap()
	g.Session.Ammo = g.cfg.Ammo
	g.Session.TimeLeft = g.cfg.TimeLimit
	g.Session.Total = w.Objects.TargetCount()
	g.scene.Rebuild(w)
	g.pushHUD()
}

func (g *Game) Config() Config   { return g.cfg }
func (g *Game) Seed() uint64     { return g.seed }
func (g *Game) Clock() float64   { return g.clock }
func (g *Game) SetHUD(h HUD)     { g.hud = h; g.pushHUD() }
func (g *Game) SetScene(s Scene) { g.scene = s; s.Rebuild(g.World) }

// SetPlayerName applies a name chosen on the welcome screen. Blank names fall
// back to the default.
func (g *Game) SetPlayerName(name string) {
	if name == "" {
		name = DefaultPlayerName
	}
	g.Session.PlayerName = name
	g.pushHUD()
}

// Start begins the round from the menu.
func (g *Game) Start() bool {
	if !g.Session.Start(g.cfg.Ammo, g.cfg.TimeLimit, g.World.Objects.TargetCount()) {
		return false
	}
	g.Timer = NewCountdown(g.cfg.TimeLimit)
	log.Printf("session: %s started, %d targets, %d ammo, %ds",
		g.Session.PlayerName, g.Session.Total, g.Session.Ammo, g.Session.TimeLeft)
	g.Events.Emit(Event{Type: EventStarted, Value: g.Session.Total})
	g.pushHUD()
	return true
}

func (g *Game) Pause() bool {
	if !g.Session.Pause() {
		return false
	}
	g.Events.Emit(Event{Type: EventPaused})
	g.pushHUD()
	return true
}

func (g *Game) Resume() bool {
	if !g.Session.Resume() {
		return false
	}
	g.Events.Emit(Event{Type: EventResumed})
	g.pushHUD()
	return true
}

// EndManual ends an active round at the player's request.
func (g *Game) EndManual() bool {
	if !g.Session.Active() {
		return false
	}
	return g.end(OutcomeManual)
}

// Restart discards a finished round and builds a fresh world. The session
// returns to the menu.
func (g *Game) Restart() bool {
	if !g.Session.Over() {
		return false
	}
	g.round++
	g.seed = world.MixSeed(g.seed, g.round)
	w := world.NewGenerator(g.cfg.WorldParams(), g.seed).Generate()
	g.Session.Reset()
	g.install(w)
	return true
}

func (g *Game) end(o Outcome) bool {
	if !g.Session.End(o) {
		return false
	}
	g.Timer.Stop()
	g.Effects.Clear()
	g.Recoil.Snap()
	log.Printf("session: %s (%d/%d destroyed, %s left)",
		o, g.Session.Destroyed, g.Session.Total, FormatClock(g.Session.TimeLeft))
	g.Events.Emit(Event{Type: EventSessionEnded, Outcome: o, Value: g.Session.Destroyed})
	g.pushHUD()
	return true
}

// Look turns the camera by a pointer delta. Ignored unless playing.
func (g *Game) Look(dx, dy float64) {
	if !g.Session.Active() {
		return
	}
	g.Player.Look(dx, dy, g.cfg.MouseSensitivity)
}

// Fire spends one round and resolves the shot along the view direction.
func (g *Game) Fire() ShotResult {
	if !g.Session.Active() {
		return ShotResult{}
	}
	if g.Session.Ammo <= 0 {
		g.Events.Emit(Event{Type: EventDryFire})
		return ShotResult{}
	}
	g.Session.Ammo--
	g.Effects.After(EffectMuzzleFlash, MuzzleFlashDuration, g.clock)
	g.muzzleRoll = g.rng.Float64() * 2 * math.Pi
	g.Recoil.Kick()
	g.Events.Emit(Event{Type: EventShot, Value: g.Session.Ammo})
	g.pushHUD()

	res := ShotResult{Fired: true}
	ray := world.Ray{Origin: g.Player.Position, Dir: g.Player.Forward()}
	hit, ok := g.Shooter.Resolve(ray)
	if !ok {
		return res
	}
	res.Hit, res.Target, res.Point = true, hit.Object, hit.Point

	g.scene.RemoveObject(hit.Object)
	g.Session.Destroyed++
	g.Effects.After(EffectScreenFlash, ScreenFlashDuration, g.clock)
	g.Events.Emit(Event{Type: EventTargetDestroyed, Target: hit.Object, Point: hit.Point, Value: g.Session.Destroyed})
	g.pushHUD()

	if g.Session.Destroyed >= g.Session.Total {
		res.Won = g.end(OutcomeVictory)
	}
	return res
}

// Tick advances one frame. dt is clamped to world.MaxFrameDelta. Order:
// effects, movement and collision, particles, labels, recoil, countdown.
func (g *Game) Tick(dt float64, in Intent) {
	dt = math.Max(0, math.Min(dt, world.MaxFrameDelta))
	g.clock += dt
	g.Effects.Advance(g.clock)

	if !g.Session.Active() {
		g.Recoil.Snap()
		if g.Session.Over() {
			g.Culler.Update(dt, g.Player.Pose(), g.World, g.Caster, true)
		}
		return
	}

	disp := g.Player.Displacement(in, dt)
	g.Player.Position = world.Resolve(g.Player.Position, disp, g.World.Objects)
	g.Particles.Advance(dt)
	g.Culler.Update(dt, g.Player.Pose(), g.World, g.Caster, false)
	g.Recoil.Recover(dt)

	before := g.Timer.Remaining
	expired := g.Timer.Advance(dt)
	if g.Timer.Remaining != before {
		g.Session.TimeLeft = g.Timer.Remaining
		g.Events.Emit(Event{Type: EventTimerTick, Value: g.Session.TimeLeft})
		g.pushHUD()
	}
	if expired {
		g.end(OutcomeTimeExpired)
	}
}

// View snapshots camera and gun feedback for rendering.
func (g *Game) View() FrameView {
	return FrameView{
		Eye:         g.Player.Position,
		Forward:     g.Player.Forward(),
		Yaw:         g.Player.Yaw,
		Pitch:       g.Player.Pitch,
		Recoil:      g.Recoil.Offset,
		MuzzleFlash: g.Effects.Visible(EffectMuzzleFlash),
		MuzzleRoll:  g.muzzleRoll,
		ScreenFlash: g.Effects.Visible(EffectScreenFlash),
	}
}

// HUDState snapshots the score line.
func (g *Game) HUDState() HUDState {
	s := &g.Session
	st := HUDState{
		Phase:     s.Phase,
		Player:    s.PlayerName,
		Ammo:      s.Ammo,
		Destroyed: s.Destroyed,
		Total:     s.Total,
		TimeLeft:  s.TimeLeft,
		Clock:     FormatClock(s.TimeLeft),
		Crosshair: s.Active(),
	}
	if s.Over() {
		st.Title = s.Outcome.Title()
		st.Message = s.Outcome.Message(s.PlayerName, s.Total)
	}
	return st
}

func (g *Game) pushHUD() { g.hud.Update(g.HUDState()) }
