package game

import (
	"io"
	"log"
	"math"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"arena/internal/world"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type recordHUD struct {
	last    HUDState
	updates int
}

func (h *recordHUD) Update(s HUDState) { h.last = s; h.updates++ }

type recordScene struct {
	rebuilt int
	removed []world.ObjectID
}

func (s *recordScene) Rebuild(*world.World)             { s.rebuilt++ }
func (s *recordScene) RemoveObject(id world.ObjectID) { s.removed = append(s.removed, id) }

type countingCaster struct {
	inner world.Caster
	calls int
}

func (c *countingCaster) Cast(r world.Ray, far float64, sc world.Scope) []world.Hit {
	c.calls++
	return c.inner.Cast(r, far, sc)
}

// ringYaw is the yaw that faces target i of an n-target ring.
func ringYaw(i, n int) float64 { return float64(i) * 2 * math.Pi / float64(n) }

// ringWorld places n targets on a circle of radius 10 around the origin.
func ringWorld(n int) (*world.World, []world.ObjectID) {
	w := world.NewWorld(n)
	ids := make([]world.ObjectID, n)
	for i := range ids {
		a := ringYaw(i, n)
		s := world.Shape{Kind: world.ShapeCylinder, Radius: 0.5, Height: 2}
		ids[i] = w.PlaceTarget(world.Object{
			Shape:    s,
			Position: mgl64.Vec3{-math.Sin(a) * 10, s.RestY(), -math.Cos(a) * 10},
			Radius:   0.5,
			Height:   2,
			Ordinal:  i + 1,
		})
	}
	return w, ids
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.PlayerName = "Ada"
	cfg.Targets = 10
	cfg.Objects = 100
	return cfg
}

func TestTenHitsWinExactlyOnce(t *testing.T) {
	w, ids := ringWorld(10)
	hud, scene := &recordHUD{}, &recordScene{}
	g := NewWithWorld(testConfig(), w, hud, scene)
	counter := &countingCaster{inner: g.Caster}
	g.Shooter.Caster = counter

	ended := 0
	g.Events.Subscribe(EventSessionEnded, func(e Event) {
		ended++
		if e.Outcome != OutcomeVictory {
			t.Errorf("outcome %v", e.Outcome)
		}
	})

	if !g.Start() {
		t.Fatal("start failed")
	}
	if g.Session.Total != 10 || g.Session.Ammo != 20 {
		t.Fatalf("session %+v", g.Session)
	}

	for i, id := range ids {
		g.Player.Yaw = ringYaw(i, len(ids))
		g.Culler.Update(0, g.Player.Pose(), g.World, g.Caster, true)
		if l, ok := g.World.Labels.Get(id); !ok || !l.Visible {
			t.Fatalf("target %d not visible before firing", i+1)
		}

		res := g.Fire()
		if !res.Fired || !res.Hit || res.Target != id {
			t.Fatalf("shot %d: %+v", i+1, res)
		}
		if res.Won != (i == len(ids)-1) {
			t.Fatalf("shot %d won=%v", i+1, res.Won)
		}
	}

	if g.Session.Destroyed != 10 || g.Session.Ammo != 10 {
		t.Fatalf("destroyed=%d ammo=%d", g.Session.Destroyed, g.Session.Ammo)
	}
	if !g.Session.Over() || g.Session.Outcome != OutcomeVictory || ended != 1 {
		t.Fatalf("phase=%v outcome=%v ended=%d", g.Session.Phase, g.Session.Outcome, ended)
	}
	if g.World.Objects.TargetCount() != 0 || g.World.Labels.Len() != 0 {
		t.Fatal("targets or labels left behind")
	}
	if len(scene.removed) != 10 {
		t.Fatalf("scene saw %d removals", len(scene.removed))
	}
	if hud.last.Title != "Victory!" || hud.last.Crosshair {
		t.Fatalf("hud %+v", hud.last)
	}

	calls := counter.calls
	for i := 0; i < 3; i++ {
		if res := g.Fire(); res.Fired {
			t.Fatal("fired after the win")
		}
		g.Tick(0.016, Intent{})
	}
	if counter.calls != calls || ended != 1 || g.Session.Ammo != 10 {
		t.Fatalf("post-win activity: casts %d->%d ended=%d", calls, counter.calls, ended)
	}
}

func TestTimeExpiresWithThreeDestroyed(t *testing.T) {
	w, _ := ringWorld(10)
	cfg := testConfig()
	cfg.TimeLimit = 5
	g := NewWithWorld(cfg, w, nil, nil)
	g.Start()

	for i := 0; i < 3; i++ {
		g.Player.Yaw = ringYaw(i, 10)
		if res := g.Fire(); !res.Hit {
			t.Fatalf("shot %d missed", i+1)
		}
	}

	var ticks []int
	g.Events.Subscribe(EventTimerTick, func(e Event) { ticks = append(ticks, e.Value) })

	for i := 0; i < 1000 && !g.Session.Over(); i++ {
		g.Tick(0.1, Intent{})
	}
	if g.Session.Outcome != OutcomeTimeExpired {
		t.Fatalf("outcome %v", g.Session.Outcome)
	}
	if g.Session.Destroyed != 3 || g.Session.TimeLeft != 0 {
		t.Fatalf("destroyed=%d left=%d", g.Session.Destroyed, g.Session.TimeLeft)
	}
	if len(ticks) != 5 || ticks[0] != 4 || ticks[4] != 0 {
		t.Fatalf("ticks %v", ticks)
	}
	if !g.Timer.Stopped() {
		t.Fatal("timer still running")
	}
	if g.EndManual() {
		t.Fatal("manual end after expiry")
	}
}

type staleCaster struct{ hit world.Hit }

func (c staleCaster) Cast(world.Ray, float64, world.Scope) []world.Hit {
	return []world.Hit{c.hit}
}

func TestShotOnRemovedTargetIsAMiss(t *testing.T) {
	w, ids := ringWorld(2)
	g := NewWithWorld(testConfig(), w, nil, nil)
	g.Shooter.Caster = staleCaster{world.Hit{Object: ids[0], Dist: 9.5}}
	g.Start()

	if res := g.Fire(); !res.Hit {
		t.Fatalf("first shot %+v", res)
	}
	res := g.Fire()
	if !res.Fired || res.Hit {
		t.Fatalf("second shot on the same id %+v", res)
	}
	if g.Session.Destroyed != 1 || g.Session.Over() {
		t.Fatalf("destroyed=%d over=%v", g.Session.Destroyed, g.Session.Over())
	}
}

func TestShotIgnoresNonTargets(t *testing.T) {
	w, ids := ringWorld(1)
	s := world.Shape{Kind: world.ShapeCube, Size: 2}
	w.Objects.Add(world.Object{Shape: s, Position: mgl64.Vec3{0, 1, -5}, Radius: 1.4, Height: 2})
	g := NewWithWorld(testConfig(), w, nil, nil)
	g.Start()

	res := g.Fire()
	if !res.Hit || res.Target != ids[0] {
		t.Fatalf("obstacle blocked the shot: %+v", res)
	}
}

func TestFireWithoutAmmo(t *testing.T) {
	w, _ := ringWorld(1)
	cfg := testConfig()
	cfg.Ammo = 0
	g := NewWithWorld(cfg, w, nil, nil)
	dry := 0
	g.Events.Subscribe(EventDryFire, func(Event) { dry++ })
	g.Start()

	if res := g.Fire(); res.Fired || res.Hit {
		t.Fatalf("fired without ammo: %+v", res)
	}
	if dry != 1 || g.World.Objects.TargetCount() != 1 {
		t.Fatalf("dry=%d targets=%d", dry, g.World.Objects.TargetCount())
	}
}

func TestFireFeedback(t *testing.T) {
	w, _ := ringWorld(2)
	g := NewWithWorld(testConfig(), w, nil, nil)
	g.Start()
	g.Fire()

	v := g.View()
	if !v.MuzzleFlash || !v.ScreenFlash || v.Recoil != RecoilAmount {
		t.Fatalf("view %+v", v)
	}
	if g.Particles.ActiveCount() != world.ParticlesPerEffect {
		t.Fatalf("particles %d", g.Particles.ActiveCount())
	}

	g.Tick(0.07, Intent{})
	if v := g.View(); v.MuzzleFlash || !v.ScreenFlash {
		t.Fatalf("after 70ms %+v", v)
	}
	g.Tick(0.04, Intent{})
	if v := g.View(); v.ScreenFlash {
		t.Fatal("screen flash outlived 100ms")
	}
}

func TestTickClampsAndMoves(t *testing.T) {
	g := NewWithWorld(testConfig(), world.NewWorld(0), nil, nil)
	g.Start()

	g.Tick(5, Intent{Forward: 1})
	want := mgl64.Vec3{0, world.PlayerHeight, -world.PlayerSpeed * world.MaxFrameDelta}
	if !g.Player.Position.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("pos %v want %v", g.Player.Position, want)
	}
	if g.Clock() != world.MaxFrameDelta {
		t.Fatalf("clock %.3f", g.Clock())
	}
}

func TestTickCollidesWithObstacles(t *testing.T) {
	w := world.NewWorld(1)
	s := world.Shape{Kind: world.ShapeSphere, Radius: 1}
	w.Objects.Add(world.Object{Shape: s, Position: mgl64.Vec3{0, 1, -1.5}, Radius: 1, Height: 2})
	g := NewWithWorld(testConfig(), w, nil, nil)
	g.Start()

	for i := 0; i < 20; i++ {
		g.Tick(0.05, Intent{Forward: 1})
	}
	d := math.Hypot(g.Player.Position[0], g.Player.Position[2]+1.5)
	if d < 1+world.PlayerRadius-1e-9 {
		t.Fatalf("walked into the sphere: d=%.4f", d)
	}
}

func TestPausedTickFreezesPlay(t *testing.T) {
	w, _ := ringWorld(2)
	g := NewWithWorld(testConfig(), w, nil, nil)
	g.Start()
	g.Fire()
	g.Pause()

	pos := g.Player.Position
	for i := 0; i < 30; i++ {
		g.Tick(0.1, Intent{Forward: 1})
	}
	if g.Player.Position != pos {
		t.Fatal("moved while paused")
	}
	if g.Session.TimeLeft != g.Config().TimeLimit {
		t.Fatalf("timer ran while paused: %d", g.Session.TimeLeft)
	}
	if g.Recoil.Offset != 0 {
		t.Fatal("recoil not snapped while paused")
	}
	if res := g.Fire(); res.Fired {
		t.Fatal("fired while paused")
	}
	yaw := g.Player.Yaw
	g.Look(100, 0)
	if g.Player.Yaw != yaw {
		t.Fatal("looked around while paused")
	}

	if !g.Resume() {
		t.Fatal("resume failed")
	}
	g.Tick(0.1, Intent{Forward: 1})
	if g.Player.Position == pos {
		t.Fatal("no movement after resume")
	}
}

func TestEndManualAndRestart(t *testing.T) {
	cfg := testConfig()
	hud, scene := &recordHUD{}, &recordScene{}
	g, err := New(cfg, hud, scene)
	if err != nil {
		t.Fatal(err)
	}
	if g.Restart() {
		t.Fatal("restart before the round ended")
	}
	g.Start()
	g.Fire()
	if !g.EndManual() || g.Session.Outcome != OutcomeManual {
		t.Fatalf("manual end: %v", g.Session.Outcome)
	}
	if hud.last.Title != "Game Ended" || hud.last.Message != "You ended the game early, Ada." {
		t.Fatalf("hud %+v", hud.last)
	}
	if g.View().MuzzleFlash {
		t.Fatal("effects survived session end")
	}

	oldSeed := g.Seed()
	if !g.Restart() {
		t.Fatal("restart failed")
	}
	if g.Seed() == oldSeed || scene.rebuilt != 2 {
		t.Fatalf("seed %d rebuilt %d", g.Seed(), scene.rebuilt)
	}
	if g.Session.Phase != PhaseMenu || g.Session.PlayerName != "Ada" {
		t.Fatalf("session %+v", g.Session)
	}
	if !g.Start() || g.Session.Ammo != cfg.Ammo || g.Session.Destroyed != 0 {
		t.Fatalf("second round %+v", g.Session)
	}
	if g.Particles.ActiveCount() != 0 {
		t.Fatal("particles carried into the new round")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TimeLimit = 0
	if _, err := New(cfg, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlayerLook(t *testing.T) {
	p := NewPlayer()
	if f := p.Forward(); !f.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Fatalf("initial forward %v", f)
	}
	p.Look(100, 0, 0.002)
	if f := p.Forward(); f[0] <= 0 {
		t.Fatalf("pointer right should turn right: %v", f)
	}
	p.Look(0, -1e6, 0.002)
	if p.Pitch != math.Pi/2 {
		t.Fatalf("pitch not clamped: %.3f", p.Pitch)
	}
	p.Look(0, 1e6, 0.002)
	if p.Pitch != -math.Pi/2 {
		t.Fatalf("pitch not clamped: %.3f", p.Pitch)
	}
}

func TestPlayerDisplacement(t *testing.T) {
	p := NewPlayer()
	p.Pitch = 1.2

	tests := []struct {
		name string
		in   Intent
		want mgl64.Vec3
	}{
		{"idle", Intent{}, mgl64.Vec3{}},
		{"forward", Intent{Forward: 1}, mgl64.Vec3{0, 0, -0.5}},
		{"back", Intent{Forward: -1}, mgl64.Vec3{0, 0, 0.5}},
		{"right", Intent{Right: 1}, mgl64.Vec3{0.5, 0, 0}},
		{"diagonal", Intent{Forward: 1, Right: -1}, mgl64.Vec3{-0.5 / math.Sqrt2, 0, -0.5 / math.Sqrt2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Displacement(tt.in, 0.1)
			if !got.ApproxEqualThreshold(tt.want, 1e-12) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}
