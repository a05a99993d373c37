package game

import (
	"strings"
	"testing"
)

func TestSessionTransitions(t *testing.T) {
	var s Session
	if s.Pause() || s.Resume() {
		t.Fatal("menu must not pause or resume")
	}
	if !s.Start(20, 300, 10) || !s.Active() {
		t.Fatal("start from menu failed")
	}
	if s.Start(20, 300, 10) {
		t.Fatal("second start accepted")
	}
	if !s.Pause() || s.Active() || s.Phase != PhasePaused {
		t.Fatalf("pause failed: %v", s.Phase)
	}
	if !s.Resume() || !s.Active() {
		t.Fatal("resume failed")
	}
	if !s.End(OutcomeVictory) {
		t.Fatal("first end rejected")
	}
	if s.End(OutcomeTimeExpired) || s.Outcome != OutcomeVictory {
		t.Fatalf("end is not idempotent: %v", s.Outcome)
	}
	if s.Pause() || s.Resume() || s.Active() {
		t.Fatal("terminal session changed phase")
	}

	s.PlayerName = "Ada"
	s.Reset()
	if s.Phase != PhaseMenu || s.Outcome != OutcomeNone || s.PlayerName != "Ada" {
		t.Fatalf("reset: %+v", s)
	}
}

func TestOutcomeText(t *testing.T) {
	tests := []struct {
		o     Outcome
		title string
		msg   string
	}{
		{OutcomeVictory, "Victory!", "You destroyed all 10 targets, Ada!"},
		{OutcomeTimeExpired, "Time's Up!", "You ran out of time, Ada. Better luck next round!"},
		{OutcomeManual, "Game Ended", "You ended the game early, Ada."},
		{OutcomeOther, "Game Over", "Game session finished."},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			if got := tt.o.Title(); got != tt.title {
				t.Fatalf("title %q want %q", got, tt.title)
			}
			if got := tt.o.Message("Ada", 10); got != tt.msg {
				t.Fatalf("message %q want %q", got, tt.msg)
			}
		})
	}
}

func TestCountdown(t *testing.T) {
	c := NewCountdown(3)
	if c.Advance(0.5) || c.Remaining != 3 {
		t.Fatalf("half second ticked: %d", c.Remaining)
	}
	if c.Advance(0.5) || c.Remaining != 2 {
		t.Fatalf("remaining=%d want 2", c.Remaining)
	}
	if !c.Advance(5) {
		t.Fatal("expiry not reported")
	}
	if c.Remaining != 0 || !c.Stopped() {
		t.Fatalf("remaining=%d stopped=%v", c.Remaining, c.Stopped())
	}
	if c.Advance(1) {
		t.Fatal("stopped countdown reported expiry again")
	}
}

func TestCountdownStop(t *testing.T) {
	c := NewCountdown(2)
	c.Stop()
	if c.Advance(10) || c.Remaining != 2 {
		t.Fatalf("stopped countdown advanced to %d", c.Remaining)
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{300: "5:00", 61: "1:01", 59: "0:59", 0: "0:00", -4: "0:00"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d)=%q want %q", in, got, want)
		}
	}
}

func TestSchedulerExpiry(t *testing.T) {
	var s Scheduler
	s.After(EffectMuzzleFlash, MuzzleFlashDuration, 1.0)
	s.After(EffectScreenFlash, ScreenFlashDuration, 1.0)

	s.Advance(1.05)
	if !s.Visible(EffectMuzzleFlash) || !s.Visible(EffectScreenFlash) {
		t.Fatal("effects hidden early")
	}
	s.Advance(1.07)
	if s.Visible(EffectMuzzleFlash) || !s.Visible(EffectScreenFlash) {
		t.Fatal("muzzle flash should be gone, screen flash still up")
	}
	s.Clear()
	if s.Visible(EffectScreenFlash) {
		t.Fatal("clear left an effect visible")
	}
}

func TestRecoilRecovers(t *testing.T) {
	var r Recoil
	r.Kick()
	if r.Offset != RecoilAmount {
		t.Fatalf("offset %.3f", r.Offset)
	}
	r.Recover(0.05)
	if r.Offset <= 0 || r.Offset >= RecoilAmount {
		t.Fatalf("offset %.4f after one step", r.Offset)
	}
	for i := 0; i < 20; i++ {
		r.Recover(0.05)
	}
	if r.Offset != 0 {
		t.Fatalf("did not snap to rest: %g", r.Offset)
	}
}

func TestOverlayFor(t *testing.T) {
	controls := []string{"Mouse: look"}
	tests := []struct {
		st    HUDState
		ok    bool
		title string
		hint  string
	}{
		{HUDState{Phase: PhaseMenu, Player: "Ada", Total: 10}, true, "Pillar Shooter Arena", "Click anywhere to Start"},
		{HUDState{Phase: PhasePlaying}, false, "", ""},
		{HUDState{Phase: PhasePaused, Total: 10}, true, "Game Paused", "Click anywhere to Resume"},
		{HUDState{Phase: PhaseOver, Title: "Victory!", Message: "m"}, true, "Victory!", "Press R to play again"},
	}
	for _, tt := range tests {
		o, ok := OverlayFor(tt.st, controls, "Click anywhere")
		if ok != tt.ok || o.Title != tt.title || o.Hint != tt.hint {
			t.Errorf("%v: got %q/%q ok=%v", tt.st.Phase, o.Title, o.Hint, ok)
		}
	}

	o, _ := OverlayFor(HUDState{Phase: PhaseMenu, Player: "Ada", Total: 7}, controls, "Click anywhere")
	if o.Lines[0] != "Player: Ada" || o.Lines[len(o.Lines)-1] != "Mouse: look" {
		t.Fatalf("menu lines %q", o.Lines)
	}
	if !strings.Contains(strings.Join(o.Lines, "\n"), "all 7 red pillars") {
		t.Fatalf("menu brief missing target count: %q", o.Lines)
	}
}
