package audio

import (
	"io"
	"testing"

	"arena/internal/game"
	"arena/internal/sfx"
)

func TestSoundFor(t *testing.T) {
	tests := []struct {
		e    game.Event
		kind sfx.Kind
		ok   bool
	}{
		{game.Event{Type: game.EventStarted}, sfx.Start, true},
		{game.Event{Type: game.EventShot}, sfx.Gunshot, true},
		{game.Event{Type: game.EventDryFire}, sfx.DryFire, true},
		{game.Event{Type: game.EventTargetDestroyed}, sfx.Shatter, true},
		{game.Event{Type: game.EventSessionEnded, Outcome: game.OutcomeVictory}, sfx.Victory, true},
		{game.Event{Type: game.EventSessionEnded, Outcome: game.OutcomeTimeExpired}, sfx.TimeUp, true},
		{game.Event{Type: game.EventSessionEnded, Outcome: game.OutcomeManual}, sfx.EndEarly, true},
		{game.Event{Type: game.EventPaused}, 0, false},
		{game.Event{Type: game.EventTimerTick}, 0, false},
	}
	for _, tt := range tests {
		kind, ok := SoundFor(tt.e)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("event %d: got %v/%v", tt.e.Type, kind, ok)
		}
	}
}

func TestNilPlayerIsSilent(t *testing.T) {
	var p *Player
	if p.Ready() {
		t.Fatal("nil player ready")
	}
	p.Play(sfx.Gunshot)
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	if err != nil || len(got) != 5 {
		t.Fatalf("read %v, %v", got, err)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Fatalf("after drain: %d, %v", n, err)
	}
}
