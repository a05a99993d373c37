// Package audio plays synthesized effects through oto in response to game
// events.
package audio

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"arena/internal/game"
	"arena/internal/sfx"
)

// maxVoices caps overlapping players so rapid fire cannot clip the mix.
const maxVoices = 8

// Player owns the oto context. A nil *Player is silent.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	seed   uint64

	seq    atomic.Uint64
	voices atomic.Int32
}

// New opens the output device. volume is in [0,1].
func New(volume float64, seed uint64) (*Player, error) {
	ctx, ready, err := oto.NewContext(sfx.SampleRate, sfx.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx, ready: ready, volume: volume, seed: seed}, nil
}

// Ready reports whether the device finished initializing.
func (p *Player) Ready() bool {
	if p == nil {
		return false
	}
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// Play renders kind and plays it on its own goroutine. Dropped when the
// device is not ready or every voice is busy.
func (p *Player) Play(kind sfx.Kind) {
	if !p.Ready() || p.volume <= 0 {
		return
	}
	if p.voices.Add(1) > maxVoices {
		p.voices.Add(-1)
		return
	}
	seed := p.seed + p.seq.Add(1)
	go func() {
		defer p.voices.Add(-1)
		pcm := sfx.Generate(kind, seed)
		if len(pcm) == 0 {
			return
		}
		player := p.ctx.NewPlayer(&soundReader{data: pcm})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Attach subscribes the player to every event that has a sound.
func (p *Player) Attach(bus *game.EventBus) {
	for _, t := range []game.EventType{
		game.EventStarted,
		game.EventShot,
		game.EventDryFire,
		game.EventTargetDestroyed,
		game.EventSessionEnded,
	} {
		bus.Subscribe(t, func(e game.Event) {
			if kind, ok := SoundFor(e); ok {
				p.Play(kind)
			}
		})
	}
}

// SoundFor maps a game event to its effect.
func SoundFor(e game.Event) (sfx.Kind, bool) {
	switch e.Type {
	case game.EventStarted:
		return sfx.Start, true
	case game.EventShot:
		return sfx.Gunshot, true
	case game.EventDryFire:
		return sfx.DryFire, true
	case game.EventTargetDestroyed:
		return sfx.Shatter, true
	case game.EventSessionEnded:
		switch e.Outcome {
		case game.OutcomeVictory:
			return sfx.Victory, true
		case game.OutcomeTimeExpired:
			return sfx.TimeUp, true
		}
		return sfx.EndEarly, true
	}
	return 0, false
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
