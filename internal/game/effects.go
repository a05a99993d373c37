package game

import "math"

// EffectKind names a timed display flag.
type EffectKind int

const (
	EffectMuzzleFlash EffectKind = iota
	EffectScreenFlash
	numEffects
)

// Display durations in seconds.
const (
	MuzzleFlashDuration = 0.06
	ScreenFlashDuration = 0.1
)

// Scheduler holds one pending expiry per effect. Effects only toggle display
// flags; they never touch the registry or the particle pool.
type Scheduler struct {
	expiry [numEffects]float64
	on     [numEffects]bool
}

// After shows kind now and schedules it to hide delay seconds later. A
// repeat call extends the deadline.
func (s *Scheduler) After(kind EffectKind, delay, now float64) {
	s.on[kind] = true
	s.expiry[kind] = now + delay
}

// Advance hides every effect whose deadline has passed.
func (s *Scheduler) Advance(now float64) {
	for k := range s.on {
		if s.on[k] && now >= s.expiry[k] {
			s.on[k] = false
		}
	}
}

func (s *Scheduler) Visible(kind EffectKind) bool { return s.on[kind] }

// Clear cancels everything pending.
func (s *Scheduler) Clear() {
	*s = Scheduler{}
}

// Gun recoil tuning.
const (
	RecoilAmount       = 0.03
	RecoilRecoveryRate = 10.0
	recoilSnapSq       = 1e-5
)

// Recoil is the gun's kick-back offset along its local z axis.
type Recoil struct {
	Offset float64
}

func (r *Recoil) Kick() { r.Offset += RecoilAmount }

// Recover eases the offset back toward rest and snaps once it is close.
func (r *Recoil) Recover(dt float64) {
	if r.Offset == 0 {
		return
	}
	r.Offset -= r.Offset * math.Min(dt*RecoilRecoveryRate, 1)
	if r.Offset*r.Offset < recoilSnapSq {
		r.Offset = 0
	}
}

func (r *Recoil) Snap() { r.Offset = 0 }
