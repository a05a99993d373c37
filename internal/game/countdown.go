package game

import "fmt"

// Countdown is the 1 Hz session timer. It is driven from the tick rather than
// a free-running callback, and stops itself once it reaches zero.
type Countdown struct {
	Remaining int

	acc     float64
	stopped bool
}

func NewCountdown(seconds int) *Countdown {
	return &Countdown{Remaining: seconds}
}

// Advance accumulates dt and decrements Remaining once per whole second.
// It reports true exactly once, on the step that reaches zero.
func (c *Countdown) Advance(dt float64) bool {
	if c.stopped || dt <= 0 {
		return false
	}
	c.acc += dt
	for c.acc >= 1 {
		c.acc--
		c.Remaining--
		if c.Remaining <= 0 {
			c.Remaining = 0
			c.Stop()
			return true
		}
	}
	return false
}

func (c *Countdown) Stop() {
	c.stopped = true
	c.acc = 0
}

func (c *Countdown) Stopped() bool { return c.stopped }

// FormatClock renders whole seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
