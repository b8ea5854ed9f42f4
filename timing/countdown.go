package timing

// A Countdown is a single-shot timer that counts a fixed delay down to zero.
// It never reactivates once it finishes.
type Countdown struct {
	remaining Seconds
	finished  bool
}

// NewCountdown creates a countdown that finishes after delay. A non-positive
// delay produces a countdown that finishes on its first Tick, including
// Tick(0).
func NewCountdown(delay Seconds) Countdown {
	if delay < 0 {
		delay = 0
	}

	return Countdown{remaining: delay}
}

// Tick advances the countdown by elapsed and reports whether the countdown
// finished as a result of this call. Ticking an already-finished countdown is
// a no-op and returns false. A negative elapsed is clamped to zero and has no
// effect on the remaining time.
func (c *Countdown) Tick(elapsed Seconds) bool {
	if c.finished {
		return false
	}

	if elapsed < 0 {
		elapsed = 0
	}

	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		c.finished = true
		return true
	}

	return false
}

// Finished returns true once the countdown has reached zero.
func (c *Countdown) Finished() bool {
	return c.finished
}

// Remaining returns the time left before the countdown finishes.
func (c *Countdown) Remaining() Seconds {
	return c.remaining
}
