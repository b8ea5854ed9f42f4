package timing

import "time"

// A Clock supplies the elapsed time since its previous Delta call. The host's
// update loop reads one delta per tick and feeds it to every pool it owns.
type Clock interface {
	Delta() Seconds
}

// A ManualClock is a Clock advanced explicitly by the caller. It is the
// natural clock for tests and for hosts that already track frame time.
type ManualClock struct {
	pending Seconds
}

// NewManualClock creates a manual clock with no pending time.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Advance adds d to the time that the next Delta call will report. Negative
// values are ignored.
func (c *ManualClock) Advance(d Seconds) {
	if d < 0 {
		return
	}

	c.pending += d
}

// Delta returns the time accumulated through Advance since the previous Delta
// call, and resets it.
func (c *ManualClock) Delta() Seconds {
	d := c.pending
	c.pending = 0
	return d
}

// A WallClock is a Clock that reports real elapsed time between Delta calls.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

// NewWallClock creates a wall clock. The first Delta call reports the time
// elapsed since creation.
func NewWallClock() *WallClock {
	c := &WallClock{now: time.Now}
	c.last = c.now()
	return c
}

// Delta returns the real time elapsed since the previous Delta call.
func (c *WallClock) Delta() Seconds {
	now := c.now()
	d := FromDuration(now.Sub(c.last))
	c.last = now

	if d < 0 {
		return 0
	}

	return d
}
