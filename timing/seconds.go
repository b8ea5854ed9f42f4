package timing

import "time"

// Seconds is a span of time, in seconds, measured on the host's clock.
type Seconds float64

// FromDuration converts a time.Duration to Seconds.
func FromDuration(d time.Duration) Seconds {
	return Seconds(d.Seconds())
}

// Duration converts Seconds to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
