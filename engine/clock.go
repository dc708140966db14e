// ABOUTME: Injected time source for the pipeline engine
// ABOUTME: Keeps expiry and classification deterministic under test
package engine

import "time"

// Clock supplies the current time to every time-dependent operation. The
// engine never reads time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock Clock used outside of tests.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a Clock pinned to a settable instant.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time { return c.Time }

// Advance moves the fixed clock forward.
func (c *FixedClock) Advance(d time.Duration) { c.Time = c.Time.Add(d) }
