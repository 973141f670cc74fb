// ABOUTME: Monotonic high-resolution clock abstraction
// ABOUTME: Timing foundation for stimulus scheduling and sleeping
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is the minimal capability required for stimulus timing: a monotonic,
// resettable time source. Implementations must guarantee that Now is
// non-decreasing between calls and report elapsed time since their epoch.
//
// Any type meeting this contract may be substituted wherever a Clock is
// accepted, e.g. a clock synchronized to an external recording device.
type Clock interface {
	// Now returns the elapsed time since the clock's epoch.
	Now() time.Duration

	// Reset rebases the epoch to the current instant. Subsequent Now calls
	// report time relative to the new epoch.
	Reset()
}

// Monotonic is the default Clock. It reads the host's monotonic timer through
// the Go runtime, which selects the highest-resolution source available
// (nanosecond-granularity on the supported platforms).
//
// The epoch is the instant of New (or the last Reset). Reset is safe to call
// concurrently with Now readers, including the audio fill callback.
type Monotonic struct {
	epoch atomic.Pointer[time.Time]
}

// New creates a Monotonic clock with its epoch at the current instant.
func New() *Monotonic {
	c := &Monotonic{}
	c.Reset()
	return c
}

// Now returns the elapsed time since the epoch.
func (c *Monotonic) Now() time.Duration {
	return time.Since(*c.epoch.Load())
}

// Reset rebases the epoch to the current instant.
func (c *Monotonic) Reset() {
	now := time.Now()
	c.epoch.Store(&now)
}
