// ABOUTME: High-precision blocking sleep built on the Clock capability
// ABOUTME: Coarse OS sleeps plus a short busy-poll to absorb scheduler jitter
package clock

import "time"

// spinThreshold is the remainder below which Sleep stops yielding to the OS
// scheduler and busy-polls the clock instead. OS sleep granularity is on the
// order of a millisecond; polling the last stretch keeps overshoot in the
// tens of microseconds.
const spinThreshold = 200 * time.Microsecond

// Sleep blocks the calling goroutine for at least d, measured by c, with a
// lower overshoot than time.Sleep. Most of the wait is spent in halving OS
// sleeps; the final stretch busy-polls c.Now.
//
// A d <= 0 returns immediately. Sleep blocks the calling goroutine only;
// callers needing a non-blocking wait must run it on their own goroutine.
func Sleep(d time.Duration, c Clock) {
	if d <= 0 {
		return
	}
	deadline := c.Now() + d
	for {
		remaining := deadline - c.Now()
		if remaining <= 0 {
			return
		}
		if remaining >= spinThreshold {
			// Sleep half of the remainder so a coarse wakeup cannot
			// overshoot the deadline.
			time.Sleep(remaining / 2)
		}
	}
}
