// ABOUTME: Tests for the monotonic clock
// ABOUTME: Verifies non-decreasing reads and epoch rebasing
package clock

import (
	"testing"
	"time"
)

func TestMonotonicImplementsClock(t *testing.T) {
	var _ Clock = (*Monotonic)(nil)
}

func TestNowNonDecreasing(t *testing.T) {
	c := New()
	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %v after %v", now, prev)
		}
		prev = now
	}
}

func TestNowStartsNearZero(t *testing.T) {
	c := New()
	if now := c.Now(); now > 50*time.Millisecond {
		t.Errorf("fresh clock reports %v, expected near zero", now)
	}
}

func TestReset(t *testing.T) {
	c := New()
	time.Sleep(10 * time.Millisecond)
	before := c.Now()
	c.Reset()
	after := c.Now()
	if after >= before {
		t.Errorf("reset did not rebase the epoch: %v -> %v", before, after)
	}
	if after > 50*time.Millisecond {
		t.Errorf("post-reset read %v, expected near zero", after)
	}
}

func TestResetIsPerInstance(t *testing.T) {
	a := New()
	b := New()
	time.Sleep(5 * time.Millisecond)
	a.Reset()
	if b.Now() < 5*time.Millisecond {
		t.Error("resetting one clock affected another instance")
	}
}

func TestResolution(t *testing.T) {
	// Two distinct reads separated by a microsecond of work must differ;
	// sub-millisecond resolution is required for stimulus scheduling.
	c := New()
	t0 := c.Now()
	deadline := time.Now().Add(time.Millisecond)
	for time.Now().Before(deadline) {
	}
	t1 := c.Now()
	if t1-t0 < 500*time.Microsecond || t1-t0 > 100*time.Millisecond {
		t.Errorf("elapsed %v over a ~1ms busy wait", t1-t0)
	}
}
