// ABOUTME: Tests for event marker delivery
// ABOUTME: Value validation and minimum inter-trigger spacing
package trigger

import (
	"errors"
	"testing"
	"time"

	"github.com/mscheltienne/stimuli/pkg/clock"
)

func TestTriggerInterface(t *testing.T) {
	var _ Trigger = (*Mock)(nil)
}

func TestMockValueValidation(t *testing.T) {
	m := NewMock(0, nil)
	defer func() { _ = m.Close() }()
	for _, bad := range []int{0, -1, 256, 1000} {
		if err := m.Signal(bad); !errors.Is(err, ErrValue) {
			t.Errorf("Signal(%d): expected ErrValue, got %v", bad, err)
		}
	}
	for _, ok := range []int{1, 128, 255} {
		if err := m.Signal(ok); err != nil {
			t.Errorf("Signal(%d): %v", ok, err)
		}
	}
}

func TestMockEnforcesDelay(t *testing.T) {
	const delay = 30 * time.Millisecond
	clk := clock.New()
	m := NewMock(delay, clk)
	defer func() { _ = m.Close() }()

	if err := m.Signal(1); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	start := clk.Now()
	if err := m.Signal(2); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if elapsed := clk.Now() - start; elapsed < delay-time.Millisecond {
		t.Errorf("second marker delivered after %v, expected at least %v", elapsed, delay)
	}
}

func TestMockNoDelayBetweenSpacedMarkers(t *testing.T) {
	clk := clock.New()
	m := NewMock(5*time.Millisecond, clk)
	defer func() { _ = m.Close() }()

	if err := m.Signal(1); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	start := clk.Now()
	if err := m.Signal(2); err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if elapsed := clk.Now() - start; elapsed > 5*time.Millisecond {
		t.Errorf("marker waited %v although the delay had already passed", elapsed)
	}
}
