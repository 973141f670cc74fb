// ABOUTME: Event marker capability for synchronizing with recording equipment
// ABOUTME: Trigger contract plus a mock implementation for development
package trigger

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mscheltienne/stimuli/pkg/clock"
)

// ErrValue reports a trigger value outside the 8-bit marker range.
var ErrValue = errors.New("trigger value out of range")

// Trigger delivers event markers to external recording equipment. Signal
// writes one marker; implementations enforce a minimum inter-trigger delay so
// the receiving hardware can latch consecutive markers.
type Trigger interface {
	// Signal delivers the marker value, in [1, 255].
	Signal(value int) error

	// Close releases the trigger hardware.
	Close() error
}

// checkValue validates an 8-bit marker value; 0 is reserved for the resting
// state of the lines.
func checkValue(value int) error {
	if value < 1 || value > 255 {
		return fmt.Errorf("%w: %d not in [1, 255]", ErrValue, value)
	}
	return nil
}

// Mock is a Trigger without hardware: markers are logged. It enforces the
// same minimum inter-trigger delay as a hardware port, measured on the
// provided clock, so experiment code times identically against it.
type Mock struct {
	clk   clock.Clock
	delay time.Duration
	last  time.Duration
	armed bool
}

// NewMock creates a mock trigger. delay is the minimum time between two
// markers; clk may be nil to use a fresh monotonic clock.
func NewMock(delay time.Duration, clk clock.Clock) *Mock {
	if clk == nil {
		clk = clock.New()
	}
	return &Mock{clk: clk, delay: delay}
}

// Signal logs the marker, waiting out the inter-trigger delay if the
// previous marker is too recent.
func (m *Mock) Signal(value int) error {
	if err := checkValue(value); err != nil {
		return err
	}
	if m.armed {
		if wait := m.delay - (m.clk.Now() - m.last); wait > 0 {
			clock.Sleep(wait, m.clk)
		}
	}
	m.last = m.clk.Now()
	m.armed = true
	log.Printf("trigger: mock set to %d", value)
	return nil
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}
