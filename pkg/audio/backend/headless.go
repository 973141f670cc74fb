// ABOUTME: Headless output device pumped manually
// ABOUTME: Deterministic callback driving for tests and audio-less hosts
package backend

import (
	"fmt"
	"sync"
)

// HeadlessDevice is an output device without hardware: the owner drives the
// fill callback by calling Pump, standing in for the real-time thread of the
// audio subsystem. Tests use it to step playback deterministically.
type HeadlessDevice struct {
	mu         sync.Mutex
	fill       FillFunc
	sampleRate int
	channels   int
}

// NewHeadlessDevice creates an unopened headless device.
func NewHeadlessDevice() *HeadlessDevice {
	return &HeadlessDevice{}
}

// Open registers the fill callback.
func (d *HeadlessDevice) Open(sampleRate, channels int, fill FillFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fill != nil {
		return fmt.Errorf("%w: device already open", ErrDevice)
	}
	d.fill = fill
	d.sampleRate = sampleRate
	d.channels = channels
	return nil
}

// Close unregisters the callback.
func (d *HeadlessDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fill = nil
	d.sampleRate, d.channels = 0, 0
	return nil
}

// Opened reports the current stream configuration, zero when closed.
func (d *HeadlessDevice) Opened() (sampleRate, channels int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleRate, d.channels
}

// Pump invokes the callback for frames output frames, like one hardware
// buffer request, and returns the emitted PCM bytes. It returns nil when the
// device is closed.
func (d *HeadlessDevice) Pump(frames int) []byte {
	d.mu.Lock()
	fill := d.fill
	channels := d.channels
	d.mu.Unlock()
	if fill == nil {
		return nil
	}
	out := make([]byte, frames*channels*2)
	fill(out)
	return out
}
