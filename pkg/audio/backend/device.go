// ABOUTME: Output device abstraction
// ABOUTME: Common contract for malgo, oto, PortAudio and headless devices
package backend

import "errors"

// ErrDevice reports that an output device could not be opened or configured.
var ErrDevice = errors.New("audio device unavailable")

// FillFunc is the engine's callback: it fills out entirely with interleaved
// signed 16-bit little-endian PCM. It is invoked from the device's real-time
// context and must never block.
type FillFunc func(out []byte)

// Device is an audio output stream. Open starts the hardware stream and
// registers the fill callback, which the device invokes at its own cadence
// until Close.
type Device interface {
	// Open configures and starts the output stream. Opening an already open
	// device with a different configuration reports an error; the caller
	// closes first.
	Open(sampleRate, channels int, fill FillFunc) error

	// Close stops the stream and releases its resources. Idempotent.
	Close() error
}
