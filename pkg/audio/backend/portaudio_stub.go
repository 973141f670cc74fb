//go:build !portaudio

// ABOUTME: PortAudio stub when the library is not compiled in
// ABOUTME: Reports a device error unless built with -tags portaudio
package backend

import "fmt"

// PortAudioDevice is a stub; build with -tags portaudio to enable it.
type PortAudioDevice struct{}

// NewPortAudioDevice creates a stub PortAudio device.
func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

// Open reports that PortAudio support is not compiled in.
func (d *PortAudioDevice) Open(int, int, FillFunc) error {
	return fmt.Errorf("%w: portaudio support not enabled (build with -tags portaudio)", ErrDevice)
}

// Close is a no-op.
func (d *PortAudioDevice) Close() error {
	return nil
}
