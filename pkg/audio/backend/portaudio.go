//go:build portaudio

// ABOUTME: PortAudio-based output device
// ABOUTME: Cross-platform callback playback behind the portaudio build tag
package backend

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDevice plays through PortAudio. PortAudio invokes the stream
// callback on its own real-time thread.
type PortAudioDevice struct {
	stream  *portaudio.Stream
	scratch []byte
}

// NewPortAudioDevice creates an unopened PortAudio device.
func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

// Open initializes PortAudio and starts a playback stream on the default
// output device.
func (d *PortAudioDevice) Open(sampleRate, channels int, fill FillFunc) error {
	if d.stream != nil {
		return fmt.Errorf("%w: device already open", ErrDevice)
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: initializing portaudio: %v", ErrDevice, err)
	}
	// Pre-size the scratch buffer so the callback allocates at most once.
	d.scratch = make([]byte, 8192)

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), 0,
		func(out []int16) {
			need := len(out) * 2
			if cap(d.scratch) < need {
				d.scratch = make([]byte, need)
			}
			buf := d.scratch[:need]
			fill(buf)
			for i := range out {
				out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
			}
		})
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: opening stream: %v", ErrDevice, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("%w: starting stream: %v", ErrDevice, err)
	}

	d.stream = stream
	return nil
}

// Close stops the stream and terminates PortAudio.
func (d *PortAudioDevice) Close() error {
	if d.stream == nil {
		return nil
	}
	if err := d.stream.Stop(); err != nil {
		return err
	}
	if err := d.stream.Close(); err != nil {
		return err
	}
	d.stream = nil
	return portaudio.Terminate()
}
