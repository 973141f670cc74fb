// ABOUTME: Oto-based output device
// ABOUTME: Pull-model playback where the player reads PCM through the callback
package backend

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// OtoDevice plays through oto. Oto pulls PCM from an io.Reader on its own
// goroutine, so the fill callback is invoked as the Read implementation.
//
// Oto allows a single context per process and cannot be reinitialized with a
// different format; reopening with a different sample rate or channel count
// reports an error.
type OtoDevice struct {
	ctx        *oto.Context
	player     *oto.Player
	sampleRate int
	channels   int
}

// NewOtoDevice creates an unopened oto device.
func NewOtoDevice() *OtoDevice {
	return &OtoDevice{}
}

// Open creates the oto context and starts a player pulling from fill.
func (d *OtoDevice) Open(sampleRate, channels int, fill FillFunc) error {
	if d.player != nil {
		return fmt.Errorf("%w: device already open", ErrDevice)
	}
	if d.ctx != nil && (d.sampleRate != sampleRate || d.channels != channels) {
		return fmt.Errorf("%w: oto cannot be reconfigured (%dHz/%dch -> %dHz/%dch)",
			ErrDevice, d.sampleRate, d.channels, sampleRate, channels)
	}

	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("%w: creating oto context: %v", ErrDevice, err)
		}
		<-ready
		d.ctx = ctx
		d.sampleRate = sampleRate
		d.channels = channels
	}

	d.player = d.ctx.NewPlayer(fillReader{fill})
	d.player.Play()
	return nil
}

// Close stops the player. The oto context itself cannot be destroyed; it is
// kept for a later Open with the same format.
func (d *OtoDevice) Close() error {
	if d.player != nil {
		if err := d.player.Close(); err != nil {
			d.player = nil
			return fmt.Errorf("closing oto player: %w", err)
		}
		d.player = nil
	}
	return nil
}

// fillReader adapts a FillFunc to the io.Reader oto pulls from.
type fillReader struct {
	fill FillFunc
}

func (r fillReader) Read(p []byte) (int, error) {
	r.fill(p)
	return len(p), nil
}
