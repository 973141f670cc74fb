// ABOUTME: Malgo-based output device
// ABOUTME: Callback playback through miniaudio, the default device
package backend

import (
	"fmt"
	"log"

	"github.com/gen2brain/malgo"
)

// MalgoDevice plays through miniaudio via malgo. The library invokes the
// fill callback on its own real-time thread at the hardware buffer cadence,
// which is the delivery model the engine is built around.
type MalgoDevice struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
}

// NewMalgoDevice creates an unopened malgo device.
func NewMalgoDevice() *MalgoDevice {
	return &MalgoDevice{}
}

// Open initializes the miniaudio context and starts a playback stream.
func (d *MalgoDevice) Open(sampleRate, channels int, fill FillFunc) error {
	if d.device != nil {
		return fmt.Errorf("%w: device already open", ErrDevice)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Printf("malgo: %s", message)
	})
	if err != nil {
		return fmt.Errorf("%w: initializing miniaudio: %v", ErrDevice, err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(channels)
	cfg.SampleRate = uint32(sampleRate)
	cfg.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			fill(out)
		},
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: opening playback device: %v", ErrDevice, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: starting playback device: %v", ErrDevice, err)
	}

	d.ctx = ctx
	d.device = device
	return nil
}

// Close stops the stream and tears down the miniaudio context.
func (d *MalgoDevice) Close() error {
	if d.device != nil {
		d.device.Uninit()
		d.device = nil
	}
	if d.ctx != nil {
		err := d.ctx.Uninit()
		d.ctx.Free()
		d.ctx = nil
		if err != nil {
			return fmt.Errorf("closing miniaudio context: %w", err)
		}
	}
	return nil
}

// ListPlaybackDevices enumerates the host's playback devices.
func ListPlaybackDevices() ([]string, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: initializing miniaudio: %v", ErrDevice, err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating devices: %v", ErrDevice, err)
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}
