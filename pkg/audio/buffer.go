// ABOUTME: Waveform buffer type and sample conversion helpers
// ABOUTME: Bridges the float signal model to the int16 playback wire format
package audio

import (
	"encoding/binary"
	"time"
)

// Buffer is a finite multi-channel waveform handed to a Player. Data is laid
// out channels x samples with values in [-1, 1]; all channels have the same
// length. A Buffer is read-only for its receiver.
type Buffer struct {
	Data       [][]float64
	SampleRate int
}

// Channels returns the channel count.
func (b Buffer) Channels() int {
	return len(b.Data)
}

// Frames returns the per-channel sample count.
func (b Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback duration of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Interleave16 converts the buffer to interleaved signed 16-bit little-endian
// PCM, the playback wire format. Values outside [-1, 1] are clamped.
func (b Buffer) Interleave16() []byte {
	frames, channels := b.Frames(), b.Channels()
	out := make([]byte, frames*channels*2)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			s := SampleToInt16(b.Data[c][i])
			binary.LittleEndian.PutUint16(out[(i*channels+c)*2:], uint16(s))
		}
	}
	return out
}

// SampleToInt16 converts a float sample in [-1, 1] to int16, clamping out of
// range values.
func SampleToInt16(v float64) int16 {
	switch {
	case v >= 1:
		return 32767
	case v <= -1:
		return -32768
	}
	return int16(v * 32767)
}

// SampleFromInt16 converts an int16 sample to a float in [-1, 1].
func SampleFromInt16(v int16) float64 {
	return float64(v) / 32768
}

// Player is the playback capability the signal model delegates to. A when of
// zero or less means play as soon as possible; otherwise playback starts when
// the player's clock reaches now + when.
type Player interface {
	// Play schedules buf for playback. With blocking, it returns once the
	// buffer finished playing or was stopped.
	Play(buf Buffer, when time.Duration, blocking bool) error

	// Stop halts the active playback. Safe to call in any state.
	Stop() error
}
