// ABOUTME: WAV file writer
// ABOUTME: Interleaves float channels into 16-bit PCM via go-audio/wav
package encode

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV writes data (channels x frames, values in [-1, 1]) to path as a 16-bit
// PCM WAV file at sampleRate. Out of range values are clamped.
func WAV(path string, data [][]float64, sampleRate int) error {
	channels := len(data)
	if channels == 0 {
		return fmt.Errorf("no channels to write to %s", path)
	}
	frames := len(data[0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	ints := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			ints[i*channels+c] = int(sampleToInt16(data[c][i]))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return f.Close()
}

// sampleToInt16 clamps and converts a float sample to int16.
func sampleToInt16(v float64) int16 {
	switch {
	case v >= 1:
		return 32767
	case v <= -1:
		return -32768
	}
	return int16(v * 32767)
}
