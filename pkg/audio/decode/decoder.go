// ABOUTME: Format dispatch for audio file loading
// ABOUTME: Routes a path to the matching codec by extension
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported reports a file extension with no registered loader.
var ErrUnsupported = errors.New("unsupported audio format")

// File loads an audio file into channels x frames float samples in [-1, 1]
// and returns the file's native sample rate. The codec is selected from the
// file extension.
func File(path string) ([][]float64, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WAV(path)
	case ".mp3":
		return MP3(path)
	case ".flac":
		return FLAC(path)
	case ".opus", ".ogg":
		return Opus(path)
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
}

// deinterleave splits interleaved int samples into per-channel float rows
// scaled by the bit depth.
func deinterleave(samples []int, channels, bitDepth int) [][]float64 {
	scale := float64(int64(1) << (bitDepth - 1))
	frames := len(samples) / channels
	data := make([][]float64, channels)
	for c := range data {
		row := make([]float64, frames)
		for i := range row {
			row[i] = float64(samples[i*channels+c]) / scale
		}
		data[c] = row
	}
	return data
}
