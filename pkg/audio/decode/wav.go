// ABOUTME: WAV file loader
// ABOUTME: Decodes PCM WAV files via go-audio/wav
package decode

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// WAV loads a PCM WAV file.
func WAV(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	bitDepth := int(d.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, 0, fmt.Errorf("%s reports %d channels", path, channels)
	}
	return deinterleave(buf.Data, channels, bitDepth), buf.Format.SampleRate, nil
}
