// ABOUTME: Ogg/Opus file loader
// ABOUTME: Decodes Opus streams to 48 kHz stereo via hraban/opus
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"

	opus "gopkg.in/hraban/opus.v2"
)

// opusSampleRate is fixed by the Opus decoder output.
const opusSampleRate = 48000

// Opus loads an Ogg/Opus file, decoded to interleaved stereo at 48 kHz.
func Opus(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	s, err := opus.NewStream(f)
	if err != nil {
		return nil, 0, fmt.Errorf("opening opus stream %s: %w", path, err)
	}
	defer func() { _ = s.Close() }()

	var samples []int
	pcm := make([]int16, 16384)
	for {
		n, err := s.ReadStereo(pcm)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
		}
		for _, v := range pcm[:n*2] {
			samples = append(samples, int(v))
		}
	}
	return deinterleave(samples, 2, 16), opusSampleRate, nil
}
