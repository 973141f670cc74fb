// ABOUTME: FLAC file loader
// ABOUTME: Decodes FLAC files frame by frame via mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// FLAC loads a FLAC file.
func FLAC(path string) ([][]float64, int, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = stream.Close() }()

	channels := int(stream.Info.NChannels)
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, 0, stream.Info.NSamples)
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
		}
		for c, sub := range frame.Subframes {
			for _, s := range sub.Samples {
				data[c] = append(data[c], float64(s)/scale)
			}
		}
	}
	return data, int(stream.Info.SampleRate), nil
}
