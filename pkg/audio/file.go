// ABOUTME: File-backed auditory stimulus
// ABOUTME: Loads WAV/MP3/FLAC/Opus files, supports non-destructive cropping
package audio

import (
	"fmt"
	"log"
	"math"
	"path/filepath"

	"github.com/mscheltienne/stimuli/pkg/audio/decode"
)

// Sound is an auditory stimulus loaded from a file. The decoded waveform is
// peak-normalized per channel; the inter-channel balance is preserved in the
// derived volume tuple. Crop selects a sub-interval non-destructively and
// Reset restores the loaded state.
//
// The sample rate and duration of a Sound derive from the file and cannot be
// set.
type Sound struct {
	sound
	path             string
	originalSignal   [][]float64 // unit-peak per channel
	originalTimes    []float64
	originalDuration float64
	loadVolume       []float64
	tmin, tmax       int // crop sample indices, inclusive; -1 when uncropped
}

// SoundConfig configures a Sound. Path is required; Volume, when nil,
// derives from the file's per-channel peaks.
type SoundConfig struct {
	Path   string
	Volume []float64
	Player Player
}

// NewSound loads an auditory stimulus from a file. Supported formats are
// those of the decode package; files with more than 2 channels are rejected.
func NewSound(cfg SoundConfig) (*Sound, error) {
	data, sampleRate, err := decode.File(cfg.Path)
	if err != nil {
		return nil, err
	}
	channels := len(data)
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %s has %d channels, only mono and stereo are supported",
			ErrValidation, cfg.Path, channels)
	}
	frames := len(data[0])
	if frames == 0 {
		return nil, fmt.Errorf("%w: %s contains no samples", ErrValidation, cfg.Path)
	}

	normalized, volume := normalizeSignal(data)
	if cfg.Volume != nil {
		checked, err := checkVolume(cfg.Volume)
		if err != nil {
			return nil, err
		}
		if len(checked) == 1 && channels == 2 {
			checked = []float64{checked[0], checked[0]}
		}
		if len(checked) != channels {
			return nil, fmt.Errorf("%w: volume has %d channels, %s has %d",
				ErrValidation, len(checked), cfg.Path, channels)
		}
		volume = checked
	}

	s := &Sound{
		path:             cfg.Path,
		originalSignal:   normalized,
		originalDuration: float64(frames) / float64(sampleRate),
		loadVolume:       append([]float64(nil), volume...),
		tmin:             -1,
		tmax:             -1,
	}
	s.originalTimes = make([]float64, frames)
	for i := range s.originalTimes {
		s.originalTimes[i] = float64(i) / float64(sampleRate)
	}
	s.sound = sound{
		name:          filepath.Base(cfg.Path),
		volume:        volume,
		sampleRate:    sampleRate,
		duration:      s.originalDuration,
		player:        cfg.Player,
		fixedChannels: channels,
	}
	s.generate = s.slice
	s.retime = s.sliceTimes
	s.rebuild()
	return s, nil
}

// Path returns the path the sound was loaded from.
func (s *Sound) Path() string {
	return s.path
}

// slice returns the active (possibly cropped) view of the original signal.
func (s *Sound) slice() [][]float64 {
	lo, hi := s.bounds()
	rows := make([][]float64, len(s.originalSignal))
	for c := range rows {
		rows[c] = s.originalSignal[c][lo : hi+1]
	}
	return rows
}

// sliceTimes sets times to the active view of the original timestamps.
func (s *Sound) sliceTimes() {
	lo, hi := s.bounds()
	s.times = s.originalTimes[lo : hi+1]
}

// bounds returns the active inclusive sample interval.
func (s *Sound) bounds() (lo, hi int) {
	if s.tmin < 0 {
		return 0, len(s.originalTimes) - 1
	}
	return s.tmin, s.tmax
}

// Crop selects the closed time interval [tmin, tmax] in seconds from the
// original signal; it becomes the new active signal, duration and times.
// Bounds are clamped to the file duration. An envelope set with SetWindow is
// cleared since its length no longer matches.
func (s *Sound) Crop(tmin, tmax float64) error {
	if math.IsNaN(tmin) || math.IsNaN(tmax) {
		return fmt.Errorf("%w: crop bounds must be numbers", ErrValidation)
	}
	end := s.originalTimes[len(s.originalTimes)-1]
	tmin = math.Max(tmin, 0)
	tmax = math.Min(tmax, end)
	if tmin > tmax {
		return fmt.Errorf("%w: tmin %v is after tmax %v", ErrState, tmin, tmax)
	}

	lo := len(s.originalTimes)
	hi := -1
	for i, t := range s.originalTimes {
		if tmin <= t && t <= tmax {
			if i < lo {
				lo = i
			}
			hi = i
		}
	}
	if hi < lo {
		return fmt.Errorf("%w: no samples in [%v, %v]", ErrState, tmin, tmax)
	}

	s.tmin, s.tmax = lo, hi
	s.duration = float64(hi-lo+1) / float64(s.sampleRate)
	s.window = nil
	s.rebuild()
	return nil
}

// Reset restores the uncropped signal, the original duration and the volume
// derived at load time.
func (s *Sound) Reset() {
	s.tmin, s.tmax = -1, -1
	s.duration = s.originalDuration
	s.volume = append([]float64(nil), s.loadVolume...)
	s.window = nil
	s.rebuild()
}

// SetSampleRate is rejected: the sample rate of a loaded sound derives from
// the file.
func (s *Sound) SetSampleRate(int) error {
	return fmt.Errorf("%w: the sample rate of a loaded sound cannot be changed", ErrState)
}

// SetDuration is rejected: use Crop to select a sub-interval.
func (s *Sound) SetDuration(float64) error {
	return fmt.Errorf("%w: the duration of a loaded sound cannot be changed, use Crop", ErrState)
}

// Copy returns an independent Sound. Both copies share the immutable decoded
// file content.
func (s *Sound) Copy(deep bool) Playable {
	dup := &Sound{
		path:             s.path,
		originalSignal:   s.originalSignal,
		originalTimes:    s.originalTimes,
		originalDuration: s.originalDuration,
		loadVolume:       append([]float64(nil), s.loadVolume...),
		tmin:             s.tmin,
		tmax:             s.tmax,
	}
	s.cloneInto(&dup.sound, deep)
	dup.generate = dup.slice
	dup.retime = dup.sliceTimes
	return dup
}

// normalizeSignal peak-normalizes the decoded channels and derives the
// per-channel volume preserving the inter-channel balance. Each returned
// channel is unit-peak; the balance lives in the volume tuple.
func normalizeSignal(data [][]float64) ([][]float64, []float64) {
	var peak float64
	for _, row := range data {
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	volume := make([]float64, len(data))
	normalized := make([][]float64, len(data))
	if peak == 0 {
		log.Printf("audio: loaded sound has only silent channels")
		for c := range data {
			normalized[c] = append([]float64(nil), data[c]...)
		}
		return normalized, volume
	}
	for c, row := range data {
		var channelPeak float64
		for _, v := range row {
			channelPeak = math.Max(channelPeak, math.Abs(v))
		}
		volume[c] = channelPeak / peak * 100
		out := make([]float64, len(row))
		if channelPeak > 0 {
			for i, v := range row {
				out[i] = v / channelPeak
			}
		}
		normalized[c] = out
	}
	return normalized, volume
}
