// ABOUTME: Shared state and behavior of all auditory stimuli
// ABOUTME: Validation, waveform assembly, playback delegation and WAV export
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/mscheltienne/stimuli/pkg/audio/encode"
)

// Playable is the capability set shared by all auditory stimuli.
//
// The Signal, Times and Window accessors return the live internal slices;
// callers must treat them as read-only. Mutating a generation parameter never
// modifies a previously returned buffer: regeneration always allocates a
// fresh one, so a buffer handed to a Player stays valid for the whole
// playback.
type Playable interface {
	// Name returns a short human-readable label used in logs.
	Name() string

	// Volume returns the per-channel volume in [0, 100]. Its length is the
	// channel count, 1 or 2.
	Volume() []float64

	// SampleRate returns the sample rate in Hz.
	SampleRate() int

	// Duration returns the stimulus duration in seconds.
	Duration() float64

	// Signal returns the channels x samples waveform, scaled by window and
	// volume, with values in [-1, 1].
	Signal() [][]float64

	// Times returns the per-sample timestamps in seconds, from 0 to the
	// duration inclusive.
	Times() []float64

	// Window returns the multiplicative per-sample envelope, or nil.
	Window() []float64

	// SetVolume changes the per-channel volume and regenerates the signal.
	SetVolume(volume []float64) error

	// SetWindow sets the envelope (length must match the sample count) or
	// clears it with nil, and regenerates the signal.
	SetWindow(window []float64) error

	// Play schedules the stimulus on the attached Player. when is relative
	// to the player clock's current time; when <= 0 plays as soon as
	// possible.
	Play(when time.Duration, blocking bool) error

	// Stop halts playback on the attached Player.
	Stop() error

	// Save writes the signal as a 16-bit PCM WAV file.
	Save(path string, overwrite bool) error

	// Copy returns an independent stimulus. A deep copy shares nothing; a
	// shallow copy may share the signal buffer until the next mutation.
	Copy(deep bool) Playable
}

// sound carries the state common to all stimuli. Variants embed it and
// provide the generate function returning the unit-peak raw waveform, one row
// per channel, matching the current times array.
type sound struct {
	name       string
	volume     []float64
	sampleRate int
	duration   float64
	times      []float64
	window     []float64
	signal     [][]float64
	player     Player

	// fixedChannels pins the channel count for file-backed sounds; zero
	// derives it from the volume length.
	fixedChannels int

	generate func() [][]float64

	// retime, when set, replaces the default evenly-spaced times array.
	// File-backed sounds use it to slice their original timestamps.
	retime func()
}

func (s *sound) Name() string        { return s.name }
func (s *sound) Volume() []float64   { return s.volume }
func (s *sound) SampleRate() int     { return s.sampleRate }
func (s *sound) Duration() float64   { return s.duration }
func (s *sound) Signal() [][]float64 { return s.signal }
func (s *sound) Times() []float64    { return s.times }
func (s *sound) Window() []float64   { return s.window }

// channels returns the current channel count.
func (s *sound) channels() int {
	if s.fixedChannels > 0 {
		return s.fixedChannels
	}
	return len(s.volume)
}

// SetVolume changes the per-channel volume and regenerates the signal. A
// single value on a multi-channel stimulus broadcasts to every channel.
func (s *sound) SetVolume(volume []float64) error {
	checked, err := checkVolume(volume)
	if err != nil {
		return err
	}
	if s.fixedChannels > 0 {
		if len(checked) == 1 && s.fixedChannels == 2 {
			checked = []float64{checked[0], checked[0]}
		}
		if len(checked) != s.fixedChannels {
			return fmt.Errorf("%w: volume has %d channels, sound has %d",
				ErrValidation, len(checked), s.fixedChannels)
		}
	}
	s.volume = checked
	s.rebuild()
	return nil
}

// SetSampleRate changes the sample rate and regenerates the signal and
// timestamps. A set window is cleared since its length no longer matches.
func (s *sound) SetSampleRate(sampleRate int) error {
	if err := checkSampleRate(sampleRate); err != nil {
		return err
	}
	if err := checkSampleCount(s.duration, sampleRate); err != nil {
		return err
	}
	s.sampleRate = sampleRate
	s.window = nil
	s.rebuild()
	return nil
}

// SetDuration changes the duration and regenerates the signal and
// timestamps. A set window is cleared since its length no longer matches.
func (s *sound) SetDuration(duration float64) error {
	if err := checkDuration(duration); err != nil {
		return err
	}
	if err := checkSampleCount(duration, s.sampleRate); err != nil {
		return err
	}
	s.duration = duration
	s.window = nil
	s.rebuild()
	return nil
}

// SetWindow sets the multiplicative envelope or clears it with nil.
func (s *sound) SetWindow(window []float64) error {
	if window != nil && len(window) != len(s.times) {
		return fmt.Errorf("%w: window has %d samples, signal has %d",
			ErrValidation, len(window), len(s.times))
	}
	if window != nil {
		window = append([]float64(nil), window...)
	}
	s.window = window
	s.rebuild()
	return nil
}

// Play schedules the stimulus on the attached Player.
func (s *sound) Play(when time.Duration, blocking bool) error {
	if s.player == nil {
		return fmt.Errorf("%w: construct the stimulus with a Player to play it", ErrNoPlayer)
	}
	return s.player.Play(Buffer{Data: s.signal, SampleRate: s.sampleRate}, when, blocking)
}

// Stop halts playback on the attached Player.
func (s *sound) Stop() error {
	if s.player == nil {
		return fmt.Errorf("%w: construct the stimulus with a Player to stop it", ErrNoPlayer)
	}
	return s.player.Stop()
}

// Save writes the signal as a 16-bit PCM WAV file at the stimulus sample
// rate. The parent directory is created if needed. An existing file is only
// replaced with overwrite.
func (s *sound) Save(path string, overwrite bool) error {
	if filepath.Ext(path) != ".wav" {
		return fmt.Errorf("%w: unsupported extension %q, expected .wav",
			ErrValidation, filepath.Ext(path))
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s already exists and overwrite is false",
				ErrState, path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}
	return encode.WAV(path, s.signal, s.sampleRate)
}

// rebuild recomputes times and signal from the current parameters. The new
// signal is assembled into fresh buffers and swapped in whole, so there is
// never an observable half-updated state.
func (s *sound) rebuild() {
	if s.retime != nil {
		s.retime()
	} else {
		s.times = makeTimes(s.duration, s.sampleRate)
	}
	s.apply(s.generate())
}

// apply scales the raw unit-peak waveform by the window and the per-channel
// volume into a fresh signal buffer.
func (s *sound) apply(raw [][]float64) {
	n := len(s.times)
	signal := make([][]float64, len(raw))
	for c := range raw {
		row := make([]float64, n)
		gain := s.volume[c] / 100
		for i := range row {
			v := raw[c][i]
			if s.window != nil {
				v *= s.window[i]
			}
			row[i] = v * gain
		}
		signal[c] = row
	}
	s.signal = signal
}

// cloneInto copies the shared state into dst. With deep, the signal, times
// and window buffers are duplicated; otherwise they are shared until the next
// mutation regenerates them.
func (s *sound) cloneInto(dst *sound, deep bool) {
	*dst = *s
	dst.volume = append([]float64(nil), s.volume...)
	if deep {
		dst.times = append([]float64(nil), s.times...)
		if s.window != nil {
			dst.window = append([]float64(nil), s.window...)
		}
		dst.signal = make([][]float64, len(s.signal))
		for c := range s.signal {
			dst.signal[c] = append([]float64(nil), s.signal[c]...)
		}
	}
}

// ----------------------------------------------------------------------------

// checkVolume validates a per-channel volume: 1 or 2 values in [0, 100].
func checkVolume(volume []float64) ([]float64, error) {
	if len(volume) != 1 && len(volume) != 2 {
		return nil, fmt.Errorf("%w: volume must have 1 or 2 channels, got %d",
			ErrValidation, len(volume))
	}
	for _, v := range volume {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return nil, fmt.Errorf("%w: volume %v out of [0, 100]", ErrValidation, v)
		}
	}
	return append([]float64(nil), volume...), nil
}

// checkSampleRate validates a strictly positive sample rate.
func checkSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d",
			ErrValidation, sampleRate)
	}
	return nil
}

// checkDuration validates a strictly positive, finite duration in seconds.
func checkDuration(duration float64) error {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return fmt.Errorf("%w: duration must be positive and finite, got %v",
			ErrValidation, duration)
	}
	return nil
}

// checkSampleCount rejects duration/sample-rate pairs that round to an empty
// signal.
func checkSampleCount(duration float64, sampleRate int) error {
	if nSamples(duration, sampleRate) < 1 {
		return fmt.Errorf("%w: duration %v too short for sample rate %d",
			ErrValidation, duration, sampleRate)
	}
	return nil
}

// nSamples returns the sample count for a duration at a sample rate.
func nSamples(duration float64, sampleRate int) int {
	return int(math.Round(duration * float64(sampleRate)))
}

// makeTimes returns n evenly spaced timestamps from 0 to duration inclusive.
func makeTimes(duration float64, sampleRate int) []float64 {
	n := nSamples(duration, sampleRate)
	times := make([]float64, n)
	if n == 1 {
		return times
	}
	step := duration / float64(n-1)
	for i := range times {
		times[i] = float64(i) * step
	}
	return times
}
