// ABOUTME: Pure tone stimulus
// ABOUTME: Sinusoid at a configurable frequency, A440 by default
package audio

import (
	"fmt"
	"math"
)

// Defaults applied to zero-valued generation parameters.
const (
	DefaultSampleRate = 44100
	DefaultDuration   = 1.0
	DefaultFrequency  = 440.0
)

// ToneConfig configures a Tone. Zero values for SampleRate, Duration and
// Frequency fall back to the package defaults; Volume is required.
type ToneConfig struct {
	Volume     []float64
	SampleRate int
	Duration   float64 // seconds
	Frequency  float64 // Hz
	Player     Player
}

// Tone is a pure sinusoid stimulus: sin(2*pi*frequency*t).
type Tone struct {
	sound
	frequency float64
}

// NewTone creates a pure tone stimulus.
func NewTone(cfg ToneConfig) (*Tone, error) {
	volume, err := checkVolume(cfg.Volume)
	if err != nil {
		return nil, err
	}
	sampleRate, duration, err := fillDefaults(cfg.SampleRate, cfg.Duration)
	if err != nil {
		return nil, err
	}
	frequency := cfg.Frequency
	if frequency == 0 {
		frequency = DefaultFrequency
	}
	if err := checkFrequency(frequency, "frequency"); err != nil {
		return nil, err
	}

	t := &Tone{frequency: frequency}
	t.sound = sound{
		name:       "tone",
		volume:     volume,
		sampleRate: sampleRate,
		duration:   duration,
		player:     cfg.Player,
	}
	t.generate = t.wave
	t.rebuild()
	return t, nil
}

// wave returns the unit-peak sinusoid replicated over the channels.
func (t *Tone) wave() [][]float64 {
	raw := make([]float64, len(t.times))
	for i, ts := range t.times {
		raw[i] = math.Sin(2 * math.Pi * t.frequency * ts)
	}
	rows := make([][]float64, t.channels())
	for c := range rows {
		rows[c] = raw
	}
	return rows
}

// Frequency returns the tone frequency in Hz.
func (t *Tone) Frequency() float64 {
	return t.frequency
}

// SetFrequency changes the tone frequency and regenerates the signal.
func (t *Tone) SetFrequency(frequency float64) error {
	if err := checkFrequency(frequency, "frequency"); err != nil {
		return err
	}
	t.frequency = frequency
	t.rebuild()
	return nil
}

// Copy returns an independent Tone.
func (t *Tone) Copy(deep bool) Playable {
	dup := &Tone{frequency: t.frequency}
	t.cloneInto(&dup.sound, deep)
	dup.generate = dup.wave
	return dup
}

// fillDefaults resolves and validates zero-valued sample rate and duration.
func fillDefaults(sampleRate int, duration float64) (int, float64, error) {
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	if duration == 0 {
		duration = DefaultDuration
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return 0, 0, err
	}
	if err := checkDuration(duration); err != nil {
		return 0, 0, err
	}
	if err := checkSampleCount(duration, sampleRate); err != nil {
		return 0, 0, err
	}
	return sampleRate, duration, nil
}

// checkFrequency validates a strictly positive, finite frequency.
func checkFrequency(frequency float64, name string) error {
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) || frequency <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrValidation, name, frequency)
	}
	return nil
}
