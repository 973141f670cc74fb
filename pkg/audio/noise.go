// ABOUTME: Colored noise stimulus
// ABOUTME: Shapes a white noise spectrum by the requested power spectral density
package audio

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Color names a noise power spectral density shape.
type Color string

const (
	White  Color = "white"  // flat
	Pink   Color = "pink"   // -3 dB/octave
	Blue   Color = "blue"   // +3 dB/octave
	Violet Color = "violet" // +6 dB/octave
	Brown  Color = "brown"  // -6 dB/octave
)

// noisePSDs maps a color to its amplitude shape over normalized frequency
// (cycles per sample). The DC bin of the 1/f shapes is zeroed.
var noisePSDs = map[Color]func(f float64) float64{
	White:  func(f float64) float64 { return 1 },
	Blue:   math.Sqrt,
	Violet: func(f float64) float64 { return f },
	Pink: func(f float64) float64 {
		if f == 0 {
			return 0
		}
		return 1 / math.Sqrt(f)
	},
	Brown: func(f float64) float64 {
		if f == 0 {
			return 0
		}
		return 1 / f
	},
}

// NoiseConfig configures a Noise. Zero values for SampleRate, Duration and
// Color fall back to the defaults (white noise); Volume is required. With a
// zero Seed the generator is seeded randomly; a fixed Seed makes the stimulus
// reproducible.
type NoiseConfig struct {
	Volume     []float64
	SampleRate int
	Duration   float64 // seconds
	Color      Color
	Seed       uint64
	Player     Player
}

// Noise is a colored noise stimulus. The waveform is drawn from a seeded
// white noise generator and shaped in the frequency domain by the color's
// power spectral density, then normalized to unit peak. Every regeneration
// draws a fresh realization from the generator.
type Noise struct {
	sound
	color Color
	rng   *rand.Rand
	fft   *fourier.FFT
}

// NewNoise creates a colored noise stimulus.
func NewNoise(cfg NoiseConfig) (*Noise, error) {
	volume, err := checkVolume(cfg.Volume)
	if err != nil {
		return nil, err
	}
	sampleRate, duration, err := fillDefaults(cfg.SampleRate, cfg.Duration)
	if err != nil {
		return nil, err
	}
	color := cfg.Color
	if color == "" {
		color = White
	}
	if err := checkColor(color); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	n := &Noise{
		color: color,
		rng:   rand.New(rand.NewPCG(seed, seed)),
	}
	n.sound = sound{
		name:       fmt.Sprintf("%s noise", color),
		volume:     volume,
		sampleRate: sampleRate,
		duration:   duration,
		player:     cfg.Player,
	}
	n.generate = n.wave
	n.rebuild()
	return n, nil
}

// wave draws white noise and shapes its spectrum by the color PSD.
func (n *Noise) wave() [][]float64 {
	size := len(n.times)
	white := make([]float64, size)
	for i := range white {
		white[i] = n.rng.NormFloat64()
	}

	if n.fft == nil || n.fft.Len() != size {
		n.fft = fourier.NewFFT(size)
	}
	coeffs := n.fft.Coefficients(nil, white)

	// Shape the spectrum, preserving the white noise energy.
	psd := noisePSDs[n.color]
	shape := make([]float64, len(coeffs))
	var sumSq float64
	for k := range shape {
		shape[k] = psd(float64(k) / float64(size))
		sumSq += shape[k] * shape[k]
	}
	norm := math.Sqrt(sumSq / float64(len(shape)))
	for k := range coeffs {
		coeffs[k] *= complex(shape[k]/norm, 0)
	}

	raw := n.fft.Sequence(nil, coeffs)
	// Sequence(Coefficients(x)) scales by the sequence length.
	floats.Scale(1/float64(size), raw)
	if peak := floats.Norm(raw, math.Inf(1)); peak > 0 {
		floats.Scale(1/peak, raw)
	}

	rows := make([][]float64, n.channels())
	for c := range rows {
		rows[c] = raw
	}
	return rows
}

// Color returns the noise color.
func (n *Noise) Color() Color {
	return n.color
}

// SetColor changes the noise color and draws a fresh realization.
func (n *Noise) SetColor(color Color) error {
	if err := checkColor(color); err != nil {
		return err
	}
	n.color = color
	n.name = fmt.Sprintf("%s noise", color)
	n.rebuild()
	return nil
}

// Copy returns an independent Noise. The copy continues the source's random
// stream state only in so far as it draws from a generator seeded anew.
func (n *Noise) Copy(deep bool) Playable {
	dup := &Noise{
		color: n.color,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	n.cloneInto(&dup.sound, deep)
	dup.generate = dup.wave
	return dup
}

// checkColor validates a known noise color.
func checkColor(color Color) error {
	if _, ok := noisePSDs[color]; !ok {
		return fmt.Errorf("%w: unknown noise color %q", ErrValidation, color)
	}
	return nil
}
