// ABOUTME: Tests for the colored noise stimulus
// ABOUTME: Peak normalization, seeding and color validation
package audio

import (
	"errors"
	"math"
	"testing"
)

func TestNoiseColors(t *testing.T) {
	for _, color := range []Color{White, Pink, Blue, Violet, Brown} {
		noise, err := NewNoise(NoiseConfig{
			Volume: []float64{100}, SampleRate: 8000, Duration: 0.5, Color: color,
		})
		if err != nil {
			t.Fatalf("NewNoise(%s): %v", color, err)
		}
		row := noise.Signal()[0]
		if len(row) != 4000 {
			t.Errorf("%s: %d samples, expected 4000", color, len(row))
		}
		var peak float64
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak > 1+1e-9 {
			t.Errorf("%s: peak %v exceeds 1", color, peak)
		}
		if peak < 0.999 {
			t.Errorf("%s: peak %v, expected unit peak at volume 100", color, peak)
		}
		if got := noise.Color(); got != color {
			t.Errorf("Color() = %s, expected %s", got, color)
		}
	}
}

func TestNoiseSeedReproducible(t *testing.T) {
	cfg := NoiseConfig{Volume: []float64{100}, SampleRate: 8000, Duration: 0.1, Color: Pink, Seed: 17}
	a, err := NewNoise(cfg)
	if err != nil {
		t.Fatalf("NewNoise: %v", err)
	}
	b, err := NewNoise(cfg)
	if err != nil {
		t.Fatalf("NewNoise: %v", err)
	}
	for i, v := range a.Signal()[0] {
		if v != b.Signal()[0][i] {
			t.Fatal("same seed produced different signals")
		}
	}
}

func TestNoiseRedrawsOnRegeneration(t *testing.T) {
	noise, err := NewNoise(NoiseConfig{Volume: []float64{100}, SampleRate: 8000, Duration: 0.1})
	if err != nil {
		t.Fatalf("NewNoise: %v", err)
	}
	before := append([]float64(nil), noise.Signal()[0]...)
	if err := noise.SetVolume([]float64{100}); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	same := true
	for i, v := range noise.Signal()[0] {
		if v != before[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("regeneration did not draw a fresh realization")
	}
}

func TestNoiseSetColor(t *testing.T) {
	noise, err := NewNoise(NoiseConfig{Volume: []float64{100}, SampleRate: 8000, Duration: 0.1})
	if err != nil {
		t.Fatalf("NewNoise: %v", err)
	}
	if got := noise.Name(); got != "white noise" {
		t.Errorf("name %q, expected %q", got, "white noise")
	}
	if err := noise.SetColor(Brown); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if got := noise.Name(); got != "brown noise" {
		t.Errorf("name %q after SetColor, expected %q", got, "brown noise")
	}
	if err := noise.SetColor("magenta"); !errors.Is(err, ErrValidation) {
		t.Errorf("SetColor(magenta): expected validation error, got %v", err)
	}
}

func TestNoiseUnknownColor(t *testing.T) {
	_, err := NewNoise(NoiseConfig{Volume: []float64{100}, Color: "magenta"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
