// ABOUTME: Tests for the pure tone stimulus
// ABOUTME: Sample counts, spectral content and parameter validation
package audio

import (
	"errors"
	"math"
	"testing"
)

func TestPlayableVariants(t *testing.T) {
	var _ Playable = (*Tone)(nil)
	var _ Playable = (*Noise)(nil)
	var _ Playable = (*SoundAM)(nil)
	var _ Playable = (*Sound)(nil)
}

func TestToneDefaults(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	if got := tone.SampleRate(); got != DefaultSampleRate {
		t.Errorf("sample rate %d, expected %d", got, DefaultSampleRate)
	}
	if got := tone.Duration(); got != DefaultDuration {
		t.Errorf("duration %v, expected %v", got, DefaultDuration)
	}
	if got := tone.Frequency(); got != DefaultFrequency {
		t.Errorf("frequency %v, expected %v", got, DefaultFrequency)
	}
	if got := tone.Name(); got != "tone" {
		t.Errorf("name %q, expected %q", got, "tone")
	}
	if got := len(tone.Signal()); got != 1 {
		t.Fatalf("%d channels, expected 1", got)
	}
	if got := len(tone.Signal()[0]); got != 44100 {
		t.Errorf("%d samples, expected 44100", got)
	}
	if got := len(tone.Times()); got != 44100 {
		t.Errorf("%d timestamps, expected 44100", got)
	}
}

func TestToneTimesSpanDuration(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}, SampleRate: 1000, Duration: 0.5})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	times := tone.Times()
	if len(times) != 500 {
		t.Fatalf("%d samples, expected 500", len(times))
	}
	if times[0] != 0 {
		t.Errorf("first timestamp %v, expected 0", times[0])
	}
	if got := times[len(times)-1]; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("last timestamp %v, expected 0.5", got)
	}
}

// goertzel returns the power of x at frequency f for sample rate rate.
func goertzel(x []float64, f float64, rate int) float64 {
	w := 2 * math.Pi * f / float64(rate)
	coeff := 2 * math.Cos(w)
	var s0, s1, s2 float64
	for _, v := range x {
		s0 = v + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	return s1*s1 + s2*s2 - coeff*s1*s2
}

func TestToneSpectralPeak(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	row := tone.Signal()[0]
	at440 := goertzel(row, 440, tone.SampleRate())
	for _, off := range []float64{220, 880, 1000} {
		if p := goertzel(row, off, tone.SampleRate()); p*100 > at440 {
			t.Errorf("power at %v Hz is %v, not dominated by 440 Hz (%v)", off, p, at440)
		}
	}
}

func TestToneSetFrequency(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}, SampleRate: 8000, Duration: 0.25})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	before := len(tone.Signal()[0])
	if err := tone.SetFrequency(1000); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if got := len(tone.Signal()[0]); got != before {
		t.Errorf("sample count changed from %d to %d", before, got)
	}
	row := tone.Signal()[0]
	if p440, p1000 := goertzel(row, 440, 8000), goertzel(row, 1000, 8000); p440 > p1000 {
		t.Error("spectral peak did not follow the frequency change")
	}
	for _, bad := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		if err := tone.SetFrequency(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("SetFrequency(%v): expected validation error, got %v", bad, err)
		}
	}
}

func TestToneStereoVolume(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100, 50}, SampleRate: 1000, Duration: 0.1})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	sig := tone.Signal()
	if len(sig) != 2 {
		t.Fatalf("%d channels, expected 2", len(sig))
	}
	peak := func(row []float64) float64 {
		var p float64
		for _, v := range row {
			p = math.Max(p, math.Abs(v))
		}
		return p
	}
	left, right := peak(sig[0]), peak(sig[1])
	if math.Abs(left/right-2) > 1e-9 {
		t.Errorf("peak ratio %v, expected 2 for volumes 100 and 50", left/right)
	}
}

func TestToneValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  ToneConfig
	}{
		{"no volume", ToneConfig{}},
		{"three channels", ToneConfig{Volume: []float64{50, 50, 50}}},
		{"volume above 100", ToneConfig{Volume: []float64{101}}},
		{"negative volume", ToneConfig{Volume: []float64{-1}}},
		{"NaN volume", ToneConfig{Volume: []float64{math.NaN()}}},
		{"negative duration", ToneConfig{Volume: []float64{100}, Duration: -1}},
		{"NaN duration", ToneConfig{Volume: []float64{100}, Duration: math.NaN()}},
		{"negative sample rate", ToneConfig{Volume: []float64{100}, SampleRate: -44100}},
		{"negative frequency", ToneConfig{Volume: []float64{100}, Frequency: -440}},
		{"sub-sample duration", ToneConfig{Volume: []float64{100}, SampleRate: 10, Duration: 0.01}},
	}
	for _, tc := range cases {
		if _, err := NewTone(tc.cfg); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestToneCopy(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}, SampleRate: 1000, Duration: 0.1})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	deep := tone.Copy(true).(*Tone)
	shallow := tone.Copy(false).(*Tone)
	if &shallow.Signal()[0][0] != &tone.Signal()[0][0] {
		t.Error("shallow copy does not share the signal buffer")
	}
	if &deep.Signal()[0][0] == &tone.Signal()[0][0] {
		t.Error("deep copy shares the signal buffer")
	}

	orig := append([]float64(nil), tone.Signal()[0]...)
	if err := deep.SetFrequency(999); err != nil {
		t.Fatalf("SetFrequency on copy: %v", err)
	}
	for i, v := range tone.Signal()[0] {
		if v != orig[i] {
			t.Fatal("mutating the copy changed the original signal")
		}
	}
	if deep.Frequency() == tone.Frequency() {
		t.Error("copy frequency did not change independently")
	}
}

func TestPlayWithoutPlayer(t *testing.T) {
	tone, err := NewTone(ToneConfig{Volume: []float64{100}, SampleRate: 1000, Duration: 0.1})
	if err != nil {
		t.Fatalf("NewTone: %v", err)
	}
	if err := tone.Play(0, false); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("Play: expected ErrNoPlayer, got %v", err)
	}
	if err := tone.Stop(); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("Stop: expected ErrNoPlayer, got %v", err)
	}
}
