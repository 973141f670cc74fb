// ABOUTME: Amplitude modulated stimulus
// ABOUTME: Carrier at fc modulated at fm, conventional or DSB-SC
package audio

import (
	"fmt"
	"math"
)

// AMMethod names an amplitude modulation scheme.
type AMMethod string

const (
	// Conventional is classical AM: (1 - cos(2*pi*fm*t)) * cos(2*pi*fc*t).
	Conventional AMMethod = "conventional"

	// DSBSC is double side band suppressed carrier:
	// sin(2*pi*fm*t) * cos(2*pi*fc*t).
	DSBSC AMMethod = "dsbsc"
)

// Defaults for SoundAM: a 1000 Hz carrier modulated at 40 Hz produces an
// auditory steady-state response stimulus.
const (
	DefaultFrequencyCarrier    = 1000.0
	DefaultFrequencyModulation = 40.0
)

// SoundAMConfig configures a SoundAM. Zero frequencies and an empty method
// fall back to the ASSR defaults; Volume is required.
type SoundAMConfig struct {
	Volume              []float64
	SampleRate          int
	Duration            float64 // seconds
	FrequencyCarrier    float64 // Hz
	FrequencyModulation float64 // Hz
	Method              AMMethod
	Player              Player
}

// SoundAM is an amplitude modulated stimulus, normalized to unit peak before
// volume scaling.
type SoundAM struct {
	sound
	frequencyCarrier    float64
	frequencyModulation float64
	method              AMMethod
}

// NewSoundAM creates an amplitude modulated stimulus.
func NewSoundAM(cfg SoundAMConfig) (*SoundAM, error) {
	volume, err := checkVolume(cfg.Volume)
	if err != nil {
		return nil, err
	}
	sampleRate, duration, err := fillDefaults(cfg.SampleRate, cfg.Duration)
	if err != nil {
		return nil, err
	}
	fc := cfg.FrequencyCarrier
	if fc == 0 {
		fc = DefaultFrequencyCarrier
	}
	fm := cfg.FrequencyModulation
	if fm == 0 {
		fm = DefaultFrequencyModulation
	}
	method := cfg.Method
	if method == "" {
		method = Conventional
	}
	if err := checkFrequency(fc, "frequency_carrier"); err != nil {
		return nil, err
	}
	if err := checkFrequency(fm, "frequency_modulation"); err != nil {
		return nil, err
	}
	if err := checkAMMethod(method); err != nil {
		return nil, err
	}

	a := &SoundAM{
		frequencyCarrier:    fc,
		frequencyModulation: fm,
		method:              method,
	}
	a.sound = sound{
		name:       fmt.Sprintf("AM %s", method),
		volume:     volume,
		sampleRate: sampleRate,
		duration:   duration,
		player:     cfg.Player,
	}
	a.generate = a.wave
	a.rebuild()
	return a, nil
}

// wave returns the unit-peak modulated carrier replicated over the channels.
func (a *SoundAM) wave() [][]float64 {
	raw := make([]float64, len(a.times))
	for i, t := range a.times {
		carrier := math.Cos(2 * math.Pi * a.frequencyCarrier * t)
		switch a.method {
		case Conventional:
			raw[i] = (1 - math.Cos(2*math.Pi*a.frequencyModulation*t)) * carrier
		case DSBSC:
			raw[i] = math.Sin(2*math.Pi*a.frequencyModulation*t) * carrier
		}
	}
	var peak float64
	for _, v := range raw {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > 0 {
		for i := range raw {
			raw[i] /= peak
		}
	}

	rows := make([][]float64, a.channels())
	for c := range rows {
		rows[c] = raw
	}
	return rows
}

// FrequencyCarrier returns the carrier frequency in Hz.
func (a *SoundAM) FrequencyCarrier() float64 {
	return a.frequencyCarrier
}

// SetFrequencyCarrier changes the carrier frequency and regenerates the
// signal.
func (a *SoundAM) SetFrequencyCarrier(frequency float64) error {
	if err := checkFrequency(frequency, "frequency_carrier"); err != nil {
		return err
	}
	a.frequencyCarrier = frequency
	a.rebuild()
	return nil
}

// FrequencyModulation returns the modulation frequency in Hz.
func (a *SoundAM) FrequencyModulation() float64 {
	return a.frequencyModulation
}

// SetFrequencyModulation changes the modulation frequency and regenerates the
// signal.
func (a *SoundAM) SetFrequencyModulation(frequency float64) error {
	if err := checkFrequency(frequency, "frequency_modulation"); err != nil {
		return err
	}
	a.frequencyModulation = frequency
	a.rebuild()
	return nil
}

// Method returns the modulation method.
func (a *SoundAM) Method() AMMethod {
	return a.method
}

// SetMethod changes the modulation method and regenerates the signal.
func (a *SoundAM) SetMethod(method AMMethod) error {
	if err := checkAMMethod(method); err != nil {
		return err
	}
	a.method = method
	a.name = fmt.Sprintf("AM %s", method)
	a.rebuild()
	return nil
}

// Copy returns an independent SoundAM.
func (a *SoundAM) Copy(deep bool) Playable {
	dup := &SoundAM{
		frequencyCarrier:    a.frequencyCarrier,
		frequencyModulation: a.frequencyModulation,
		method:              a.method,
	}
	a.cloneInto(&dup.sound, deep)
	dup.generate = dup.wave
	return dup
}

// checkAMMethod validates a known modulation method.
func checkAMMethod(method AMMethod) error {
	if method != Conventional && method != DSBSC {
		return fmt.Errorf("%w: unknown AM method %q", ErrValidation, method)
	}
	return nil
}
