// ABOUTME: Envelope helpers for onset/offset shaping
// ABOUTME: Hann window and linear attack/release ramps
package audio

import (
	"fmt"
	"math"
)

// Hann returns an n-sample Hann window, commonly used to taper a stimulus and
// avoid onset/offset clicks.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// Ramp returns an n-sample envelope with linear attack and release ramps and
// unit gain in between. attack+release must not exceed n.
func Ramp(n, attack, release int) ([]float64, error) {
	if attack < 0 || release < 0 || attack+release > n {
		return nil, fmt.Errorf("%w: ramp of %d+%d samples does not fit %d",
			ErrValidation, attack, release, n)
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	for i := 0; i < attack; i++ {
		w[i] = float64(i) / float64(attack)
	}
	for i := 0; i < release; i++ {
		w[n-1-i] = float64(i) / float64(release)
	}
	return w, nil
}
