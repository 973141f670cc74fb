// ABOUTME: Tests for the envelope helpers
// ABOUTME: Hann shape and ramp bounds
package audio

import (
	"errors"
	"math"
	"testing"
)

func TestHann(t *testing.T) {
	w := Hann(101)
	if w[0] != 0 || w[100] != 0 {
		t.Errorf("endpoints %v and %v, expected 0", w[0], w[100])
	}
	if math.Abs(w[50]-1) > 1e-12 {
		t.Errorf("midpoint %v, expected 1", w[50])
	}
	for i := 0; i <= 50; i++ {
		if math.Abs(w[i]-w[100-i]) > 1e-12 {
			t.Fatalf("window not symmetric at %d: %v vs %v", i, w[i], w[100-i])
		}
	}
	if w := Hann(1); w[0] != 1 {
		t.Errorf("single-sample window %v, expected 1", w[0])
	}
}

func TestRamp(t *testing.T) {
	w, err := Ramp(10, 4, 2)
	if err != nil {
		t.Fatalf("Ramp: %v", err)
	}
	if w[0] != 0 {
		t.Errorf("attack start %v, expected 0", w[0])
	}
	if w[4] != 1 || w[5] != 1 || w[6] != 1 || w[7] != 1 {
		t.Error("plateau is not unit gain")
	}
	if w[9] != 0 {
		t.Errorf("release end %v, expected 0", w[9])
	}
	if w[1] >= w[2] || w[2] >= w[3] {
		t.Error("attack is not increasing")
	}

	if _, err := Ramp(10, 6, 5); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for an oversized ramp, got %v", err)
	}
	if _, err := Ramp(10, -1, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for a negative attack, got %v", err)
	}
}
