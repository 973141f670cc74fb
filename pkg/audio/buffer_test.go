// ABOUTME: Tests for the buffer type and sample conversion
// ABOUTME: Interleaving layout, clamping and duration
package audio

import (
	"bytes"
	"testing"
	"time"
)

func TestBufferAccessors(t *testing.T) {
	buf := Buffer{
		Data:       [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}},
		SampleRate: 8000,
	}
	if got := buf.Channels(); got != 2 {
		t.Errorf("channels %d, expected 2", got)
	}
	if got := buf.Frames(); got != 4 {
		t.Errorf("frames %d, expected 4", got)
	}
	if got := buf.Duration(); got != 500*time.Microsecond {
		t.Errorf("duration %v, expected 500µs", got)
	}
	var empty Buffer
	if empty.Frames() != 0 || empty.Duration() != 0 {
		t.Error("empty buffer must report zero frames and duration")
	}
}

func TestInterleave16(t *testing.T) {
	buf := Buffer{
		Data:       [][]float64{{0, 1}, {-1, 0}},
		SampleRate: 8000,
	}
	want := []byte{
		0x00, 0x00, // L0 = 0
		0x00, 0x80, // R0 = -32768
		0xff, 0x7f, // L1 = 32767
		0x00, 0x00, // R1 = 0
	}
	if got := buf.Interleave16(); !bytes.Equal(got, want) {
		t.Errorf("interleaved %x, expected %x", got, want)
	}
}

func TestSampleToInt16Clamps(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32768},
		{2, 32767},
		{-2, -32768},
		{0.5, 16383},
	}
	for _, tc := range cases {
		if got := SampleToInt16(tc.in); got != tc.want {
			t.Errorf("SampleToInt16(%v) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}

func TestSampleFromInt16(t *testing.T) {
	if got := SampleFromInt16(-32768); got != -1 {
		t.Errorf("SampleFromInt16(-32768) = %v, expected -1", got)
	}
	if got := SampleFromInt16(16384); got != 0.5 {
		t.Errorf("SampleFromInt16(16384) = %v, expected 0.5", got)
	}
}
