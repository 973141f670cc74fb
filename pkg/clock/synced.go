// ABOUTME: Clock synchronized to an external reference with drift compensation
// ABOUTME: Tracks both offset AND drift to handle clock frequency differences
package clock

import (
	"log"
	"sync"
	"time"
)

// Quality represents the synchronization quality of a Synced clock.
type Quality int

const (
	QualityGood Quality = iota
	QualityDegraded
	QualityLost
)

const (
	maxRTT      = 100 * time.Millisecond
	maxResidual = 50 * time.Millisecond
)

// Synced is a Clock slaved to an external reference clock, e.g. the clock of
// a recording amplifier. It wraps a local base Clock and applies an offset
// and a drift rate estimated from NTP-style timestamp exchanges, so that Now
// reports elapsed time in the reference frame of the remote clock.
//
// Estimation uses a fixed-gain filter: each accepted exchange corrects the
// predicted offset by a fraction of the measured residual.
type Synced struct {
	base Clock

	mu       sync.RWMutex
	offset   int64   // current offset in ns (reference - local)
	drift    float64 // drift rate, dimensionless (ns/ns)
	rtt      int64   // latest accepted round-trip time in ns
	lastSync int64   // local time (ns) when offset/drift were last updated
	samples  int
	gain     float64
	quality  Quality
}

// NewSynced creates a Synced clock over base. Before the first accepted
// exchange, Now reports the base clock unchanged.
func NewSynced(base Clock) *Synced {
	return &Synced{
		base:    base,
		gain:    0.1, // 10% weight to new samples
		quality: QualityLost,
	}
}

// Now returns the elapsed time in the reference clock's frame.
func (s *Synced) Now() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	local := int64(s.base.Now())
	if s.samples == 0 {
		return time.Duration(local)
	}
	dt := local - s.lastSync
	return time.Duration(local + s.offset + int64(s.drift*float64(dt)))
}

// Reset rebases the underlying clock and discards the synchronization state.
func (s *Synced) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base.Reset()
	s.offset = 0
	s.drift = 0
	s.lastSync = 0
	s.samples = 0
	s.quality = QualityLost
}

// Update processes one timestamp exchange: t1 local send, t2 remote receive,
// t3 remote send, t4 local receive (t1, t4 on the base clock; t2, t3 on the
// reference clock). Exchanges with a high round-trip time or an implausible
// residual are discarded.
func (s *Synced) Update(t1, t2, t3, t4 time.Duration) {
	rtt := int64((t4 - t1) - (t3 - t2))
	measured := int64((t2-t1)+(t3-t4)) / 2

	s.mu.Lock()
	defer s.mu.Unlock()

	if rtt > int64(maxRTT) {
		log.Printf("clock: discarding sync sample, high RTT %v", time.Duration(rtt))
		return
	}
	s.rtt = rtt

	// First exchange initializes the offset, the second the drift.
	if s.samples == 0 {
		s.offset = measured
		s.lastSync = int64(t4)
		s.samples++
		s.quality = QualityGood
		return
	}
	dt := float64(int64(t4) - s.lastSync)
	if dt <= 0 {
		log.Printf("clock: discarding sync sample, non-monotonic exchange")
		return
	}
	if s.samples == 1 {
		s.drift = float64(measured-s.offset) / dt
		s.offset = measured
		s.lastSync = int64(t4)
		s.samples++
		s.quality = QualityGood
		return
	}

	predicted := s.offset + int64(s.drift*dt)
	residual := measured - predicted
	if residual > int64(maxResidual) || residual < -int64(maxResidual) {
		log.Printf("clock: discarding sync sample, residual %v suggests a clock jump",
			time.Duration(residual))
		return
	}

	s.offset = predicted + int64(s.gain*float64(residual))
	s.drift += s.gain * float64(residual) / dt
	s.lastSync = int64(t4)
	s.samples++

	if rtt < int64(maxRTT)/2 {
		s.quality = QualityGood
	} else {
		s.quality = QualityDegraded
	}
}

// Offset returns the current offset estimate (reference - local).
func (s *Synced) Offset() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.offset)
}

// Stats returns the current offset, round-trip time and quality.
func (s *Synced) Stats() (offset, rtt time.Duration, quality Quality) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.offset), time.Duration(s.rtt), s.quality
}
