// ABOUTME: Playback engine with scheduled start and preemptive replacement
// ABOUTME: Shares only an atomic session pointer with the device callback
package backend

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mscheltienne/stimuli/pkg/audio"
	"github.com/mscheltienne/stimuli/pkg/clock"
)

// State describes what the backend is currently doing.
type State int

const (
	Idle State = iota
	Scheduled
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// Config configures a Backend. A nil Device selects the default malgo
// device; a nil Clock selects a fresh monotonic clock.
type Config struct {
	Device Device
	Clock  clock.Clock
}

// Backend schedules stimulus buffers on an output device.
//
// At most one session is active per Backend: calling Play while a buffer is
// in flight preempts it, replacing the active session immediately (queuing is
// not supported). The device stream stays open between plays, emitting
// silence while idle, and is reconfigured when a buffer arrives with a
// different sample rate or channel count.
//
// The calling goroutine and the device callback share only the session
// pointer, its immutable PCM bytes and an atomic cursor; the callback never
// takes a lock.
type Backend struct {
	mu     sync.Mutex
	device Device
	clk    clock.Clock
	closed bool

	// current stream configuration; zero when the device is closed
	sampleRate int
	channels   int

	cur atomic.Pointer[session]
}

// session is one scheduled playback of a buffer. The callback owns the
// cursor; finish is safe to call from any goroutine and idempotent.
type session struct {
	id       uuid.UUID
	pcm      []byte
	deadline int64 // clock time in ns at which audible output starts
	cursor   atomic.Int64
	done     chan struct{}
	once     sync.Once
}

func (s *session) finish() {
	s.once.Do(func() { close(s.done) })
}

func (s *session) finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// New creates a Backend. The device is opened lazily on the first Play.
func New(cfg Config) (*Backend, error) {
	dev := cfg.Device
	if dev == nil {
		dev = NewMalgoDevice()
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Backend{device: dev, clk: clk}, nil
}

// Clock returns the clock deadlines are measured against.
func (b *Backend) Clock() clock.Clock {
	return b.clk
}

// State reports the backend state: Idle without an active session, Scheduled
// before the deadline, Playing after.
func (b *Backend) State() State {
	s := b.cur.Load()
	switch {
	case s == nil:
		return Idle
	case int64(b.clk.Now()) < s.deadline:
		return Scheduled
	default:
		return Playing
	}
}

// Play schedules buf: audible output starts when the clock reaches now +
// when (immediately for when <= 0). With blocking, Play returns once the
// buffer finished playing or was stopped.
//
// An in-flight session is preempted.
func (b *Backend) Play(buf audio.Buffer, when time.Duration, blocking bool) error {
	if buf.Channels() != 1 && buf.Channels() != 2 {
		return fmt.Errorf("%w: buffer must have 1 or 2 channels, got %d",
			audio.ErrValidation, buf.Channels())
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("%w: buffer sample rate must be positive, got %d",
			audio.ErrValidation, buf.SampleRate)
	}
	if buf.Frames() == 0 {
		return fmt.Errorf("%w: buffer is empty", audio.ErrValidation)
	}
	if when < 0 {
		when = 0
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("%w: backend is closed", ErrDevice)
	}
	if err := b.ensureOpen(buf.SampleRate, buf.Channels()); err != nil {
		b.mu.Unlock()
		return err
	}

	s := &session{
		id:       uuid.New(),
		pcm:      buf.Interleave16(),
		deadline: int64(b.clk.Now() + when),
		done:     make(chan struct{}),
	}
	if old := b.cur.Swap(s); old != nil {
		old.finish()
		log.Printf("backend: session %s preempted by %s", old.id, s.id)
	}
	log.Printf("backend: session %s scheduled in %v (%d frames at %d Hz)",
		s.id, when, buf.Frames(), buf.SampleRate)
	b.mu.Unlock()

	if blocking {
		// Completion is event-driven: the callback signals it on buffer
		// exhaustion, and Stop or a preempting Play signal it immediately.
		<-s.done
	}
	return nil
}

// Stop halts the active playback, silencing output within one callback
// cycle. Safe to call in any state and idempotent.
func (b *Backend) Stop() error {
	if s := b.cur.Swap(nil); s != nil {
		s.finish()
		log.Printf("backend: session %s stopped", s.id)
	}
	return nil
}

// Close stops playback and releases the output device. The backend cannot be
// reused afterwards.
func (b *Backend) Close() error {
	_ = b.Stop()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.sampleRate != 0 {
		b.sampleRate, b.channels = 0, 0
		return b.device.Close()
	}
	return nil
}

// ensureOpen opens the device for the requested configuration, closing a
// stream opened with a different one. Callers hold b.mu.
func (b *Backend) ensureOpen(sampleRate, channels int) error {
	if b.sampleRate == sampleRate && b.channels == channels {
		return nil
	}
	if b.sampleRate != 0 {
		log.Printf("backend: reconfiguring stream %dHz/%dch -> %dHz/%dch",
			b.sampleRate, b.channels, sampleRate, channels)
		if err := b.device.Close(); err != nil {
			return err
		}
		b.sampleRate, b.channels = 0, 0
	}
	if err := b.device.Open(sampleRate, channels, b.fill); err != nil {
		return err
	}
	b.sampleRate, b.channels = sampleRate, channels
	log.Printf("backend: stream open at %d Hz, %d channels", sampleRate, channels)
	return nil
}

// fill is the device callback. It runs on the device's real-time context and
// must not block or allocate: it only loads the session pointer, compares the
// clock against the deadline and advances the cursor.
func (b *Backend) fill(out []byte) {
	s := b.cur.Load()
	if s == nil {
		zero(out)
		return
	}
	if int64(b.clk.Now()) < s.deadline {
		zero(out)
		return
	}
	cursor := int(s.cursor.Load())
	n := copy(out, s.pcm[cursor:])
	zero(out[n:])
	s.cursor.Store(int64(cursor + n))
	if cursor+n >= len(s.pcm) {
		b.cur.CompareAndSwap(s, nil)
		s.finish()
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
