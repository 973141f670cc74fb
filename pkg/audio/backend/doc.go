// ABOUTME: Playback backend package for scheduled audio output
// ABOUTME: Deadline/cursor engine fed by a hardware fill callback
// Package backend plays stimulus buffers on an audio output device at a
// precisely scheduled time.
//
// A Backend owns one output Device and at most one active playback session.
// The device's real-time callback pulls interleaved 16-bit PCM from the
// session through a lock-free cursor: silence before the scheduled deadline,
// buffer chunks until exhaustion, silence again afterwards.
//
// Device implementations: malgo (miniaudio, default), oto, PortAudio (build
// tag "portaudio") and a manually pumped headless device for tests.
//
// Example:
//
//	be, err := backend.New(backend.Config{})
//	defer be.Close()
//	err = be.Play(buf, 200*time.Millisecond, true)
package backend
