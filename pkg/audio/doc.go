// ABOUTME: Auditory stimulus package providing the signal model
// ABOUTME: Defines Tone, Noise, SoundAM and file-backed Sound stimuli
// Package audio provides the auditory stimulus signal model.
//
// A stimulus computes an immutable multi-channel floating-point waveform at
// construction time and regenerates it whenever a generation parameter
// changes. All stimuli implement the Playable interface:
//   - Tone: pure sinusoid at a given frequency
//   - Noise: colored noise (white, pink, blue, violet, brown)
//   - SoundAM: amplitude-modulated carrier (conventional or DSB-SC)
//   - Sound: waveform loaded from a file, croppable and resettable
//
// Playback delegates to a Player, typically a backend.Backend from the
// pkg/audio/backend package.
//
// Example:
//
//	tone, err := audio.NewTone(audio.ToneConfig{
//	    Volume:    []float64{50},
//	    Frequency: 440,
//	    Player:    be,
//	})
//	err = tone.Play(200*time.Millisecond, true)
package audio
