// ABOUTME: Audio file writer for the stimulus signal model
// ABOUTME: Encodes float channel buffers to 16-bit PCM WAV
// Package encode writes floating-point channel buffers to audio files.
//
// The only supported container is uncompressed WAV with 16-bit PCM samples,
// which every analysis tool reads back without a codec dependency.
//
// Example:
//
//	err := encode.WAV("stimulus.wav", signal, 44100)
package encode
