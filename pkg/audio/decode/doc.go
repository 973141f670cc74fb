// ABOUTME: Audio file loaders for the stimulus signal model
// ABOUTME: Decodes WAV, MP3, FLAC and Ogg/Opus to float channel buffers
// Package decode loads audio files into floating-point channel buffers.
//
// Supported formats: WAV (16/24/32-bit PCM), MP3, FLAC, Ogg/Opus.
//
// All loaders return samples laid out channels x frames with values in
// [-1, 1] plus the native sample rate of the file.
//
// Example:
//
//	data, sampleRate, err := decode.File("stimulus.wav")
package decode
