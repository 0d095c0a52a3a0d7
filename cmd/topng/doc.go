// Command topng converts audio files (WAV/FLAC/MP3) to log-frequency spectrogram
// images (PNG).
//
// Rows are laid out exactly as towav plays them, so an image produced here
// can be edited and turned back into sound. Brightness is the short-time
// magnitude, normalized to the loudest cell.
//
// Usage:
//
//	topng <audio_file> [-o out.png] [--bins rows] [--window hop] [--resolution frame]
//
// The output file defaults to <audio_file>.png. Naming it *.apg writes a raw
// float16 grid instead of an image.
//
// Supported input formats: .wav, .flac, .mp3
package main
