// Package analysis renders audio back into the spectrogram layout that
// package synth plays.
//
// It is the inverse of synthesis: a short-time Fourier transform is sampled
// at the very frequencies each image row sounds at when synthesized, so an
// analyzed recording can be painted over and turned back into audio. It
// supports:
//   - Converting WAV/FLAC/MP3 audio files to log-frequency spectrograms (saved as PNG images)
//   - Saving spectrograms losslessly as raw float16 grids
//   - Locating the dominant frequency of a signal
package analysis
