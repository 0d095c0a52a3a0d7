// Package synth turns a spectrogram.Model into audio by direct additive
// synthesis.
//
// Every output sample is computed on its own: the column under the sample
// time is selected and its bins are summed as sinusoids at their log-spaced
// frequencies, weighted by amplitude. No phase is carried between samples, so
// the work splits freely across goroutines. It supports:
//   - Evaluating a single sample at any time within the model's duration
//   - Rendering, peak-normalizing and quantizing a whole clip to int32 PCM
//   - Loading spectrogram images (PNG, JPEG, GIF, BMP, TIFF, WebP) or raw grids
//   - Writing mono WAV files at 8, 16, 24 or 32 bits
package synth
