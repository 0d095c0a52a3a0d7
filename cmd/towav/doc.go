// Command towav converts spectrogram images (PNG, JPEG, GIF, BMP, TIFF, WebP)
// into audio files (WAV) by additive synthesis.
//
// Every image column is a slice of time and every row a frequency, the top
// row being the highest. Row frequencies are spaced logarithmically between
// --low and --high; pixel brightness sets each sinusoid's amplitude. The
// result is normalized to full scale.
//
// Usage:
//
//	towav <image_file> [-o out.wav] [-l seconds] [-s sample_rate] [--bits 8|16|24|32]
//
// The output WAV file defaults to <image_file>.wav. Raw grids written by
// topng (.apg files) are accepted in place of an image.
package main
