// Package spectrogram holds the time-frequency amplitude map that audiopaint
// turns into sound.
//
// A Model is a grid of Amplitude values, one column per time slice and one
// row per frequency bin, ordered from the highest frequency to the lowest.
// Alongside the grid it keeps the real duration and frequency range that map
// grid coordinates to seconds and hertz. It supports:
//   - Building a Model from a luminance grid in [0,1] (see New)
//   - Mapping a frequency bin to hertz on a base-10 logarithmic scale
//   - Reading and writing grids losslessly in a compact float16 format
package spectrogram
