package synth

import "errors"
import "fmt"
import "path/filepath"
import "strings"

import "github.com/neurlang/audiopaint/spectrogram"
import "github.com/rs/zerolog/log"

// Painter represents the configuration for turning spectrogram images into
// WAV files.
type Painter struct {
	// length of the output in seconds
	Duration   float64
	SampleRate int
	// frequency of the bottom row in hertz
	LowFrequency float64
	// frequency of the top row in hertz, 0 means half the sample rate
	HighFrequency float64
	// bits per output sample: 8, 16, 24 or 32
	BitDepth int
	Workers  int
}

// NewPainter creates a new Painter instance with default values.
func NewPainter() *Painter {
	return &Painter{
		Duration:     10,
		SampleRate:   48000,
		LowFrequency: 100,
		BitDepth:     32,
	}
}

var ErrFileNotLoaded = errors.New("imageNotLoaded")
var ErrInvalidSampleRate = errors.New("sample rate must be positive")
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth, 8, 16, 24 or 32 is supported")

// Frequencies returns the frequency range the image rows are mapped onto.
func (p *Painter) Frequencies() (low, high float64) {
	high = p.HighFrequency
	if high == 0 {
		high = float64(p.SampleRate) / 2
	}
	return p.LowFrequency, high
}

// Model wraps grid[x][y] into a spectrogram covering the painter's duration
// and frequency range.
func (p *Painter) Model(grid [][]float64) (*spectrogram.Model, error) {
	low, high := p.Frequencies()
	return spectrogram.New(grid, p.Duration, low, high)
}

// FromGrid synthesizes grid[x][y] into quantized samples at p.SampleRate.
func (p *Painter) FromGrid(grid [][]float64) ([]int32, error) {
	if p.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	m, err := p.Model(grid)
	if err != nil {
		return nil, err
	}

	s := New(m)
	s.Workers = p.Workers
	return s.ToTimeDomain(p.SampleRate), nil
}

// Load reads a spectrogram from an image, or from a raw grid when the file
// has the spectrogram.GridExt extension.
func Load(inputFile string) ([][]float64, error) {
	if strings.EqualFold(filepath.Ext(inputFile), spectrogram.GridExt) {
		return loadgrid(inputFile)
	}
	return loadimage(inputFile)
}

// LoadImage loads an image as grid[x][y] of luminance in [0, 1].
func LoadImage(inputFile string) ([][]float64, error) {
	return loadimage(inputFile)
}

// LoadGrid loads a raw grid file.
func LoadGrid(inputFile string) ([][]float64, error) {
	return loadgrid(inputFile)
}

// SaveWav saves mono wav file from sample vector
func SaveWav(outputFile string, samples []int32, sr, bits int) error {
	return dumpwav(outputFile, samples, sr, bits)
}

// ToWavImage synthesizes the spectrogram in inputFile and writes it to
// outputFile as WAV.
func (p *Painter) ToWavImage(inputFile, outputFile string) error {
	if !supportedDepth(p.BitDepth) {
		return ErrUnsupportedBitDepth
	}

	grid, err := Load(inputFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", inputFile, err)
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrFileNotLoaded
	}

	low, high := p.Frequencies()
	log.Debug().
		Str("input", inputFile).
		Int("width", len(grid)).
		Int("height", len(grid[0])).
		Float64("duration", p.Duration).
		Float64("low_frequency", low).
		Float64("high_frequency", high).
		Msg("Loaded spectrogram")

	samples, err := p.FromGrid(grid)
	if err != nil {
		return fmt.Errorf("synthesize %s: %w", inputFile, err)
	}

	if err := dumpwav(outputFile, samples, p.SampleRate, p.BitDepth); err != nil {
		return fmt.Errorf("write %s: %w", outputFile, err)
	}

	log.Info().
		Str("output", outputFile).
		Int("samples", len(samples)).
		Int("sample_rate", p.SampleRate).
		Int("bit_depth", p.BitDepth).
		Msg("Wrote wav")

	return nil
}
