package analysis

import "errors"
import "math"
import "math/cmplx"

import "github.com/mjibson/go-dsp/fft"
import "github.com/neurlang/audiopaint/spectrogram"
import "github.com/r9y9/gossp/stft"
import "github.com/rs/zerolog/log"

// Analyzer represents the configuration for generating spectrograms.
type Analyzer struct {
	// number of image rows
	NumBins       int
	LowFrequency  float64
	HighFrequency float64
	// hop between frames in samples
	Window int
	// frame and FFT length in samples
	Resolut int
	TuneMul float64
}

// NewAnalyzer creates a new Analyzer instance with default values.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		NumBins:      256,
		LowFrequency: 100,
		Window:       512,
		Resolut:      2048,
		TuneMul:      1,
	}
}

var ErrFileNotLoaded = errors.New("wavNotLoaded")
var ErrInvalidSampleRate = errors.New("sample rate must be positive")
var ErrInvalidConfig = errors.New("analyzer bins, window and resolution must be positive")

// Frequencies returns the synthesis frequency range of the rows. A zero
// HighFrequency means half the sample rate, like synth.Painter.
func (a *Analyzer) Frequencies(sampleRate int) (low, high float64) {
	high = a.HighFrequency
	if high == 0 {
		high = float64(sampleRate) / 2
	}
	return a.LowFrequency, high
}

// RowHz is the audible frequency of row i. The synthesizer's phase is
// time*frequency, so a row mapped to f sounds at f/2π hertz.
func (a *Analyzer) RowHz(i, sampleRate int) float64 {
	low, high := a.Frequencies(sampleRate)
	return spectrogram.BinFrequency(i, a.NumBins, low, high) / (2 * math.Pi)
}

// ToSpectrogram generates a spectrogram grid[x][y] from a wave buffer, one
// column per STFT frame and row 0 at the highest frequency. Magnitudes are
// scaled so the loudest cell is 1.
func (a *Analyzer) ToSpectrogram(buf []float64, sampleRate int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if a.NumBins <= 0 || a.Window <= 0 || a.Resolut <= 0 {
		return nil, ErrInvalidConfig
	}
	if len(buf) == 0 {
		return nil, ErrFileNotLoaded
	}
	low, high := a.Frequencies(sampleRate)
	if !(low > 0) || !(high >= low) {
		return nil, spectrogram.ErrInvalidFrequency
	}

	buf = pad(buf, a.Window, a.Resolut)

	stft := stft.New(a.Window, a.Resolut)

	spectrum := stft.STFT(buf)

	// fractional FFT bin of every row
	var positions = make([]float64, a.NumBins)
	for i := range positions {
		positions[i] = a.RowHz(i, sampleRate) * float64(a.Resolut) / float64(sampleRate)
	}

	var peak float64
	var grid = make([][]float64, len(spectrum))
	for x := range spectrum {
		grid[x] = make([]float64, a.NumBins)
		for y, pos := range positions {
			var inlo, modlo = math.Modf(pos)
			var k = int(inlo)
			if k+1 > a.Resolut/2 {
				continue
			}
			var mag = (1-modlo)*cmplx.Abs(spectrum[x][k]) + modlo*cmplx.Abs(spectrum[x][k+1])
			mag *= a.TuneMul
			grid[x][y] = mag
			if mag > peak {
				peak = mag
			}
		}
	}

	if peak > 0 {
		for x := range grid {
			for y := range grid[x] {
				grid[x][y] /= peak
			}
		}
	}

	log.Debug().
		Int("frames", len(grid)).
		Int("bins", a.NumBins).
		Float64("low_frequency", low).
		Float64("high_frequency", high).
		Msg("Analyzed signal")

	return grid, nil
}

// DominantFrequency returns the frequency in hertz of the strongest
// component of buf, ignoring DC.
func DominantFrequency(buf []float64, sampleRate int) float64 {
	if len(buf) < 2 || sampleRate <= 0 {
		return 0
	}
	coeffs := fft.FFTReal(buf)

	var best int
	var bestMag float64
	for k := 1; k <= len(buf)/2; k++ {
		if mag := cmplx.Abs(coeffs[k]); mag > bestMag {
			best, bestMag = k, mag
		}
	}
	return float64(best) * float64(sampleRate) / float64(len(buf))
}

// LoadFlac loads mono flac file to sample vector and its sample rate
func LoadFlac(inputFile string) ([]float64, int, error) {
	mono, sr, err := loadflac(inputFile)
	if err != nil {
		return nil, 0, err
	}
	if len(mono) == 0 || sr == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return mono, sr, nil
}

// LoadMp3 loads mp3 file mixed down to mono sample vector and its sample rate
func LoadMp3(inputFile string) ([]float64, int, error) {
	mono, sr, err := loadmp3(inputFile)
	if err != nil {
		return nil, 0, err
	}
	if len(mono) == 0 || sr == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return mono, sr, nil
}

// LoadWav loads mono wav file to sample vector and its sample rate
func LoadWav(inputFile string) ([]float64, int, error) {
	mono, sr, err := loadwav(inputFile)
	if err != nil {
		return nil, 0, err
	}
	if len(mono) == 0 || sr == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return mono, sr, nil
}

// SaveImage writes grid[x][y] as a 16-bit grayscale PNG, or as a raw grid
// when outputFile ends in spectrogram.GridExt.
func SaveImage(outputFile string, grid [][]float64) error {
	return dumpimage(outputFile, grid)
}

// ToPngWav generates a spectrogram from an input WAV audio file and saves it as a PNG image.
func (a *Analyzer) ToPngWav(inputFile, outputFile string) error {
	buf, sr, err := LoadWav(inputFile)
	if err != nil {
		return err
	}
	return a.toPng(buf, sr, inputFile, outputFile)
}

// ToPngFlac generates a spectrogram from an input FLAC audio file and saves it as a PNG image.
func (a *Analyzer) ToPngFlac(inputFile, outputFile string) error {
	buf, sr, err := LoadFlac(inputFile)
	if err != nil {
		return err
	}
	return a.toPng(buf, sr, inputFile, outputFile)
}

// ToPngMp3 generates a spectrogram from an input MP3 audio file and saves it as a PNG image.
func (a *Analyzer) ToPngMp3(inputFile, outputFile string) error {
	buf, sr, err := LoadMp3(inputFile)
	if err != nil {
		return err
	}
	return a.toPng(buf, sr, inputFile, outputFile)
}

func (a *Analyzer) toPng(buf []float64, sr int, inputFile, outputFile string) error {
	log.Debug().
		Str("input", inputFile).
		Int("samples", len(buf)).
		Int("sample_rate", sr).
		Float64("dominant_hz", DominantFrequency(buf, sr)).
		Msg("Loaded audio")

	grid, err := a.ToSpectrogram(buf, sr)
	if err != nil {
		return err
	}

	if err := dumpimage(outputFile, grid); err != nil {
		return err
	}

	log.Info().
		Str("output", outputFile).
		Int("width", len(grid)).
		Int("height", a.NumBins).
		Float64("duration", float64(len(buf))/float64(sr)).
		Msg("Wrote spectrogram")

	return nil
}
