package spectrogram

import "errors"
import "math"

var ErrEmptyGrid = errors.New("empty amplitude grid")
var ErrRaggedGrid = errors.New("amplitude grid columns differ in length")
var ErrInvalidDuration = errors.New("duration must be positive and finite")
var ErrInvalidFrequency = errors.New("frequency range must satisfy 0 < low <= high")

// Model is an immutable spectrogram: amplitudes over time and log-spaced
// frequency, plus the duration and frequency range they cover.
type Model struct {
	// columns[x][y], y = 0 is the highest frequency bin
	columns       [][]Amplitude
	duration      float64
	lowFrequency  float64
	highFrequency float64
}

// New builds a Model from grid[x][y], where x is the time bin and y the
// frequency bin counted from the top (highest frequency). Every value is
// clamped into an Amplitude; no resampling takes place.
//
// lowFrequency may equal highFrequency, in which case every bin sounds at the
// same frequency.
func New(grid [][]float64, duration, lowFrequency, highFrequency float64) (*Model, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if !(lowFrequency > 0) || math.IsInf(highFrequency, 0) || !(highFrequency >= lowFrequency) {
		return nil, ErrInvalidFrequency
	}

	var height = len(grid[0])
	var columns = make([][]Amplitude, len(grid))
	for x := range grid {
		if len(grid[x]) != height {
			return nil, ErrRaggedGrid
		}
		columns[x] = make([]Amplitude, height)
		for y, v := range grid[x] {
			columns[x][y] = NewAmplitude(v)
		}
	}

	return &Model{
		columns:       columns,
		duration:      duration,
		lowFrequency:  lowFrequency,
		highFrequency: highFrequency,
	}, nil
}

// Columns is the number of time bins.
func (m *Model) Columns() int {
	return len(m.columns)
}

// Bins is the number of frequency bins in every column.
func (m *Model) Bins() int {
	return len(m.columns[0])
}

// Duration is the time span of the model in seconds.
func (m *Model) Duration() float64 {
	return m.duration
}

// LowFrequency is the bottom of the frequency range in hertz.
func (m *Model) LowFrequency() float64 {
	return m.lowFrequency
}

// HighFrequency is the top of the frequency range in hertz.
func (m *Model) HighFrequency() float64 {
	return m.highFrequency
}

// Column returns a copy of time bin x.
func (m *Model) Column(x int) []Amplitude {
	return append([]Amplitude(nil), m.columns[x]...)
}

// At returns the amplitude at time bin x and frequency bin y.
func (m *Model) At(x, y int) Amplitude {
	return m.columns[x][y]
}

// Frequency maps bin i to its frequency (see BinFrequency).
func (m *Model) Frequency(i int) float64 {
	return BinFrequency(i, m.Bins(), m.lowFrequency, m.highFrequency)
}

// BinFrequency spaces n bins evenly in log10 between low and high and returns
// the frequency of bin i. Bin 0 lands exactly on high, bin n would land on
// low.
func BinFrequency(i, n int, low, high float64) float64 {
	var logLow = math.Log10(low)
	var logHigh = math.Log10(high)

	var ratio = 1 - float64(i)/float64(n)
	var logFreq = ratio*(logHigh-logLow) + logLow
	return math.Pow(10, logFreq)
}
