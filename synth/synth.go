package synth

import "fmt"
import "math"

import "github.com/neurlang/audiopaint/spectrogram"
import "github.com/sourcegraph/conc/iter"

// below this many samples rendering stays on the calling goroutine
const minParallelSamples = 4096

// Synthesizer renders one Model. It only reads the model, so it is safe for
// concurrent use.
type Synthesizer struct {
	// Workers bounds the goroutines used by Render. 0 means GOMAXPROCS,
	// 1 renders serially.
	Workers int

	model       *spectrogram.Model
	frequencies []float64
}

// New prepares a Synthesizer for m.
func New(m *spectrogram.Model) *Synthesizer {
	var frequencies = make([]float64, m.Bins())
	for i := range frequencies {
		frequencies[i] = m.Frequency(i)
	}
	return &Synthesizer{
		model:       m,
		frequencies: frequencies,
	}
}

// Evaluate returns the raw waveform value at time seconds. time must lie in
// [0, Duration]; anything else is a caller bug and panics.
func (s *Synthesizer) Evaluate(time float64) spectrogram.Value {
	var duration = s.model.Duration()
	if !(time >= 0 && time <= duration) {
		panic(fmt.Sprintf("synth: evaluate at %v outside [0, %v]", time, duration))
	}

	var columns = s.model.Columns()
	var bin = int((time / duration) * float64(columns))
	if bin >= columns {
		bin = columns - 1
	}

	var sum float64
	for i, frequency := range s.frequencies {
		sum += s.model.At(bin, i).Value() * math.Sin(time*frequency)
	}
	return spectrogram.NewValue(sum)
}

// SampleCount is the number of samples Render produces at sampleRate.
func (s *Synthesizer) SampleCount(sampleRate int) int {
	return int(s.model.Duration() * float64(sampleRate))
}

// Render evaluates floor(Duration*sampleRate) evenly spaced samples, the
// k-th at Duration*k/count. The result is in sample order however many
// workers took part.
func (s *Synthesizer) Render(sampleRate int) []spectrogram.Value {
	if sampleRate <= 0 {
		panic(fmt.Sprintf("synth: sample rate %d is not positive", sampleRate))
	}

	var duration = s.model.Duration()
	var count = s.SampleCount(sampleRate)
	var values = make([]spectrogram.Value, count)

	evaluate := func(k int, v *spectrogram.Value) {
		*v = s.Evaluate(duration * float64(k) / float64(count))
	}

	if s.Workers == 1 || count < minParallelSamples {
		for k := range values {
			evaluate(k, &values[k])
		}
		return values
	}

	var workers = s.Workers
	if workers < 0 {
		workers = 0
	}
	iter.Iterator[spectrogram.Value]{MaxGoroutines: workers}.ForEachIdx(values, evaluate)
	return values
}

// ToTimeDomain renders the model at sampleRate, normalizes the peak to full
// scale and quantizes to signed 32-bit samples.
func (s *Synthesizer) ToTimeDomain(sampleRate int) []int32 {
	var values = s.Render(sampleRate)
	Normalize(values)
	return Quantize(values)
}
