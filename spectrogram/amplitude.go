package spectrogram

import "math"

// Amplitude is the strength of one frequency component, always in [0, 1].
type Amplitude struct {
	value float64
}

// NewAmplitude clamps v into [0, 1]. NaN becomes 0.
func NewAmplitude(v float64) Amplitude {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return Amplitude{value: v}
}

// Value returns the amplitude as a float.
func (a Amplitude) Value() float64 {
	return a.value
}

// Value is one sample of a waveform before normalization. It may be any
// finite real number.
type Value struct {
	value float64
}

// NewValue wraps v, replacing NaN and infinities with 0.
func NewValue(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return Value{value: v}
}

// Float returns the sample as a float.
func (v Value) Float() float64 {
	return v.value
}

// Abs returns the magnitude of the sample.
func (v Value) Abs() Value {
	return Value{value: math.Abs(v.value)}
}

// Compare returns -1, 0 or +1 depending on whether v is less than, equal to
// or greater than o. The order is total since a Value is never NaN.
func (v Value) Compare(o Value) int {
	switch {
	case v.value < o.value:
		return -1
	case v.value > o.value:
		return 1
	}
	return 0
}

// Less reports whether v sorts before o.
func (v Value) Less(o Value) bool {
	return v.Compare(o) < 0
}
