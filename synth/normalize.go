package synth

import "fmt"
import "math"

import "github.com/neurlang/audiopaint/spectrogram"

// Peak returns the largest magnitude in values, 0 when empty.
func Peak(values []spectrogram.Value) spectrogram.Value {
	var peak spectrogram.Value
	for _, v := range values {
		if peak.Less(v.Abs()) {
			peak = v.Abs()
		}
	}
	return peak
}

// Normalize scales values in place so the loudest one has magnitude 1.
// Silent input is left untouched.
func Normalize(values []spectrogram.Value) {
	var peak = Peak(values).Float()
	if peak == 0 {
		return
	}
	for i := range values {
		// dividing keeps |v/peak| <= 1 exactly, multiplying by 1/peak does not
		values[i] = spectrogram.NewValue(values[i].Float() / peak)
	}
}

// Quantize maps normalized values to int32, truncating toward zero. A value
// outside [-1, 1] means normalization went wrong and panics.
func Quantize(values []spectrogram.Value) []int32 {
	var out = make([]int32, len(values))
	for i, v := range values {
		if v.Abs().Float() > 1 {
			panic(fmt.Sprintf("synth: sample %d is %v after normalization", i, v.Float()))
		}
		out[i] = int32(v.Float() * math.MaxInt32)
	}
	return out
}
