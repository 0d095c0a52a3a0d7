package synth

import "image"
import "image/color"
import _ "image/gif"
import _ "image/jpeg"
import _ "image/png"
import "math"
import "os"

import _ "golang.org/x/image/bmp"
import _ "golang.org/x/image/tiff"
import _ "golang.org/x/image/webp"

import "github.com/faiface/beep"
import beepwav "github.com/faiface/beep/wav"
import "github.com/go-audio/audio"
import "github.com/go-audio/wav"
import "github.com/neurlang/audiopaint/spectrogram"

func loadimage(name string) ([][]float64, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	grid := make([][]float64, bounds.Dx())
	for x := range grid {
		grid[x] = make([]float64, bounds.Dy())
		for y := range grid[x] {
			luma := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			grid[x][y] = float64(luma.Y) / math.MaxUint16
		}
	}
	return grid, nil
}

func loadgrid(name string) ([][]float64, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return spectrogram.ReadGrid(file)
}

func dumpwav(name string, samples []int32, sr, bits int) error {
	if sr <= 0 {
		return ErrInvalidSampleRate
	}
	if !supportedDepth(bits) {
		return ErrUnsupportedBitDepth
	}

	return dumpfile(name, func(f *os.File) error {
		if bits == 32 {
			return dumpwav32(f, samples, sr)
		}
		return dumpwavbeep(f, samples, sr, bits)
	})
}

// dumpfile leaves no partial file behind when write fails.
func dumpfile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func supportedDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// beep stops at 24 bits, so full-width samples go through go-audio
func dumpwav32(f *os.File, samples []int32, sr int) error {
	enc := wav.NewEncoder(f, sr, 32, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sr,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 32,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func dumpwavbeep(f *os.File, samples []int32, sr, bits int) error {
	var pos int
	streamer := beep.StreamerFunc(func(buf [][2]float64) (n int, ok bool) {
		if pos >= len(samples) {
			return 0, false
		}
		for n = 0; n < len(buf) && pos < len(samples); n++ {
			v := float64(samples[pos]) / math.MaxInt32
			buf[n][0], buf[n][1] = v, v
			pos++
		}
		return n, true
	})

	format := beep.Format{
		SampleRate:  beep.SampleRate(sr),
		NumChannels: 1,
		Precision:   bits / 8,
	}
	return beepwav.Encode(f, streamer, format)
}
