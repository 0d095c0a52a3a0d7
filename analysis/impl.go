package analysis

import "image"
import "image/color"
import "image/png"
import "io"
import "math"
import "os"
import "path/filepath"
import "strings"

import "github.com/go-audio/audio"
import "github.com/go-audio/wav"
import "github.com/hajimehoshi/go-mp3"
import "github.com/mewkiz/flac"
import "github.com/neurlang/audiopaint/spectrogram"

func dumpimage(name string, grid [][]float64) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return spectrogram.ErrEmptyGrid
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(name), spectrogram.GridExt) {
		if err := spectrogram.WriteGrid(f, grid); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	img := image.NewGray16(image.Rect(0, 0, len(grid), len(grid[0])))
	for x := range grid {
		for y, v := range grid[x] {
			v = math.Max(0, math.Min(1, v))
			img.SetGray16(x, y, color.Gray16{Y: uint16(v*math.MaxUint16 + 0.5)})
		}
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// loadwav mixes every channel down to mono in [-1, 1]
func loadwav(name string) ([]float64, int, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, ErrFileNotLoaded
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, 0, ErrFileNotLoaded
	}
	scale := float64(audio.IntMaxSignedValue(int(decoder.BitDepth)))

	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / scale
	}
	return out, int(decoder.SampleRate), nil
}

func loadflac(name string) ([]float64, int, error) {
	stream, err := flac.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			var sum float64
			for c := 0; c < channels; c++ {
				sum += float64(frame.Subframes[c].Samples[i])
			}
			out = append(out, sum/float64(channels)/scale)
		}
	}
	return out, int(stream.Info.SampleRate), nil
}

// mp3 always decodes to 16-bit little-endian stereo
func loadmp3(name string) ([]float64, int, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return nil, 0, err
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, err
	}

	out := make([]float64, len(pcm)/4)
	for i := range out {
		left := int16(uint16(pcm[4*i]) | uint16(pcm[4*i+1])<<8)
		right := int16(uint16(pcm[4*i+2]) | uint16(pcm[4*i+3])<<8)
		out[i] = (float64(left) + float64(right)) / 2 / 32768
	}
	return out, decoder.SampleRate(), nil
}

// pad appends silence so the signal holds a whole number of hops past the
// first frame.
func pad(buf []float64, window, frame int) []float64 {
	var n = len(buf)
	if n < frame {
		n = frame
	}
	if rem := (n - frame) % window; rem != 0 {
		n += window - rem
	}
	if n == len(buf) {
		return buf
	}
	out := make([]float64, n)
	copy(out, buf)
	return out
}
