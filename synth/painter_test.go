package synth

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	beepwav "github.com/faiface/beep/wav"
	"github.com/go-audio/wav"
	"github.com/neurlang/audiopaint/spectrogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePng(t *testing.T, img image.Image) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "spectrogram.png")
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return name
}

// four columns, three rows, a bright diagonal
func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 1, color.Gray{Y: 128})
	img.SetGray(2, 2, color.Gray{Y: 255})
	img.SetGray(3, 0, color.Gray{Y: 64})
	return img
}

func TestNewPainterDefaults(t *testing.T) {
	p := NewPainter()
	assert.Equal(t, 10.0, p.Duration)
	assert.Equal(t, 48000, p.SampleRate)
	assert.Equal(t, 100.0, p.LowFrequency)
	assert.Equal(t, 32, p.BitDepth)

	low, high := p.Frequencies()
	assert.Equal(t, 100.0, low)
	assert.Equal(t, 24000.0, high)

	p.HighFrequency = 8000
	_, high = p.Frequencies()
	assert.Equal(t, 8000.0, high)
}

func TestLoadImage(t *testing.T) {
	grid, err := LoadImage(writePng(t, testImage()))
	require.NoError(t, err)

	require.Len(t, grid, 4)
	for x := range grid {
		require.Len(t, grid[x], 3)
	}
	assert.Equal(t, 1.0, grid[0][0])
	assert.Equal(t, 0.0, grid[0][1])
	assert.InDelta(t, 128.0/255, grid[1][1], 1e-9)
	assert.Equal(t, 1.0, grid[2][2])
	assert.InDelta(t, 64.0/255, grid[3][0], 1e-9)
}

func TestLoadImageColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 12, 21))
	img.SetRGBA(10, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(11, 20, color.RGBA{A: 255})

	grid, err := LoadImage(writePng(t, img))
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []float64{1}, grid[0])
	assert.Equal(t, []float64{0}, grid[1])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = Load(garbage)
	assert.ErrorIs(t, err, image.ErrFormat)

	badGrid := filepath.Join(dir, "bad"+spectrogram.GridExt)
	require.NoError(t, os.WriteFile(badGrid, []byte("nope"), 0644))
	_, err = Load(badGrid)
	assert.ErrorIs(t, err, spectrogram.ErrBadGrid)
}

func TestFromGridErrors(t *testing.T) {
	p := NewPainter()
	p.SampleRate = 0
	_, err := p.FromGrid([][]float64{{1}})
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	p = NewPainter()
	p.Duration = 0
	_, err = p.FromGrid([][]float64{{1}})
	assert.ErrorIs(t, err, spectrogram.ErrInvalidDuration)

	p = NewPainter()
	p.LowFrequency = 30000
	_, err = p.FromGrid([][]float64{{1}})
	assert.ErrorIs(t, err, spectrogram.ErrInvalidFrequency)
}

func TestToWavImage32(t *testing.T) {
	input := writePng(t, testImage())
	output := filepath.Join(t.TempDir(), "out.wav")

	p := NewPainter()
	p.Duration = 0.5
	p.SampleRate = 8000
	require.NoError(t, p.ToWavImage(input, output))

	grid, err := LoadImage(input)
	require.NoError(t, err)
	want, err := p.FromGrid(grid)
	require.NoError(t, err)
	require.Len(t, want, 4000)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	d := wav.NewDecoder(f)
	require.True(t, d.IsValidFile())
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(8000), d.SampleRate)
	assert.Equal(t, uint16(1), d.NumChans)
	assert.Equal(t, uint16(32), d.BitDepth)
	require.Len(t, buf.Data, len(want))
	for i := range want {
		require.Equal(t, int(want[i]), buf.Data[i], "sample %d", i)
	}
}

// pcm is the integer beep stores for v at the given depth: unsigned for
// 8 bits, signed and truncated toward zero above that.
func pcm(v float64, bits int) int {
	if bits == 8 {
		return int((v + 1) / 2 * 255)
	}
	return int(v * (math.Exp2(float64(bits-1)) - 1))
}

func TestSaveWavBeepDepths(t *testing.T) {
	samples := []int32{0, math.MaxInt32, -math.MaxInt32, math.MaxInt32 / 2, -math.MaxInt32 / 4}

	for _, bits := range []int{8, 16, 24} {
		name := filepath.Join(t.TempDir(), "out.wav")
		require.NoError(t, SaveWav(name, samples, 22050, bits))

		f, err := os.Open(name)
		require.NoError(t, err)
		stream, format, err := beepwav.Decode(f)
		require.NoError(t, err)

		assert.Equal(t, beep.SampleRate(22050), format.SampleRate)
		assert.Equal(t, 1, format.NumChannels)
		assert.Equal(t, bits/8, format.Precision)
		assert.Equal(t, len(samples), stream.Len())
		require.NoError(t, stream.Close())

		f, err = os.Open(name)
		require.NoError(t, err)
		buf, err := wav.NewDecoder(f).FullPCMBuffer()
		require.NoError(t, err)
		require.NoError(t, f.Close())

		require.Len(t, buf.Data, len(samples))
		for i, s := range samples {
			assert.Equal(t, pcm(float64(s)/math.MaxInt32, bits), buf.Data[i], "bits %d sample %d", bits, i)
		}
	}

	assert.Equal(t, 32767, pcm(1, 16))
	assert.Equal(t, -8388607, pcm(-1, 24))
	assert.Equal(t, 127, pcm(0, 8))
}

func TestSaveWavErrors(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.wav")
	assert.ErrorIs(t, SaveWav(name, []int32{0}, 44100, 12), ErrUnsupportedBitDepth)
	assert.ErrorIs(t, SaveWav(name, []int32{0}, 0, 16), ErrInvalidSampleRate)

	_, err := os.Stat(name)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDumpFileRemovesPartialOutput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.wav")
	failed := errors.New("disk full")

	err := dumpfile(name, func(f *os.File) error {
		_, err := f.Write([]byte("RIFF"))
		require.NoError(t, err)
		return failed
	})
	assert.ErrorIs(t, err, failed)

	_, err = os.Stat(name)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, dumpfile(name, func(f *os.File) error {
		_, err := f.Write([]byte("RIFF"))
		return err
	}))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)
}

func TestLoadGrid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "grid"+spectrogram.GridExt)
	grid := [][]float64{{1, 0.5, 0}, {0.25, 0, 1}}

	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, spectrogram.WriteGrid(f, grid))
	require.NoError(t, f.Close())

	got, err := LoadGrid(name)
	require.NoError(t, err)
	assert.Equal(t, grid, got)

	viaLoad, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, got, viaLoad)

	_, err = LoadGrid(writePng(t, testImage()))
	assert.ErrorIs(t, err, spectrogram.ErrBadGrid)
}

func TestToWavImageFromGrid(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid"+spectrogram.GridExt)
	output := filepath.Join(dir, "out.wav")

	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, spectrogram.WriteGrid(f, [][]float64{{1, 0}, {0, 0}}))
	require.NoError(t, f.Close())

	p := NewPainter()
	p.Duration = 1
	p.SampleRate = 1000
	p.BitDepth = 16
	require.NoError(t, p.ToWavImage(input, output))

	r, err := os.Open(output)
	require.NoError(t, err)
	stream, _, err := beepwav.Decode(r)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, 1000, stream.Len())
}

func TestToWavImageErrors(t *testing.T) {
	dir := t.TempDir()
	p := NewPainter()

	err := p.ToWavImage(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p.BitDepth = 20
	p.Duration = 0.01
	err = p.ToWavImage(writePng(t, testImage()), filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, ErrUnsupportedBitDepth)

	// the depth is checked before the input is even opened
	err = p.ToWavImage(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, ErrUnsupportedBitDepth)
	_, err = os.Stat(filepath.Join(dir, "out.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
