package spectrogram

import "bufio"
import "encoding/binary"
import "errors"
import "fmt"
import "io"

import "github.com/x448/float16"

// GridExt is the file extension of the raw grid format.
const GridExt = ".apg"

var gridMagic = [4]byte{'A', 'P', 'G', '1'}

// maximum number of cells accepted by ReadGrid
const maxGridCells = 1 << 28

var ErrBadGrid = errors.New("malformed amplitude grid")

// WriteGrid stores grid[x][y] as half-precision floats: the magic "APG1",
// little-endian uint32 width and height, then the cells column by column.
func WriteGrid(w io.Writer, grid [][]float64) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmptyGrid
	}
	var height = len(grid[0])
	for x := range grid {
		if len(grid[x]) != height {
			return ErrRaggedGrid
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(gridMagic[:]); err != nil {
		return err
	}
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(grid)))
	binary.LittleEndian.PutUint32(header[4:8], uint32(height))
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var cell [2]byte
	for x := range grid {
		for y := range grid[x] {
			binary.LittleEndian.PutUint16(cell[:], float16.Fromfloat32(float32(grid[x][y])).Bits())
			if _, err := bw.Write(cell[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadGrid loads a grid written by WriteGrid.
func ReadGrid(r io.Reader) ([][]float64, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGrid, err)
	}
	if magic != gridMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadGrid, magic[:])
	}

	var header [8]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGrid, err)
	}
	width := int(binary.LittleEndian.Uint32(header[0:4]))
	height := int(binary.LittleEndian.Uint32(header[4:8]))
	if width == 0 || height == 0 {
		return nil, ErrEmptyGrid
	}
	if uint64(width)*uint64(height) > maxGridCells {
		return nil, fmt.Errorf("%w: %dx%d is too large", ErrBadGrid, width, height)
	}

	var cells = make([]byte, 2*height)
	var grid = make([][]float64, width)
	for x := range grid {
		if _, err := io.ReadFull(br, cells); err != nil {
			return nil, fmt.Errorf("%w: column %d: %v", ErrBadGrid, x, err)
		}
		grid[x] = make([]float64, height)
		for y := range grid[x] {
			bits := binary.LittleEndian.Uint16(cells[2*y:])
			grid[x][y] = float64(float16.Frombits(bits).Float32())
		}
	}
	return grid, nil
}
