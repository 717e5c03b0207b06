package block

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/header"
)

// makeVolume builds a 6x5x4 array of one uint16 component with a payload
// where every element encodes its own linear index, making misplaced run
// reads immediately visible.
func makeVolume(t *testing.T) (*header.Header, []byte) {
	t.Helper()

	hdr := header.New()
	require.NoError(t, hdr.SetDimensions(6, 5, 4))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint16}))

	data := make([]byte, hdr.DataSize())
	for i := uint64(0); i < hdr.Elements(); i++ {
		data[i*2] = byte(i)
		data[i*2+1] = byte(i >> 8)
	}

	return hdr, data
}

// extractBlock computes the expected dense block contents from the full
// array, element by element.
func extractBlock(hdr *header.Header, data []byte, low, high []uint64) []byte {
	elementSize := hdr.ElementSize()
	var out []byte

	indices := make([]uint64, hdr.Dimensions())
	var walk func(dim int)
	walk = func(dim int) {
		if dim < 0 {
			offset := hdr.LinearIndex(indices) * elementSize
			out = append(out, data[offset:offset+elementSize]...)
			return
		}
		for i := low[dim]; i <= high[dim]; i++ {
			indices[dim] = i
			walk(dim - 1)
		}
	}
	walk(hdr.Dimensions() - 1)

	return out
}

func TestReadBlock(t *testing.T) {
	hdr, data := makeVolume(t)
	const dataOffset = 128
	file := bytes.NewReader(append(make([]byte, dataOffset), data...))

	tests := []struct {
		name      string
		low, high []uint64
	}{
		{"single element", []uint64{2, 3, 1}, []uint64{2, 3, 1}},
		{"partial row", []uint64{1, 2, 3}, []uint64{4, 2, 3}},
		{"full rows merge", []uint64{0, 1, 1}, []uint64{5, 3, 2}},
		{"full leading plane", []uint64{0, 0, 1}, []uint64{5, 4, 2}},
		{"whole array", []uint64{0, 0, 0}, []uint64{5, 4, 3}},
		{"inner box", []uint64{1, 1, 1}, []uint64{4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := extractBlock(hdr, data, tt.low, tt.high)
			got := make([]byte, len(want))
			require.NoError(t, ReadBlock(hdr, file, dataOffset, tt.low, tt.high, got))
			require.Equal(t, want, got)
		})
	}
}

func TestReadBlockRandomized(t *testing.T) {
	hdr, data := makeVolume(t)
	file := bytes.NewReader(data)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		low := make([]uint64, 3)
		high := make([]uint64, 3)
		for d := 0; d < 3; d++ {
			a := rng.Uint64() % hdr.DimensionSize(d)
			b := rng.Uint64() % hdr.DimensionSize(d)
			if a > b {
				a, b = b, a
			}
			low[d], high[d] = a, b
		}

		want := extractBlock(hdr, data, low, high)
		got := make([]byte, len(want))
		require.NoError(t, ReadBlock(hdr, file, 0, low, high, got))
		require.Equal(t, want, got, "block [%v, %v]", low, high)
	}
}

func TestWriteBlock(t *testing.T) {
	hdr, data := makeVolume(t)

	path := filepath.Join(t.TempDir(), "volume.gta")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	low := []uint64{1, 2, 1}
	high := []uint64{3, 3, 2}
	patch := bytes.Repeat([]byte{0xAB, 0xCD}, 3*2*2)
	require.NoError(t, WriteBlock(hdr, f, 0, low, high, patch))

	after, err := os.ReadFile(path)
	require.NoError(t, err)

	// Inside the block the patch landed; everything else is untouched.
	indices := make([]uint64, 3)
	for linear := uint64(0); linear < hdr.Elements(); linear++ {
		hdr.Indices(linear, indices)
		inside := true
		for d := 0; d < 3; d++ {
			if indices[d] < low[d] || indices[d] > high[d] {
				inside = false
				break
			}
		}

		got := after[linear*2 : linear*2+2]
		if inside {
			require.Equal(t, []byte{0xAB, 0xCD}, got, "element %v", indices)
		} else {
			require.Equal(t, data[linear*2:linear*2+2], got, "element %v", indices)
		}
	}
}

func TestWriteBlockReadBack(t *testing.T) {
	hdr, data := makeVolume(t)

	path := filepath.Join(t.TempDir(), "volume.gta")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	defer f.Close()

	low := []uint64{0, 0, 2}
	high := []uint64{5, 4, 3}
	patch := make([]byte, 6*5*2*2)
	for i := range patch {
		patch[i] = byte(200 + i%17)
	}
	require.NoError(t, WriteBlock(hdr, f, 0, low, high, patch))

	got := make([]byte, len(patch))
	require.NoError(t, ReadBlock(hdr, f, 0, low, high, got))
	require.Equal(t, patch, got)
}

func TestBlockPreconditions(t *testing.T) {
	hdr, data := makeVolume(t)
	file := bytes.NewReader(data)
	buf := make([]byte, hdr.DataSize())

	t.Run("compressed data", func(t *testing.T) {
		compressed := hdr.Clone()
		require.NoError(t, compressed.SetCompression(format.CompressionZlib))
		err := ReadBlock(compressed, file, 0, []uint64{0, 0, 0}, []uint64{0, 0, 0}, buf)
		require.ErrorIs(t, err, errs.ErrCompressedBlockIO)
		require.ErrorIs(t, err, errs.ErrInvalidOperation)
	})

	t.Run("negative offset", func(t *testing.T) {
		err := ReadBlock(hdr, file, -1, []uint64{0, 0, 0}, []uint64{0, 0, 0}, buf)
		require.ErrorIs(t, err, errs.ErrInvalidOperation)
	})

	t.Run("empty header", func(t *testing.T) {
		err := ReadBlock(header.New(), file, 0, nil, nil, buf)
		require.ErrorIs(t, err, errs.ErrInvalidOperation)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		err := ReadBlock(hdr, file, 0, []uint64{0, 0}, []uint64{0, 0}, buf)
		require.ErrorIs(t, err, errs.ErrDimensionMismatch)
	})

	t.Run("inverted range", func(t *testing.T) {
		err := ReadBlock(hdr, file, 0, []uint64{3, 0, 0}, []uint64{2, 4, 3}, buf)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("index beyond dimension", func(t *testing.T) {
		err := ReadBlock(hdr, file, 0, []uint64{0, 0, 0}, []uint64{6, 4, 3}, buf)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("buffer too small", func(t *testing.T) {
		err := ReadBlock(hdr, file, 0, []uint64{0, 0, 0}, []uint64{5, 4, 3}, buf[:10])
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})
}

func TestZeroDimensionalBlock(t *testing.T) {
	hdr := header.New()
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint32}))

	file := bytes.NewReader([]byte{1, 2, 3, 4})
	got := make([]byte, 4)
	require.NoError(t, ReadBlock(hdr, file, 0, nil, nil, got))
	require.Equal(t, []byte{1, 2, 3, 4}, got)
}
