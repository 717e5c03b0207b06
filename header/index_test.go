package header

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gta-format/gta/format"
)

func TestLinearIndexOrder(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetDimensions(4, 3, 2))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))

	// Dimension 0 is fastest-varying.
	require.Equal(t, uint64(0), hdr.LinearIndex([]uint64{0, 0, 0}))
	require.Equal(t, uint64(1), hdr.LinearIndex([]uint64{1, 0, 0}))
	require.Equal(t, uint64(4), hdr.LinearIndex([]uint64{0, 1, 0}))
	require.Equal(t, uint64(12), hdr.LinearIndex([]uint64{0, 0, 1}))
	require.Equal(t, uint64(23), hdr.LinearIndex([]uint64{3, 2, 1}))
}

func TestIndicesIsInverse(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetDimensions(5, 7, 3))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))

	indices := make([]uint64, 3)
	for linear := uint64(0); linear < hdr.Elements(); linear++ {
		hdr.Indices(linear, indices)
		require.Equal(t, linear, hdr.LinearIndex(indices), "round trip of linear index %d", linear)
		for d := 0; d < 3; d++ {
			require.Less(t, indices[d], hdr.DimensionSize(d))
		}
	}
}

func TestZeroDimensionalIndex(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))

	require.Equal(t, uint64(0), hdr.LinearIndex(nil))
	hdr.Indices(0, nil)
	require.Equal(t, uint64(0), hdr.ElementOffset())
}

func TestElementOffset(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetDimensions(10, 20))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeFloat32, format.TypeFloat32}))

	require.Equal(t, uint64(8), hdr.ElementSize())
	require.Equal(t, uint64((3+10*5)*8), hdr.ElementOffset(3, 5))
}

func TestIndexPanics(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetDimensions(4, 4))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))

	require.Panics(t, func() { hdr.LinearIndex([]uint64{1}) }, "wrong dimension count")
	require.Panics(t, func() { hdr.LinearIndex([]uint64{4, 0}) }, "index out of range")
	require.Panics(t, func() { hdr.Indices(16, make([]uint64, 2)) }, "linear index out of range")
	require.Panics(t, func() { hdr.Indices(0, make([]uint64, 1)) }, "wrong output length")
}
