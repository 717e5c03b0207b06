package header

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
)

// allTypes lists every fixed-size component type in code order.
var allTypes = []format.Type{
	format.TypeInt8, format.TypeUint8,
	format.TypeInt16, format.TypeUint16,
	format.TypeInt32, format.TypeUint32,
	format.TypeInt64, format.TypeUint64,
	format.TypeInt128, format.TypeUint128,
	format.TypeFloat32, format.TypeFloat64, format.TypeFloat128,
	format.TypeCFloat64, format.TypeCFloat128, format.TypeCFloat256,
}

// makeKitchenSink builds a 10x20x30 array with every fixed-size type plus a
// 23-byte blob component. Element size is 146+23 = 169 bytes.
func makeKitchenSink(t *testing.T) *Header {
	t.Helper()

	hdr := New()
	require.NoError(t, hdr.SetDimensions(10, 20, 30))
	require.NoError(t, hdr.SetComponents(append(append([]format.Type(nil), allTypes...), format.TypeBlob), 23))

	return hdr
}

func TestEmptyHeader(t *testing.T) {
	hdr := New()

	require.Equal(t, 0, hdr.Dimensions())
	require.Equal(t, 0, hdr.Components())
	require.Equal(t, uint64(0), hdr.ElementSize())
	require.Equal(t, uint64(0), hdr.Elements(), "empty header models no array")
	require.Equal(t, uint64(0), hdr.DataSize())
	require.Equal(t, format.CompressionNone, hdr.Compression())
}

func TestDerivedSizes(t *testing.T) {
	hdr := makeKitchenSink(t)

	require.Equal(t, 3, hdr.Dimensions())
	require.Equal(t, uint64(10), hdr.DimensionSize(0))
	require.Equal(t, uint64(30), hdr.DimensionSize(2))
	require.Equal(t, 17, hdr.Components())
	require.Equal(t, uint64(169), hdr.ElementSize())
	require.Equal(t, uint64(6000), hdr.Elements())
	require.Equal(t, uint64(169*6000), hdr.DataSize())

	require.Equal(t, format.TypeBlob, hdr.ComponentType(16))
	require.Equal(t, uint64(23), hdr.ComponentSize(16))
	require.Equal(t, uint64(4), hdr.ComponentSize(4), "Int32 is 4 bytes")
}

func TestComponentOffsets(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetComponents([]format.Type{
		format.TypeUint8, format.TypeFloat64, format.TypeBlob,
	}, 5))

	require.Equal(t, uint64(0), hdr.ComponentOffset(0))
	require.Equal(t, uint64(1), hdr.ComponentOffset(1))
	require.Equal(t, uint64(9), hdr.ComponentOffset(2))
	require.Equal(t, uint64(14), hdr.ElementSize())
}

func TestZeroDimensionalArray(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeFloat64}))

	// No dimensions but components defined: exactly one element.
	require.Equal(t, uint64(1), hdr.Elements())
	require.Equal(t, uint64(8), hdr.DataSize())

	require.NoError(t, hdr.SetDimensions())
	require.Equal(t, uint64(1), hdr.Elements())
}

func TestSetDimensionsRejectsZero(t *testing.T) {
	hdr := New()
	err := hdr.SetDimensions(10, 0, 30)
	require.ErrorIs(t, err, errs.ErrInvalidDimensionSize)
	require.ErrorIs(t, err, errs.ErrInvalidData)
	require.Equal(t, 0, hdr.Dimensions(), "failed SetDimensions must not modify the header")
}

func TestSetDimensionsOverflow(t *testing.T) {
	hdr := New()
	err := hdr.SetDimensions(math.MaxUint64, 2)
	require.ErrorIs(t, err, errs.ErrOverflow)

	// Element count fits but the data size does not.
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint16}))
	err = hdr.SetDimensions(math.MaxUint64)
	require.ErrorIs(t, err, errs.ErrOverflow)
	require.Equal(t, 0, hdr.Dimensions())
	require.Equal(t, uint64(1), hdr.Elements(), "failure must leave the previous definition intact")
}

func TestSetComponentsBlobSizes(t *testing.T) {
	hdr := New()

	err := hdr.SetComponents([]format.Type{format.TypeBlob})
	require.ErrorIs(t, err, errs.ErrInvalidBlobSize, "blob without a size")

	err = hdr.SetComponents([]format.Type{format.TypeBlob}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidBlobSize, "zero blob size")

	err = hdr.SetComponents([]format.Type{format.TypeUint8}, 23)
	require.ErrorIs(t, err, errs.ErrInvalidBlobSize, "unconsumed blob size")

	err = hdr.SetComponents([]format.Type{format.Type(0x42)})
	require.ErrorIs(t, err, errs.ErrInvalidType)

	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeBlob, format.TypeUint8, format.TypeBlob}, 7, 11))
	require.Equal(t, uint64(7), hdr.ComponentSize(0))
	require.Equal(t, uint64(11), hdr.ComponentSize(2))
}

func TestSetComponentsOverflow(t *testing.T) {
	hdr := New()
	err := hdr.SetComponents(
		[]format.Type{format.TypeBlob, format.TypeBlob},
		math.MaxUint64, math.MaxUint64,
	)
	require.ErrorIs(t, err, errs.ErrOverflow)
	require.Equal(t, 0, hdr.Components())
}

func TestRedefinitionResetsTagLists(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetDimensions(4, 4))
	require.NoError(t, hdr.DimensionTags(0).Set("INTERPRETATION", "X"))

	require.NoError(t, hdr.SetDimensions(8, 8))
	_, ok := hdr.DimensionTags(0).Get("INTERPRETATION")
	require.False(t, ok, "redefinition resets per-dimension tags")

	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))
	require.NoError(t, hdr.ComponentTags(0).Set("UNIT", "counts"))
	require.NoError(t, hdr.SetComponents([]format.Type{format.TypeUint8}))
	_, ok = hdr.ComponentTags(0).Get("UNIT")
	require.False(t, ok, "redefinition resets per-component tags")
}

func TestSetCompression(t *testing.T) {
	hdr := New()
	require.NoError(t, hdr.SetCompression(format.CompressionZlib5))
	require.Equal(t, format.CompressionZlib5, hdr.Compression())

	err := hdr.SetCompression(format.CompressionType(0x15))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
	require.Equal(t, format.CompressionZlib5, hdr.Compression())
}

func TestCloneIsDeep(t *testing.T) {
	hdr := makeKitchenSink(t)
	require.NoError(t, hdr.GlobalTags().Set("NAME", "original"))
	require.NoError(t, hdr.DimensionTags(1).Set("INTERPRETATION", "Y"))
	require.NoError(t, hdr.ComponentTags(16).Set("CONTENT", "payload"))

	dup := hdr.Clone()
	require.True(t, hdr.Equal(dup))
	require.Equal(t, hdr.DataSize(), dup.DataSize())

	require.NoError(t, dup.GlobalTags().Set("NAME", "copy"))
	require.NoError(t, dup.DimensionTags(1).Set("INTERPRETATION", "Z"))

	name, _ := hdr.GlobalTags().Get("NAME")
	require.Equal(t, "original", name)
	interp, _ := hdr.DimensionTags(1).Get("INTERPRETATION")
	require.Equal(t, "Y", interp)
	require.False(t, hdr.Equal(dup))
}

func TestEqual(t *testing.T) {
	a := makeKitchenSink(t)
	b := makeKitchenSink(t)
	require.True(t, a.Equal(b))

	require.NoError(t, b.SetCompression(format.CompressionXz))
	require.False(t, a.Equal(b))

	b = makeKitchenSink(t)
	require.NoError(t, b.GlobalTags().Set("EXTRA", ""))
	require.False(t, a.Equal(b))
}
