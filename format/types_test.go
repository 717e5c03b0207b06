package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeSize(t *testing.T) {
	tests := []struct {
		typ  Type
		size uint64
	}{
		{TypeInt8, 1},
		{TypeUint8, 1},
		{TypeInt16, 2},
		{TypeUint16, 2},
		{TypeInt32, 4},
		{TypeUint32, 4},
		{TypeInt64, 8},
		{TypeUint64, 8},
		{TypeInt128, 16},
		{TypeUint128, 16},
		{TypeFloat32, 4},
		{TypeFloat64, 8},
		{TypeFloat128, 16},
		{TypeCFloat64, 8},
		{TypeCFloat128, 16},
		{TypeCFloat256, 32},
	}

	for _, tt := range tests {
		size, ok := TypeSize(tt.typ)
		require.True(t, ok, "%s must have a fixed size", tt.typ)
		require.Equal(t, tt.size, size, "size of %s", tt.typ)
	}

	_, ok := TypeSize(TypeBlob)
	require.False(t, ok, "blob size is per component, not per type")

	_, ok = TypeSize(Type(0x00))
	require.False(t, ok)
	_, ok = TypeSize(Type(0x42))
	require.False(t, ok)
}

func TestTypeValid(t *testing.T) {
	for typ := TypeInt8; typ <= TypeBlob; typ++ {
		require.True(t, typ.Valid(), "type 0x%02x", uint8(typ))
	}
	require.False(t, Type(0x00).Valid())
	require.False(t, Type(0x12).Valid())
}

func TestCompressionValid(t *testing.T) {
	for kind := CompressionNone; kind <= CompressionZlib9; kind++ {
		require.True(t, kind.Valid(), "kind 0x%02x", uint8(kind))
	}
	require.True(t, CompressionZstd.Valid())
	require.True(t, CompressionLZ4.Valid())

	require.False(t, CompressionType(0x0D).Valid())
	require.False(t, CompressionType(0x1F).Valid())
	require.False(t, CompressionType(0xFF).Valid())
}

func TestZlibLevel(t *testing.T) {
	level, ok := CompressionZlib.ZlibLevel()
	require.True(t, ok)
	require.Equal(t, -1, level, "plain zlib selects the backend default")

	for kind := CompressionZlib1; kind <= CompressionZlib9; kind++ {
		level, ok := kind.ZlibLevel()
		require.True(t, ok)
		require.Equal(t, int(kind-CompressionZlib1)+1, level)
	}

	_, ok = CompressionNone.ZlibLevel()
	require.False(t, ok)
	_, ok = CompressionBzip2.ZlibLevel()
	require.False(t, ok)
	_, ok = CompressionZstd.ZlibLevel()
	require.False(t, ok)
}

func TestStrings(t *testing.T) {
	require.Equal(t, "Float32", TypeFloat32.String())
	require.Equal(t, "Blob", TypeBlob.String())
	require.Equal(t, "Unknown", Type(0x99).String())

	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zlib", CompressionZlib.String())
	require.Equal(t, "Zlib1", CompressionZlib1.String())
	require.Equal(t, "Zlib9", CompressionZlib9.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Unknown", CompressionType(0x99).String())
}
