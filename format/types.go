package format

type (
	// Type identifies the data type of one element component.
	Type uint8

	// CompressionType identifies the compression kind applied to array data.
	CompressionType uint8
)

const (
	TypeInt8      Type = 0x01 // TypeInt8 is a signed 8 bit integer.
	TypeUint8     Type = 0x02 // TypeUint8 is an unsigned 8 bit integer.
	TypeInt16     Type = 0x03 // TypeInt16 is a signed 16 bit integer.
	TypeUint16    Type = 0x04 // TypeUint16 is an unsigned 16 bit integer.
	TypeInt32     Type = 0x05 // TypeInt32 is a signed 32 bit integer.
	TypeUint32    Type = 0x06 // TypeUint32 is an unsigned 32 bit integer.
	TypeInt64     Type = 0x07 // TypeInt64 is a signed 64 bit integer.
	TypeUint64    Type = 0x08 // TypeUint64 is an unsigned 64 bit integer.
	TypeInt128    Type = 0x09 // TypeInt128 is a signed 128 bit integer.
	TypeUint128   Type = 0x0A // TypeUint128 is an unsigned 128 bit integer.
	TypeFloat32   Type = 0x0B // TypeFloat32 is an IEEE 754 single precision float.
	TypeFloat64   Type = 0x0C // TypeFloat64 is an IEEE 754 double precision float.
	TypeFloat128  Type = 0x0D // TypeFloat128 is an IEEE 754 quadruple precision float.
	TypeCFloat64  Type = 0x0E // TypeCFloat64 is a complex of two TypeFloat32 values.
	TypeCFloat128 Type = 0x0F // TypeCFloat128 is a complex of two TypeFloat64 values.
	TypeCFloat256 Type = 0x10 // TypeCFloat256 is a complex of two TypeFloat128 values.
	TypeBlob      Type = 0x11 // TypeBlob is an opaque component with a caller-chosen size.

	CompressionNone  CompressionType = 0x00 // CompressionNone stores raw element bytes.
	CompressionZlib  CompressionType = 0x01 // CompressionZlib is zlib at the default level.
	CompressionBzip2 CompressionType = 0x02 // CompressionBzip2 is bzip2.
	CompressionXz    CompressionType = 0x03 // CompressionXz is xz (LZMA2).
	CompressionZlib1 CompressionType = 0x04 // CompressionZlib1 is zlib at level 1 (fastest).
	CompressionZlib2 CompressionType = 0x05
	CompressionZlib3 CompressionType = 0x06
	CompressionZlib4 CompressionType = 0x07
	CompressionZlib5 CompressionType = 0x08
	CompressionZlib6 CompressionType = 0x09
	CompressionZlib7 CompressionType = 0x0A
	CompressionZlib8 CompressionType = 0x0B
	CompressionZlib9 CompressionType = 0x0C // CompressionZlib9 is zlib at level 9 (best).

	// Extension kinds. These codes are outside the base GTA set; files
	// restricted to the base set never contain them.
	CompressionZstd CompressionType = 0x20 // CompressionZstd is Zstandard (extension).
	CompressionLZ4  CompressionType = 0x21 // CompressionLZ4 is LZ4 block format (extension).
)

// typeSizes maps each fixed-size type to its byte size. Blob is absent
// because its size is chosen per component.
var typeSizes = map[Type]uint64{
	TypeInt8:      1,
	TypeUint8:     1,
	TypeInt16:     2,
	TypeUint16:    2,
	TypeInt32:     4,
	TypeUint32:    4,
	TypeInt64:     8,
	TypeUint64:    8,
	TypeInt128:    16,
	TypeUint128:   16,
	TypeFloat32:   4,
	TypeFloat64:   8,
	TypeFloat128:  16,
	TypeCFloat64:  8,
	TypeCFloat128: 16,
	TypeCFloat256: 32,
}

// TypeSize returns the fixed byte size of t.
//
// Returns:
//   - uint64: Byte size of the type (0 for TypeBlob and unknown types)
//   - bool: true if t has a fixed size, false for TypeBlob and unknown types
func TypeSize(t Type) (uint64, bool) {
	size, ok := typeSizes[t]
	return size, ok
}

// Valid reports whether t is a known component type (including TypeBlob).
func (t Type) Valid() bool {
	if t == TypeBlob {
		return true
	}
	_, ok := typeSizes[t]

	return ok
}

// Valid reports whether c is a known compression kind.
func (c CompressionType) Valid() bool {
	switch {
	case c <= CompressionZlib9:
		return true
	case c == CompressionZstd || c == CompressionLZ4:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case TypeInt8:
		return "Int8"
	case TypeUint8:
		return "Uint8"
	case TypeInt16:
		return "Int16"
	case TypeUint16:
		return "Uint16"
	case TypeInt32:
		return "Int32"
	case TypeUint32:
		return "Uint32"
	case TypeInt64:
		return "Int64"
	case TypeUint64:
		return "Uint64"
	case TypeInt128:
		return "Int128"
	case TypeUint128:
		return "Uint128"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeFloat128:
		return "Float128"
	case TypeCFloat64:
		return "CFloat64"
	case TypeCFloat128:
		return "CFloat128"
	case TypeCFloat256:
		return "CFloat256"
	case TypeBlob:
		return "Blob"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionBzip2:
		return "Bzip2"
	case CompressionXz:
		return "Xz"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	}
	if c >= CompressionZlib1 && c <= CompressionZlib9 {
		return "Zlib" + string(rune('1'+c-CompressionZlib1))
	}

	return "Unknown"
}

// ZlibLevel returns the deflate level encoded by c and true when c is one of
// the zlib kinds. CompressionZlib maps to -1, the backend's default level.
func (c CompressionType) ZlibLevel() (int, bool) {
	switch {
	case c == CompressionZlib:
		return -1, true
	case c >= CompressionZlib1 && c <= CompressionZlib9:
		return int(c-CompressionZlib1) + 1, true
	default:
		return 0, false
	}
}
