// Package errs defines the error taxonomy shared by all gta packages.
//
// Four root sentinels classify every failure the library can produce:
//
//   - ErrInvalidData: malformed headers, tag validation failures, unknown
//     type or compression codes, corrupt compressed input
//   - ErrOverflow: a checked size computation would exceed the representable
//     range
//   - ErrIO: short reads or writes, seek failures
//   - ErrInvalidOperation: a precondition violation, such as block access on
//     compressed data
//
// Fine-grained sentinels wrap their root, so both
// errors.Is(err, errs.ErrInvalidTagName) and
// errors.Is(err, errs.ErrInvalidData) hold for a tag name failure.
package errs

import (
	"errors"
	"fmt"
)

// Root sentinels. Every error returned by this module matches exactly one.
var (
	ErrInvalidData      = errors.New("invalid data")
	ErrOverflow         = errors.New("value overflow")
	ErrIO               = errors.New("input/output error")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Header and tag list parsing failures.
var (
	ErrInvalidMagic           = fmt.Errorf("%w: invalid magic bytes", ErrInvalidData)
	ErrUnsupportedVersion     = fmt.Errorf("%w: unsupported format version", ErrInvalidData)
	ErrInvalidTagName         = fmt.Errorf("%w: invalid tag name", ErrInvalidData)
	ErrInvalidTagValue        = fmt.Errorf("%w: invalid tag value", ErrInvalidData)
	ErrInvalidType            = fmt.Errorf("%w: invalid component type", ErrInvalidData)
	ErrInvalidCompression     = fmt.Errorf("%w: invalid compression kind", ErrInvalidData)
	ErrInvalidDimensionSize   = fmt.Errorf("%w: dimension size must be positive", ErrInvalidData)
	ErrInvalidBlobSize        = fmt.Errorf("%w: blob size must be positive", ErrInvalidData)
	ErrCorruptCompressedChunk = fmt.Errorf("%w: corrupt compressed chunk", ErrInvalidData)
)

// Streaming and block access failures.
var (
	ErrUnexpectedEOF      = fmt.Errorf("%w: unexpected end of stream", ErrIO)
	ErrElementsExhausted  = fmt.Errorf("%w: all array elements already processed", ErrInvalidOperation)
	ErrCompressedBlockIO  = fmt.Errorf("%w: block access requires uncompressed data", ErrInvalidOperation)
	ErrIndexOutOfRange    = fmt.Errorf("%w: index out of range", ErrInvalidOperation)
	ErrDimensionMismatch  = fmt.Errorf("%w: dimension count mismatch", ErrInvalidOperation)
	ErrBufferTooSmall     = fmt.Errorf("%w: buffer too small", ErrInvalidOperation)
	ErrDataSizeMismatch   = fmt.Errorf("%w: data size mismatch", ErrInvalidOperation)
	ErrChecksumMismatch   = fmt.Errorf("%w: checksum mismatch", ErrInvalidData)
	ErrTraversalCorrupted = fmt.Errorf("%w: traversal state no longer usable", ErrInvalidOperation)
)
