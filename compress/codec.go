package compress

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
)

// Compressor compresses one chunk of array data.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses one chunk of array data.
//
// The input must be one complete backend-native unit produced by the
// matching Compressor. Corrupt or mismatched input fails with an error
// matching errs.ErrInvalidData.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
// All implementations in this package are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:  NewNoOpCompressor(),
	format.CompressionBzip2: NewBzip2Compressor(),
	format.CompressionXz:    NewXzCompressor(),
	format.CompressionZstd:  NewZstdCompressor(),
	format.CompressionLZ4:   NewLZ4Compressor(),
}

func init() {
	for kind := format.CompressionZlib; kind <= format.CompressionZlib9; kind++ {
		if level, ok := kind.ZlibLevel(); ok {
			builtinCodecs[kind] = NewZlibCompressor(level)
		}
	}
}

// GetCodec retrieves the built-in Codec for the specified compression kind.
func GetCodec(kind format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: no codec for kind %s", errs.ErrInvalidCompression, kind)
}

// readDecompressed drains a backend's decompression stream, stopping at
// MaxChunkSize so a hostile chunk cannot force an allocation beyond what one
// chunk is allowed to hold.
func readDecompressed(r io.Reader, backend string) ([]byte, error) {
	decompressed, err := io.ReadAll(io.LimitReader(r, MaxChunkSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrCorruptCompressedChunk, backend, err)
	}
	if len(decompressed) > MaxChunkSize {
		return nil, fmt.Errorf("%w: %s: decompressed chunk exceeds %d bytes", errs.ErrCorruptCompressedChunk, backend, MaxChunkSize)
	}

	return decompressed, nil
}
