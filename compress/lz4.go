package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/gta-format/gta/errs"
)

// lz4CompressorPool pools lz4.Compressor instances; they carry internal
// state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression for the LZ4 extension kind.
// LZ4 blocks do not record their decompressed size, so Decompress sizes its
// output adaptively; chunk sizes on the write path stay well below the
// retry ceiling.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input into one LZ4 block using a pooled compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses one LZ4 block.
//
// The block format does not store the decompressed size, so the output
// buffer starts at 4x the compressed size and doubles on
// ErrInvalidSourceShortBuffer up to the MaxChunkSize ceiling, at which point
// the input is treated as corrupt.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	if bufSize > MaxChunkSize {
		bufSize = MaxChunkSize
	}

	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < MaxChunkSize {
				bufSize *= 2
				if bufSize > MaxChunkSize {
					bufSize = MaxChunkSize
				}
				continue
			}

			return nil, fmt.Errorf("%w: lz4: %w", errs.ErrCorruptCompressedChunk, err)
		}

		return buf[:n], nil
	}
}
