package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/gta-format/gta/errs"
)

// ZlibCompressor provides zlib (RFC 1950) compression at a fixed deflate
// level. The GTA base format encodes the default level and the explicit
// levels 1-9 as distinct compression kinds, so the codec table holds ten
// instances of this type.
type ZlibCompressor struct {
	level   int
	writers *sync.Pool
}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a zlib codec for the given deflate level
// (-1 for the backend default, 1 fastest to 9 best).
func NewZlibCompressor(level int) *ZlibCompressor {
	return &ZlibCompressor{
		level: level,
		writers: &sync.Pool{
			New: func() any {
				// Level was validated by the caller; NewWriterLevel only
				// fails on out-of-range levels.
				w, err := zlib.NewWriterLevel(io.Discard, level)
				if err != nil {
					panic(fmt.Sprintf("failed to create zlib writer for pool: %v", err))
				}
				return w
			},
		},
	}
}

// Compress compresses the input into one complete zlib stream.
// Uses a pooled writer reset onto a fresh buffer for each chunk.
func (c *ZlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	zw, _ := c.writers.Get().(*zlib.Writer)
	defer c.writers.Put(zw)
	zw.Reset(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses one complete zlib stream.
func (c *ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", errs.ErrCorruptCompressedChunk, err)
	}
	defer zr.Close()

	return readDecompressed(zr, "zlib")
}
