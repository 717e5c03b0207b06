package compress

import (
	"bytes"
	"fmt"

	"github.com/ulikunitz/xz"

	"github.com/gta-format/gta/errs"
)

// XzCompressor provides xz (LZMA2) compression, the highest-ratio backend of
// the base format. Each chunk is one complete xz container.
type XzCompressor struct{}

var _ Codec = (*XzCompressor)(nil)

// NewXzCompressor creates a new xz codec with default settings.
func NewXzCompressor() XzCompressor {
	return XzCompressor{}
}

// Compress compresses the input into one complete xz stream.
func (c XzCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 128)

	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if _, err := xw.Write(data); err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if err := xw.Close(); err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses one complete xz stream.
func (c XzCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	xr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xz: %w", errs.ErrCorruptCompressedChunk, err)
	}

	return readDecompressed(xr, "xz")
}
