package compress

import (
	"bytes"
	"fmt"

	"github.com/dsnet/compress/bzip2"

	"github.com/gta-format/gta/errs"
)

// Bzip2Compressor provides bzip2 compression. The standard library only
// ships a bzip2 reader, so both directions go through dsnet/compress.
type Bzip2Compressor struct{}

var _ Codec = (*Bzip2Compressor)(nil)

// NewBzip2Compressor creates a new bzip2 codec at the best compression
// level, matching the behavior of the bzip2 command line default for
// archival data.
func NewBzip2Compressor() Bzip2Compressor {
	return Bzip2Compressor{}
}

// Compress compresses the input into one complete bzip2 stream.
func (c Bzip2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}
	if _, err := bw.Write(data); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses one complete bzip2 stream.
func (c Bzip2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	br, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: bzip2: %w", errs.ErrCorruptCompressedChunk, err)
	}
	defer br.Close()

	return readDecompressed(br, "bzip2")
}
