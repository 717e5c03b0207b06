// Package block implements random access to axis-aligned sub-blocks of an
// uncompressed GTA array in a seekable stream.
//
// A block is the inclusive hyperrectangle [low, high] in index space. Block
// reads and writes decompose it into maximal contiguous runs: dimension 0 is
// fastest-varying, so a run always covers the block's dimension-0 extent,
// and consecutive rows merge into a single seek+transfer whenever the block
// spans the full extent of the leading dimensions. Each run is one seek and
// one contiguous read or write; no byte outside [low, high] is touched.
//
// Block I/O requires CompressionNone and a caller-supplied byte offset of
// the array data (obtained right after reading or writing the header). It
// imposes no ordering restrictions between calls.
package block

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/header"
	"github.com/gta-format/gta/internal/checked"
)

// blockRuns precomputes the run decomposition of one block access.
type blockRuns struct {
	hdr       *header.Header
	low, high []uint64

	runBytes   int    // contiguous bytes per run
	mergedDims int    // leading dimensions covered by one run
	runs       uint64 // total number of runs
}

// plan validates every precondition and computes the run decomposition.
// All failures happen here, before any I/O is attempted.
func plan(hdr *header.Header, dataOffset int64, low, high []uint64, buf []byte) (*blockRuns, error) {
	if hdr.Compression() != format.CompressionNone {
		return nil, fmt.Errorf("%w: compression is %s", errs.ErrCompressedBlockIO, hdr.Compression())
	}
	if dataOffset < 0 {
		return nil, fmt.Errorf("%w: negative data offset", errs.ErrInvalidOperation)
	}
	if hdr.Elements() == 0 {
		return nil, fmt.Errorf("%w: header describes no array data", errs.ErrInvalidOperation)
	}
	dims := hdr.Dimensions()
	if len(low) != dims || len(high) != dims {
		return nil, fmt.Errorf("%w: header has %d dimensions, block has %d/%d",
			errs.ErrDimensionMismatch, dims, len(low), len(high))
	}

	blockElements := uint64(1)
	for i := 0; i < dims; i++ {
		if low[i] > high[i] || high[i] >= hdr.DimensionSize(i) {
			return nil, fmt.Errorf("%w: dimension %d range [%d,%d] in size %d",
				errs.ErrIndexOutOfRange, i, low[i], high[i], hdr.DimensionSize(i))
		}
		var err error
		blockElements, err = checked.Mul(blockElements, high[i]-low[i]+1)
		if err != nil {
			return nil, err
		}
	}

	blockBytes, err := checked.Mul(blockElements, hdr.ElementSize())
	if err != nil {
		return nil, err
	}
	byteCount, err := checked.ToInt(blockBytes)
	if err != nil {
		return nil, err
	}
	if len(buf) < byteCount {
		return nil, fmt.Errorf("%w: block needs %d bytes, buffer has %d", errs.ErrBufferTooSmall, byteCount, len(buf))
	}

	// Merge leading dimensions the block covers completely: their rows are
	// contiguous both in the file and in the block buffer.
	merged := 0
	for merged < dims && low[merged] == 0 && high[merged] == hdr.DimensionSize(merged)-1 {
		merged++
	}

	runElements := uint64(1)
	for i := 0; i < merged; i++ {
		runElements *= hdr.DimensionSize(i)
	}
	if merged < dims {
		runElements *= high[merged] - low[merged] + 1
	}
	runBytes, err := checked.ToInt(runElements * hdr.ElementSize())
	if err != nil {
		return nil, err
	}

	runs := uint64(1)
	for i := merged + 1; i < dims; i++ {
		runs *= high[i] - low[i] + 1
	}

	return &blockRuns{
		hdr:        hdr,
		low:        low,
		high:       high,
		runBytes:   runBytes,
		mergedDims: merged,
		runs:       runs,
	}, nil
}

// each invokes fn once per run with the file position of the run's first
// byte and the run's slice of the block buffer, in ascending linear order.
func (br *blockRuns) each(dataOffset int64, buf []byte, fn func(pos int64, run []byte) error) error {
	dims := br.hdr.Dimensions()
	coords := append([]uint64(nil), br.low...)
	for i := 0; i < br.mergedDims; i++ {
		coords[i] = 0
	}

	bufPos := 0
	for r := uint64(0); r < br.runs; r++ {
		var linear uint64
		if dims > 0 {
			linear = br.hdr.LinearIndex(coords)
		}
		offset, err := checked.Add(uint64(dataOffset), linear*br.hdr.ElementSize())
		if err != nil {
			return err
		}
		pos, err := checked.ToInt64(offset)
		if err != nil {
			return err
		}

		if err := fn(pos, buf[bufPos:bufPos+br.runBytes]); err != nil {
			return err
		}
		bufPos += br.runBytes

		// Odometer over the non-merged outer dimensions. The dimension
		// carrying the run itself (mergedDims) never steps.
		for i := br.mergedDims + 1; i < dims; i++ {
			coords[i]++
			if coords[i] <= br.high[i] {
				break
			}
			coords[i] = br.low[i]
		}
	}

	return nil
}

// ReadBlock reads the inclusive block [low, high] into buf, densely packed
// in the array's linear-index order (dimension 0 fastest-varying).
//
// r must be the stream holding the array; dataOffset is the byte position
// where the uncompressed array data begins. Preconditions (uncompressed
// header, valid index ranges, sufficient buffer) fail with
// errs.ErrInvalidOperation-class errors before any I/O.
func ReadBlock(hdr *header.Header, r io.ReadSeeker, dataOffset int64, low, high []uint64, buf []byte) error {
	br, err := plan(hdr, dataOffset, low, high, buf)
	if err != nil {
		return err
	}

	return br.each(dataOffset, buf, func(pos int64, run []byte) error {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("%w: seeking to block run: %w", errs.ErrIO, err)
		}
		if _, err := io.ReadFull(r, run); err != nil {
			return fmt.Errorf("%w: reading block run: %w", errs.ErrUnexpectedEOF, err)
		}
		return nil
	})
}

// WriteBlock overwrites the inclusive block [low, high] with buf, which must
// be densely packed in the array's linear-index order. The array is
// modified in place and never resized.
//
// Preconditions match ReadBlock and fail before any I/O.
func WriteBlock(hdr *header.Header, w io.WriteSeeker, dataOffset int64, low, high []uint64, buf []byte) error {
	br, err := plan(hdr, dataOffset, low, high, buf)
	if err != nil {
		return err
	}

	return br.each(dataOffset, buf, func(pos int64, run []byte) error {
		if _, err := w.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("%w: seeking to block run: %w", errs.ErrIO, err)
		}
		if _, err := w.Write(run); err != nil {
			return fmt.Errorf("%w: writing block run: %w", errs.ErrIO, err)
		}
		return nil
	})
}
