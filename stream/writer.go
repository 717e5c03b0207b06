package stream

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/gta-format/gta/compress"
	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/header"
	"github.com/gta-format/gta/internal/checked"
	"github.com/gta-format/gta/internal/options"
)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithChunkSize sets the uncompressed chunk size used when the header's
// compression kind is active, between 1 and compress.MaxChunkSize. It has no
// effect on uncompressed arrays.
func WithChunkSize(size int) WriterOption {
	return options.New(func(w *Writer) error {
		if size < 1 {
			return fmt.Errorf("%w: chunk size must be positive", errs.ErrInvalidOperation)
		}
		if size > compress.MaxChunkSize {
			return fmt.Errorf("%w: chunk size exceeds %d", errs.ErrInvalidOperation, compress.MaxChunkSize)
		}
		w.chunkSize = size
		return nil
	})
}

// WithChecksum enables a running XXH64 digest over the raw element bytes,
// readable through Checksum after the pass. The digest never enters the wire
// format; callers typically record it as a global tag.
func WithChecksum() WriterOption {
	return options.NoError(func(w *Writer) {
		w.hash = xxhash.New()
	})
}

// Writer is the I/O state of one write traversal of an array's data.
type Writer struct {
	hdr *header.Header
	w   io.Writer
	cw  *compress.ChunkWriter // nil when compression is None

	hash      *xxhash.Digest // nil unless WithChecksum
	chunkSize int
	written   uint64 // elements
	finished  bool
}

// NewWriter creates the write state for one full traversal of hdr's data,
// positioned at linear index 0. w must be positioned immediately after the
// encoded header. The writer never closes w.
//
// Zero-element arrays are finalized immediately: for compressed headers the
// (empty) chunk terminator is written before NewWriter returns.
func NewWriter(hdr *header.Header, w io.Writer, opts ...WriterOption) (*Writer, error) {
	sw := &Writer{
		hdr:       hdr,
		w:         w,
		chunkSize: compress.DefaultChunkSize,
	}
	if err := options.Apply(sw, opts...); err != nil {
		return nil, err
	}

	if hdr.Compression() != format.CompressionNone {
		codec, err := compress.GetCodec(hdr.Compression())
		if err != nil {
			return nil, err
		}
		sw.cw = compress.NewChunkWriter(w, codec, sw.chunkSize)
	}

	if hdr.Elements() == 0 {
		if err := sw.finish(); err != nil {
			return nil, err
		}
	}

	return sw, nil
}

// WriteElements encodes the next n elements from buf, which must hold at
// least n*ElementSize bytes in linear-index order.
//
// When the written count completes the array, the compressed chunk sequence
// is flushed and terminated automatically; no further writes are accepted.
//
// Fails with errs.ErrElementsExhausted when fewer than n elements remain,
// errs.ErrBufferTooSmall when buf is short, and errs.ErrIO on write failure.
func (sw *Writer) WriteElements(buf []byte, n uint64) error {
	if sw.finished && n > 0 {
		return errs.ErrElementsExhausted
	}
	if n > sw.hdr.Elements()-sw.written {
		return fmt.Errorf("%w: %d requested, %d remain", errs.ErrElementsExhausted, n, sw.hdr.Elements()-sw.written)
	}

	size, err := checked.Mul(n, sw.hdr.ElementSize())
	if err != nil {
		return err
	}
	byteCount, err := checked.ToInt(size)
	if err != nil {
		return err
	}
	if len(buf) < byteCount {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrBufferTooSmall, byteCount, len(buf))
	}
	data := buf[:byteCount]

	if sw.hash != nil {
		_, _ = sw.hash.Write(data) // never fails
	}

	if sw.cw != nil {
		if _, err := sw.cw.Write(data); err != nil {
			return err
		}
	} else if _, err := sw.w.Write(data); err != nil {
		return fmt.Errorf("%w: writing element data: %w", errs.ErrIO, err)
	}

	sw.written += n
	if sw.written == sw.hdr.Elements() {
		return sw.finish()
	}

	return nil
}

// Written returns the number of elements written so far.
func (sw *Writer) Written() uint64 {
	return sw.written
}

// Checksum returns the XXH64 digest of the raw element bytes written so far.
// It returns 0 unless the writer was created with WithChecksum.
func (sw *Writer) Checksum() uint64 {
	if sw.hash == nil {
		return 0
	}

	return sw.hash.Sum64()
}

// Close finalizes the traversal. It is a no-op after the array completed
// naturally. Closing before all elements were written still flushes and
// terminates the compressed chunk sequence (so the stream stays structurally
// parseable) but reports errs.ErrInvalidOperation, since the array data is
// incomplete.
func (sw *Writer) Close() error {
	if sw.finished {
		return nil
	}
	if err := sw.finish(); err != nil {
		return err
	}

	return fmt.Errorf("%w: closed after %d of %d elements", errs.ErrInvalidOperation, sw.written, sw.hdr.Elements())
}

func (sw *Writer) finish() error {
	sw.finished = true
	if sw.cw != nil {
		return sw.cw.Close()
	}

	return nil
}
