package stream

import (
	"errors"
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

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithReadChecksum enables a running XXH64 digest over the raw element bytes,
// readable through Checksum after the pass.
func WithReadChecksum() ReaderOption {
	return options.NoError(func(r *Reader) {
		r.hash = xxhash.New()
	})
}

// Reader is the I/O state of one read traversal of an array's data.
type Reader struct {
	hdr *header.Header
	r   io.Reader
	cr  *compress.ChunkReader // nil when compression is None

	hash     *xxhash.Digest // nil unless WithReadChecksum
	read     uint64         // elements
	finished bool
}

// NewReader creates the read state for one full traversal of hdr's data,
// positioned at linear index 0. r must be positioned immediately after the
// encoded header (where hdr was parsed from). The reader never closes r.
//
// Zero-element arrays are finalized immediately: for compressed headers the
// chunk terminator is consumed before NewReader returns, leaving r
// positioned at the next array in the stream.
func NewReader(hdr *header.Header, r io.Reader, opts ...ReaderOption) (*Reader, error) {
	sr := &Reader{
		hdr: hdr,
		r:   r,
	}
	if err := options.Apply(sr, opts...); err != nil {
		return nil, err
	}

	if hdr.Compression() != format.CompressionNone {
		codec, err := compress.GetCodec(hdr.Compression())
		if err != nil {
			return nil, err
		}
		sr.cr = compress.NewChunkReader(r, codec, hdr.DataSize())
	}

	if hdr.Elements() == 0 {
		if err := sr.finish(); err != nil {
			return nil, err
		}
	}

	return sr, nil
}

// ReadElements decodes exactly n elements into buf, which must hold at least
// n*ElementSize bytes. Elements arrive in linear-index order.
//
// After the last element, the compressed chunk terminator is consumed so the
// underlying reader is left positioned at the next array in the stream.
//
// Fails with errs.ErrElementsExhausted when fewer than n elements remain in
// the array, errs.ErrBufferTooSmall when buf is short, errs.ErrIO on short
// reads and errs.ErrInvalidData on corrupt compressed input.
func (sr *Reader) ReadElements(buf []byte, n uint64) error {
	if sr.finished && n > 0 {
		return errs.ErrElementsExhausted
	}
	if n > sr.hdr.Elements()-sr.read {
		return fmt.Errorf("%w: %d requested, %d remain", errs.ErrElementsExhausted, n, sr.hdr.Elements()-sr.read)
	}

	size, err := checked.Mul(n, sr.hdr.ElementSize())
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

	src := sr.r
	if sr.cr != nil {
		src = sr.cr
	}
	if _, err := io.ReadFull(src, data); err != nil {
		if errors.Is(err, errs.ErrInvalidData) {
			return err
		}
		return fmt.Errorf("%w: reading element data: %w", errs.ErrUnexpectedEOF, err)
	}

	if sr.hash != nil {
		_, _ = sr.hash.Write(data) // never fails
	}

	sr.read += n
	if sr.read == sr.hdr.Elements() {
		return sr.finish()
	}

	return nil
}

// ReadCount returns the number of elements read so far.
func (sr *Reader) ReadCount() uint64 {
	return sr.read
}

// Checksum returns the XXH64 digest of the raw element bytes read so far.
// It returns 0 unless the reader was created with WithReadChecksum.
func (sr *Reader) Checksum() uint64 {
	if sr.hash == nil {
		return 0
	}

	return sr.hash.Sum64()
}

// finish consumes the chunk terminator of a compressed array and verifies
// no decoded bytes remain beyond the declared data size.
func (sr *Reader) finish() error {
	sr.finished = true
	if sr.cr == nil {
		return nil
	}

	var b [1]byte
	n, err := sr.cr.Read(b[:])
	if n > 0 {
		return fmt.Errorf("%w: trailing bytes after %d elements", errs.ErrInvalidData, sr.read)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
