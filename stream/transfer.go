package stream

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/compress"
	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/header"
	"github.com/gta-format/gta/internal/checked"
	"github.com/gta-format/gta/internal/pool"
)

// SkipData advances r past hdr's encoded array data without materializing
// it. Uncompressed data is seeked over when r implements io.Seeker and
// discarded otherwise; compressed data is skipped by walking the chunk
// length prefixes, without decompressing anything.
func SkipData(hdr *header.Header, r io.Reader) error {
	if hdr.Compression() != format.CompressionNone {
		return compress.SkipChunks(r)
	}

	size, err := checked.ToInt64(hdr.DataSize())
	if err != nil {
		return err
	}

	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(size, io.SeekCurrent); err != nil {
			return fmt.Errorf("%w: seeking past array data: %w", errs.ErrIO, err)
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, size); err != nil {
		return fmt.Errorf("%w: discarding array data: %w", errs.ErrUnexpectedEOF, err)
	}

	return nil
}

// CopyData streams the array data of inHdr from r directly into the encoding
// selected by outHdr on w, re-encoding between compression kinds without
// exposing the contents. The two headers must describe the same amount of
// data (element count and element size).
//
// Memory use is bounded by one element batch regardless of array size.
func CopyData(inHdr *header.Header, r io.Reader, outHdr *header.Header, w io.Writer) error {
	if inHdr.Elements() != outHdr.Elements() || inHdr.ElementSize() != outHdr.ElementSize() {
		return fmt.Errorf("%w: source %d×%d bytes, destination %d×%d bytes",
			errs.ErrDataSizeMismatch,
			inHdr.Elements(), inHdr.ElementSize(),
			outHdr.Elements(), outHdr.ElementSize())
	}

	src, err := NewReader(inHdr, r)
	if err != nil {
		return err
	}
	dst, err := NewWriter(outHdr, w)
	if err != nil {
		return err
	}

	elementSize := inHdr.ElementSize()
	remaining := inHdr.Elements()
	if remaining == 0 || elementSize == 0 {
		// NewReader/NewWriter already consumed/emitted the terminators for
		// empty data; elements without bytes need only the count bookkeeping.
		if remaining > 0 {
			if err := src.ReadElements(nil, remaining); err != nil {
				return err
			}
			return dst.WriteElements(nil, remaining)
		}
		return nil
	}

	batch := uint64(compress.DefaultChunkSize) / elementSize
	if batch == 0 {
		batch = 1
	}
	batchBytes, err := checked.Mul(batch, elementSize)
	if err != nil {
		return err
	}
	bufLen, err := checked.ToInt(batchBytes)
	if err != nil {
		return err
	}

	staging := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(staging)
	staging.ExtendOrGrow(bufLen)
	buf := staging.Bytes()

	for remaining > 0 {
		n := batch
		if n > remaining {
			n = remaining
		}
		if err := src.ReadElements(buf, n); err != nil {
			return err
		}
		if err := dst.WriteElements(buf, n); err != nil {
			return err
		}
		remaining -= n
	}

	return nil
}
