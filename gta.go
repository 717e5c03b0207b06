// Package gta implements the Generic Tagged Array (GTA) container format: a
// self-describing binary format for N-dimensional arrays whose elements are
// made of typed components, annotated with string tags and optionally
// compressed.
//
// # Core features
//
//   - Self-describing headers: dimensions, component types (including
//     explicitly sized blobs), and tag lists for the array, each dimension
//     and each component
//   - Interchangeable compression backends (zlib at ten levels, bzip2, xz,
//     plus zstd and lz4 extension kinds) behind one chunked stream framing
//   - Element-granularity streaming I/O with bounded memory for arrays that
//     do not fit in RAM
//   - Random-access block I/O into uncompressed, seekable data
//   - Overflow-checked size arithmetic on every header-derived quantity
//   - Endian-portable wire encoding (little-endian, independent of the host)
//
// # Basic usage
//
// Writing one array:
//
//	hdr := gta.NewHeader()
//	_ = hdr.SetDimensions(256, 256)
//	_ = hdr.SetComponents([]format.Type{format.TypeFloat32})
//	_ = hdr.GlobalTags().Set("PRODUCER", "example")
//
//	if err := hdr.Write(f); err != nil { ... }
//	if err := gta.WriteAll(f, hdr, data); err != nil { ... }
//
// Reading it back:
//
//	hdr, err := gta.ReadHeader(f)
//	if err != nil { ... }
//	data, err := gta.ReadAll(f, hdr)
//
// Multiple arrays may be concatenated in one stream; each header is fully
// self-describing, and SkipData jumps over array data without decoding it.
//
// # Package structure
//
// This package provides convenient wrappers around the core packages. For
// streaming element-at-a-time access use the stream package directly; for
// random sub-block access into uncompressed data use the block package.
package gta

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/header"
	"github.com/gta-format/gta/internal/checked"
	"github.com/gta-format/gta/stream"
)

// NewHeader creates an empty header: zero dimensions, zero components, no
// compression.
func NewHeader() *header.Header {
	return header.New()
}

// ReadHeader parses one array header from r, leaving r positioned at the
// start of the array's data.
func ReadHeader(r io.Reader) (*header.Header, error) {
	hdr := header.New()
	if err := hdr.Read(r); err != nil {
		return nil, err
	}

	return hdr, nil
}

// WriteAll encodes hdr's complete array data from one in-memory buffer,
// which must hold exactly DataSize bytes in linear-index order. The caller
// must have written hdr to w immediately before.
//
// For arrays that do not fit in memory, use stream.NewWriter instead.
func WriteAll(w io.Writer, hdr *header.Header, data []byte) error {
	size, err := checked.ToInt(hdr.DataSize())
	if err != nil {
		return err
	}
	if len(data) != size {
		return fmt.Errorf("%w: header describes %d bytes, buffer has %d", errs.ErrDataSizeMismatch, size, len(data))
	}

	sw, err := stream.NewWriter(hdr, w)
	if err != nil {
		return err
	}

	return sw.WriteElements(data, hdr.Elements())
}

// ReadAll decodes hdr's complete array data into one newly allocated buffer
// of DataSize bytes. r must be positioned at the start of the array's data
// (immediately after the header was read).
//
// Fails with errs.ErrOverflow when the data size does not fit in memory on
// this platform; use stream.NewReader for such arrays.
func ReadAll(r io.Reader, hdr *header.Header) ([]byte, error) {
	size, err := checked.ToInt(hdr.DataSize())
	if err != nil {
		return nil, err
	}

	sr, err := stream.NewReader(hdr, r)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if err := sr.ReadElements(data, hdr.Elements()); err != nil {
		return nil, err
	}

	return data, nil
}

// SkipData advances r past hdr's encoded array data without decoding it,
// leaving r positioned at the next array in the stream.
func SkipData(hdr *header.Header, r io.Reader) error {
	return stream.SkipData(hdr, r)
}

// CopyData re-encodes array data between two headers that describe the same
// element layout but possibly different compression kinds, streaming with
// bounded memory.
func CopyData(inHdr *header.Header, r io.Reader, outHdr *header.Header, w io.Writer) error {
	return stream.CopyData(inHdr, r, outHdr, w)
}
