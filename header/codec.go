package header

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/endian"
	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/tag"
)

// Wire form of one array header (all integers little-endian):
//
//	magic        4 bytes: 'G' 'T' 'A' 0x01 (format version 1)
//	dimCount     uint64
//	dims         dimCount × { size uint64, taglist }
//	compCount    uint64
//	comps        compCount × { type uint8, [blobSize uint64 if blob], taglist }
//	globalTags   taglist
//	compression  uint8
//
// The element data follows immediately after the header in the stream; its
// encoding is selected by the compression byte (see the stream package).

// Version is the GTA format version this package reads and writes.
const Version = 1

var magic = [4]byte{'G', 'T', 'A', Version}

// Write serializes the header in wire form to w.
func (h *Header) Write(w io.Writer) error {
	engine := endian.WireEngine()

	buf := make([]byte, 0, 64)
	buf = append(buf, magic[:]...)
	buf = engine.AppendUint64(buf, uint64(len(h.dims)))
	if err := writeChunk(w, buf); err != nil {
		return err
	}

	for i, size := range h.dims {
		if err := writeChunk(w, engine.AppendUint64(nil, size)); err != nil {
			return err
		}
		if err := h.dimTags[i].Encode(w); err != nil {
			return err
		}
	}

	if err := writeChunk(w, engine.AppendUint64(nil, uint64(len(h.comps)))); err != nil {
		return err
	}
	for i := range h.comps {
		c := &h.comps[i]
		buf = buf[:0]
		buf = append(buf, byte(c.typ))
		if c.typ == format.TypeBlob {
			buf = engine.AppendUint64(buf, c.size)
		}
		if err := writeChunk(w, buf); err != nil {
			return err
		}
		if err := h.compTags[i].Encode(w); err != nil {
			return err
		}
	}

	if err := h.globalTags.Encode(w); err != nil {
		return err
	}

	return writeChunk(w, []byte{byte(h.compression)})
}

// Read parses a header in wire form from r, replacing the receiver's
// contents. On any failure the receiver is left unchanged.
//
// Structural problems (bad magic, unknown codes, zero sizes, duplicate tag
// names) surface as errs.ErrInvalidData; sizes that do not fit the platform
// as errs.ErrOverflow; short reads as errs.ErrIO.
func (h *Header) Read(r io.Reader) error {
	engine := endian.WireEngine()

	var head [12]byte
	if err := readFull(r, head[:]); err != nil {
		return err
	}
	if head[0] != magic[0] || head[1] != magic[1] || head[2] != magic[2] {
		return errs.ErrInvalidMagic
	}
	if head[3] != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, head[3])
	}

	parsed := New()

	dimCount := engine.Uint64(head[4:])
	var u64Buf [8]byte
	for n := uint64(0); n < dimCount; n++ {
		if err := readFull(r, u64Buf[:]); err != nil {
			return err
		}
		size := engine.Uint64(u64Buf[:])
		if size == 0 {
			return fmt.Errorf("%w: dimension %d", errs.ErrInvalidDimensionSize, n)
		}
		// Grown per iteration: dimCount is untrusted and must not drive
		// an allocation before the stream has backed it with bytes.
		parsed.dims = append(parsed.dims, size)

		tl := &tag.List{}
		if err := tl.Decode(r); err != nil {
			return err
		}
		parsed.dimTags = append(parsed.dimTags, tl)
	}

	if err := readFull(r, u64Buf[:]); err != nil {
		return err
	}
	compCount := engine.Uint64(u64Buf[:])
	var typeBuf [1]byte
	for n := uint64(0); n < compCount; n++ {
		if err := readFull(r, typeBuf[:]); err != nil {
			return err
		}
		typ := format.Type(typeBuf[0])
		if !typ.Valid() {
			return fmt.Errorf("%w: component %d has type 0x%02x", errs.ErrInvalidType, n, typeBuf[0])
		}

		var size uint64
		if typ == format.TypeBlob {
			if err := readFull(r, u64Buf[:]); err != nil {
				return err
			}
			size = engine.Uint64(u64Buf[:])
			if size == 0 {
				return fmt.Errorf("%w: component %d", errs.ErrInvalidBlobSize, n)
			}
		} else {
			size, _ = format.TypeSize(typ)
		}
		parsed.comps = append(parsed.comps, component{typ: typ, size: size})

		tl := &tag.List{}
		if err := tl.Decode(r); err != nil {
			return err
		}
		parsed.compTags = append(parsed.compTags, tl)
	}

	if err := parsed.globalTags.Decode(r); err != nil {
		return err
	}

	if err := readFull(r, typeBuf[:]); err != nil {
		return err
	}
	kind := format.CompressionType(typeBuf[0])
	if !kind.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, typeBuf[0])
	}
	parsed.compression = kind

	if err := parsed.recompute(parsed.dims, parsed.comps); err != nil {
		return err
	}

	*h = *parsed

	return nil
}

func writeChunk(w io.Writer, buf []byte) error {
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: writing header: %w", errs.ErrIO, err)
	}

	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: reading header: %w", errs.ErrUnexpectedEOF, err)
	}

	return nil
}
