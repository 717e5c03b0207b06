package tag

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/endian"
	"github.com/gta-format/gta/errs"
)

// Wire form of a tag list:
//
//	tagCount  uint64
//	tagCount × { nameLen uint16, name bytes, valLen uint16, value bytes }
//
// All integers little-endian (endian.WireEngine).

// Encode writes the list in wire form to w.
func (l *List) Encode(w io.Writer) error {
	engine := endian.WireEngine()

	buf := make([]byte, 0, 64)
	buf = engine.AppendUint64(buf, uint64(len(l.entries)))
	for i := range l.entries {
		e := &l.entries[i]
		buf = engine.AppendUint16(buf, uint16(len(e.name)))  //nolint:gosec // bounded by MaxStringLength
		buf = append(buf, e.name...)
		buf = engine.AppendUint16(buf, uint16(len(e.value))) //nolint:gosec // bounded by MaxStringLength
		buf = append(buf, e.value...)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: writing tag list: %w", errs.ErrIO, err)
	}

	return nil
}

// Decode replaces the list contents with a tag list read from r.
//
// Structural problems (duplicate names, validation failures) surface as
// errs.ErrInvalidData; short reads as errs.ErrIO.
func (l *List) Decode(r io.Reader) error {
	engine := endian.WireEngine()

	var head [8]byte
	if err := readFull(r, head[:]); err != nil {
		return err
	}
	count := engine.Uint64(head[:])

	l.entries = l.entries[:0]
	var lenBuf [2]byte
	for n := uint64(0); n < count; n++ {
		if err := readFull(r, lenBuf[:]); err != nil {
			return err
		}
		name, err := readString(r, int(engine.Uint16(lenBuf[:])))
		if err != nil {
			return err
		}

		if err := readFull(r, lenBuf[:]); err != nil {
			return err
		}
		value, err := readString(r, int(engine.Uint16(lenBuf[:])))
		if err != nil {
			return err
		}

		if _, exists := l.Get(name); exists {
			return fmt.Errorf("%w: duplicate tag name %q", errs.ErrInvalidData, name)
		}
		if err := l.Set(name, value); err != nil {
			return err
		}
	}

	return nil
}

func readString(r io.Reader, length int) (string, error) {
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if err := readFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: reading tag list: %w", errs.ErrUnexpectedEOF, err)
	}

	return nil
}
