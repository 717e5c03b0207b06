// Package tag implements the ordered tag lists attached to GTA arrays,
// dimensions and element components.
//
// A tag is a (name, value) pair of validated UTF-8 strings. Names are unique
// within a list and must be non-empty; insertion order is preserved for
// serialization while lookup is by name. See the validation rules on Set.
package tag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/internal/checked"
)

// MaxStringLength is the maximum byte length of a tag name or value,
// dictated by the uint16 length prefix of the wire encoding.
const MaxStringLength = 65535

type entry struct {
	name  string
	value string
}

// List is an ordered mapping from unique tag names to tag values.
// The zero value is an empty, ready-to-use list.
type List struct {
	entries []entry
}

// validString reports whether s is valid UTF-8 without forbidden control
// characters. Allowed controls are tab (0x09) and newline (0x0A); the ranges
// 0x00-0x08, 0x0B-0x1F and 0x7F are rejected.
func validString(s string) bool {
	if len(s) > MaxStringLength {
		return false
	}
	if !utf8.ValidString(s) {
		return false
	}
	for _, b := range []byte(s) {
		if (b <= 0x08) || (b >= 0x0B && b <= 0x1F) || b == 0x7F {
			return false
		}
	}

	return true
}

// Set inserts or replaces the tag with the given name.
//
// If the name already exists, its value is replaced in place, preserving the
// tag's position in the list; otherwise the tag is appended.
//
// Validation rules:
//   - name must be non-empty, must not contain '=', and must be valid UTF-8
//     without control characters
//   - value may be empty but has the same character validity constraint
//
// Returns errs.ErrInvalidTagName or errs.ErrInvalidTagValue on validation
// failure; the list is unchanged in that case.
func (l *List) Set(name, value string) error {
	if name == "" || strings.ContainsRune(name, '=') || !validString(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTagName, name)
	}
	if !validString(value) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTagValue, value)
	}

	for i := range l.entries {
		if l.entries[i].name == name {
			l.entries[i].value = value
			return nil
		}
	}
	l.entries = append(l.entries, entry{name: name, value: value})

	return nil
}

// Get returns the value of the named tag. The second result is false when
// the tag is absent; absence is not an error.
func (l *List) Get(name string) (string, bool) {
	for i := range l.entries {
		if l.entries[i].name == name {
			return l.entries[i].value, true
		}
	}

	return "", false
}

// Unset removes the named tag. Removing an absent tag is a no-op.
func (l *List) Unset(name string) {
	for i := range l.entries {
		if l.entries[i].name == name {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// UnsetAll removes all tags from the list.
func (l *List) UnsetAll() {
	l.entries = l.entries[:0]
}

// Count returns the number of tags in the list.
func (l *List) Count() int {
	return len(l.entries)
}

// Name returns the name of the tag at index i (insertion order).
// Panics if i is out of range; bounds are the caller's responsibility.
func (l *List) Name(i int) string {
	return l.entries[i].name
}

// Value returns the value of the tag at index i (insertion order).
// Panics if i is out of range; bounds are the caller's responsibility.
func (l *List) Value(i int) string {
	return l.entries[i].value
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	dup := &List{}
	if len(l.entries) > 0 {
		dup.entries = make([]entry, len(l.entries))
		copy(dup.entries, l.entries)
	}

	return dup
}

// Equal reports whether two lists hold the same tags in the same order.
func (l *List) Equal(other *List) bool {
	if len(l.entries) != len(other.entries) {
		return false
	}
	for i := range l.entries {
		if l.entries[i] != other.entries[i] {
			return false
		}
	}

	return true
}

// EncodedSize returns the serialized byte length of the list, computed with
// checked arithmetic so hostile tag contents cannot overflow size sums.
func (l *List) EncodedSize() (uint64, error) {
	size := uint64(8) // tag count
	for i := range l.entries {
		entrySize, err := checked.Add(uint64(len(l.entries[i].name)), uint64(len(l.entries[i].value)))
		if err != nil {
			return 0, err
		}
		entrySize, err = checked.Add(entrySize, 4) // two uint16 length prefixes
		if err != nil {
			return 0, err
		}
		size, err = checked.Add(size, entrySize)
		if err != nil {
			return 0, err
		}
	}

	return size, nil
}
