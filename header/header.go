// Package header implements the GTA array header: dimensionality, element
// components, tag lists and the compression kind, together with the derived
// size and index arithmetic every other layer builds on.
//
// A Header is a mutable value object. It starts empty (a pure container with
// no dimensions and no components), is defined through SetDimensions and
// SetComponents, and can be serialized to or parsed from a stream at any
// point. All derived quantities (element size, element count, data size) are
// computed with overflow-checked arithmetic when the header is defined or
// parsed, never lazily, so a successfully constructed Header can hand out
// sizes without further error paths.
package header

import (
	"fmt"

	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/format"
	"github.com/gta-format/gta/internal/checked"
	"github.com/gta-format/gta/tag"
)

// component is one element component descriptor: a type plus its byte size.
// For fixed-size types the size is implied by the type; for blobs it is the
// caller-chosen size.
type component struct {
	typ  format.Type
	size uint64
}

// Header describes one GTA array.
type Header struct {
	dims  []uint64
	comps []component

	globalTags *tag.List
	dimTags    []*tag.List
	compTags   []*tag.List

	compression format.CompressionType

	// Derived, overflow-checked values, recomputed on every redefinition.
	elementSize uint64
	elements    uint64
	dataSize    uint64
	compOffsets []uint64
}

// New creates an empty header: zero dimensions, zero components, no
// compression. An empty header models "no array" and has zero elements.
func New() *Header {
	return &Header{
		globalTags:  &tag.List{},
		compression: format.CompressionNone,
	}
}

// Clone returns a deep copy of the header. The copy shares no mutable state
// with the original; all tag lists and descriptor arrays are duplicated.
func (h *Header) Clone() *Header {
	dup := &Header{
		compression: h.compression,
		elementSize: h.elementSize,
		elements:    h.elements,
		dataSize:    h.dataSize,
		globalTags:  h.globalTags.Clone(),
	}
	if len(h.dims) > 0 {
		dup.dims = append([]uint64(nil), h.dims...)
		dup.dimTags = make([]*tag.List, len(h.dimTags))
		for i, tl := range h.dimTags {
			dup.dimTags[i] = tl.Clone()
		}
	}
	if len(h.comps) > 0 {
		dup.comps = append([]component(nil), h.comps...)
		dup.compOffsets = append([]uint64(nil), h.compOffsets...)
		dup.compTags = make([]*tag.List, len(h.compTags))
		for i, tl := range h.compTags {
			dup.compTags[i] = tl.Clone()
		}
	}

	return dup
}

// SetDimensions replaces the dimension array and resets every per-dimension
// tag list to empty. Each size must be positive; calling with no sizes is
// legal and defines a zero-dimensional array (one element when components
// are defined, zero elements otherwise).
//
// Fails with errs.ErrInvalidDimensionSize on a zero size and with
// errs.ErrOverflow when the element count or data size would not be
// representable. On failure the header is unchanged.
func (h *Header) SetDimensions(sizes ...uint64) error {
	for i, s := range sizes {
		if s == 0 {
			return fmt.Errorf("%w: dimension %d", errs.ErrInvalidDimensionSize, i)
		}
	}

	dims := append([]uint64(nil), sizes...)
	if err := h.recompute(dims, h.comps); err != nil {
		return err
	}

	h.dims = dims
	h.dimTags = make([]*tag.List, len(dims))
	for i := range h.dimTags {
		h.dimTags[i] = &tag.List{}
	}

	return nil
}

// SetComponents replaces the component array and resets every per-component
// tag list to empty. Each blob-typed entry in types consumes the next size
// from blobSizes, which must be positive; fixed-size types take their size
// from the type itself.
//
// Fails with errs.ErrInvalidType on an unknown type, errs.ErrInvalidBlobSize
// on a zero blob size or a blobSizes count mismatch, and errs.ErrOverflow
// when the element size or data size would not be representable. On failure
// the header is unchanged.
func (h *Header) SetComponents(types []format.Type, blobSizes ...uint64) error {
	comps := make([]component, len(types))
	blobIdx := 0
	for i, t := range types {
		if !t.Valid() {
			return fmt.Errorf("%w: component %d has type 0x%02x", errs.ErrInvalidType, i, uint8(t))
		}
		if t == format.TypeBlob {
			if blobIdx >= len(blobSizes) {
				return fmt.Errorf("%w: missing size for blob component %d", errs.ErrInvalidBlobSize, i)
			}
			if blobSizes[blobIdx] == 0 {
				return fmt.Errorf("%w: component %d", errs.ErrInvalidBlobSize, i)
			}
			comps[i] = component{typ: t, size: blobSizes[blobIdx]}
			blobIdx++
		} else {
			size, _ := format.TypeSize(t)
			comps[i] = component{typ: t, size: size}
		}
	}
	if blobIdx != len(blobSizes) {
		return fmt.Errorf("%w: %d blob sizes given, %d consumed", errs.ErrInvalidBlobSize, len(blobSizes), blobIdx)
	}

	if err := h.recompute(h.dims, comps); err != nil {
		return err
	}

	h.comps = comps
	h.compTags = make([]*tag.List, len(comps))
	for i := range h.compTags {
		h.compTags[i] = &tag.List{}
	}

	return nil
}

// recompute derives element size, element count, data size and per-component
// offsets for the candidate dims/comps pair, committing them only when every
// checked computation succeeds.
func (h *Header) recompute(dims []uint64, comps []component) error {
	elementSize := uint64(0)
	offsets := make([]uint64, len(comps))
	for i := range comps {
		offsets[i] = elementSize
		var err error
		elementSize, err = checked.Add(elementSize, comps[i].size)
		if err != nil {
			return err
		}
	}

	var elements uint64
	switch {
	case len(dims) == 0 && len(comps) == 0:
		elements = 0 // pure container, no array
	case len(dims) == 0:
		elements = 1 // zero-dimensional array holds exactly one element
	default:
		var err error
		elements, err = checked.MulN(dims...)
		if err != nil {
			return err
		}
	}

	dataSize, err := checked.Mul(elements, elementSize)
	if err != nil {
		return err
	}

	h.elementSize = elementSize
	h.elements = elements
	h.dataSize = dataSize
	h.compOffsets = offsets

	return nil
}

// Dimensions returns the number of dimensions.
func (h *Header) Dimensions() int {
	return len(h.dims)
}

// DimensionSize returns the size of dimension i.
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) DimensionSize(i int) uint64 {
	return h.dims[i]
}

// Components returns the number of element components.
func (h *Header) Components() int {
	return len(h.comps)
}

// ComponentType returns the type of component i.
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) ComponentType(i int) format.Type {
	return h.comps[i].typ
}

// ComponentSize returns the byte size of component i (the blob size for
// blob-typed components).
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) ComponentSize(i int) uint64 {
	return h.comps[i].size
}

// ElementSize returns the byte size of one element: the checked sum of all
// component sizes.
func (h *Header) ElementSize() uint64 {
	return h.elementSize
}

// Elements returns the total element count: the checked product of all
// dimension sizes (1 for a zero-dimensional array with components, 0 for an
// empty header).
func (h *Header) Elements() uint64 {
	return h.elements
}

// DataSize returns the total uncompressed data size in bytes.
func (h *Header) DataSize() uint64 {
	return h.dataSize
}

// GlobalTags returns the tag list attached to the whole array.
// The list is owned by the header; mutations through it are visible on the
// next Write.
func (h *Header) GlobalTags() *tag.List {
	return h.globalTags
}

// DimensionTags returns the tag list of dimension i.
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) DimensionTags(i int) *tag.List {
	return h.dimTags[i]
}

// ComponentTags returns the tag list of component i.
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) ComponentTags(i int) *tag.List {
	return h.compTags[i]
}

// Compression returns the compression kind used for the array data.
func (h *Header) Compression() format.CompressionType {
	return h.compression
}

// SetCompression selects the compression kind; it takes effect on the next
// data write. Fails with errs.ErrInvalidCompression on an unknown kind.
func (h *Header) SetCompression(kind format.CompressionType) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, uint8(kind))
	}
	h.compression = kind

	return nil
}

// Equal reports whether two headers describe the same array: same
// dimensions, components, compression and all tag lists.
func (h *Header) Equal(other *Header) bool {
	if h.compression != other.compression {
		return false
	}
	if len(h.dims) != len(other.dims) || len(h.comps) != len(other.comps) {
		return false
	}
	for i := range h.dims {
		if h.dims[i] != other.dims[i] || !h.dimTags[i].Equal(other.dimTags[i]) {
			return false
		}
	}
	for i := range h.comps {
		if h.comps[i] != other.comps[i] || !h.compTags[i].Equal(other.compTags[i]) {
			return false
		}
	}

	return h.globalTags.Equal(other.globalTags)
}
