package header

// Index arithmetic. GTA arrays are linearized with dimension 0 as the
// fastest-varying axis: for a 3-dimensional array the element at
// (x, y, z) has linear index x + dims[0]*(y + dims[1]*z).

// LinearIndex converts per-dimension indices to a linear element index.
//
// indices must hold exactly Dimensions() entries, each within its dimension
// size; violating either is a programming error and panics. The result
// always fits in uint64 for valid inputs because Elements() was computed
// with checked arithmetic.
func (h *Header) LinearIndex(indices []uint64) uint64 {
	if len(indices) != len(h.dims) {
		panic("header: LinearIndex called with wrong dimension count")
	}

	linear := uint64(0)
	for i := len(h.dims) - 1; i >= 0; i-- {
		if indices[i] >= h.dims[i] {
			panic("header: LinearIndex index out of range")
		}
		linear = linear*h.dims[i] + indices[i]
	}

	return linear
}

// Indices converts a linear element index to per-dimension indices, the
// exact inverse of LinearIndex. out must hold exactly Dimensions() entries
// and linear must be below Elements(); violating either is a programming
// error and panics.
func (h *Header) Indices(linear uint64, out []uint64) {
	if len(out) != len(h.dims) {
		panic("header: Indices called with wrong dimension count")
	}
	if linear >= h.elements {
		panic("header: Indices linear index out of range")
	}

	for i := range h.dims {
		out[i] = linear % h.dims[i]
		linear /= h.dims[i]
	}
}

// ElementOffset returns the byte offset of the element at the given indices
// within a densely packed data buffer. Bounds against the buffer length are
// the caller's responsibility.
func (h *Header) ElementOffset(indices ...uint64) uint64 {
	// Cannot overflow: LinearIndex < Elements and
	// Elements*ElementSize == DataSize was computed checked.
	return h.LinearIndex(indices) * h.elementSize
}

// ComponentOffset returns the byte offset of component i within one element.
// Panics if i is out of range; bounds are the caller's responsibility.
func (h *Header) ComponentOffset(i int) uint64 {
	return h.compOffsets[i]
}
