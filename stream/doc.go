// Package stream implements element-granularity streaming I/O for GTA
// arrays.
//
// A Writer or Reader is the explicit I/O state of one traversal: it tracks
// how many elements have been produced or consumed and, when compression is
// active, owns the open chunk stream. Exactly one traversal owns a given
// Writer or Reader; they are forward-only, not restartable, and must not be
// shared between a read pass and a write pass or reused across headers.
//
// Elements flow strictly in ascending linear-index order and memory use is
// bounded by one chunk (plus one element batch in CopyData), never by the
// array size. Writers finalize the compressed chunk sequence automatically
// when the element count completes the array; Close exists for early
// teardown and for flushing zero-element arrays.
package stream
