package compress

// ZstdCompressor provides Zstandard compression for the Zstd extension kind.
//
// Two implementations exist behind the same type: a cgo build binds libzstd
// through valyala/gozstd for maximum throughput, and a pure-Go build uses
// klauspost/compress/zstd. Both produce standard zstd frames, so files are
// interchangeable between the builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
