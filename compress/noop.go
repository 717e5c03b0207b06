package compress

// NoOpCompressor passes chunk bytes through unchanged.
//
// It backs format.CompressionNone in the codec table and serves as the
// baseline in codec benchmarks. Note that the streaming layer stores
// uncompressed arrays as raw bytes without chunk framing, so this codec is
// never consulted on the regular data path.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new passthrough codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards if they use the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
//
// The returned slice shares the input's memory; callers must not modify the
// input afterwards if they use the result.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
