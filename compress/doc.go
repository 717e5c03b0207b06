// Package compress provides the compression backends behind GTA array data
// and the chunked stream framing that makes them interchangeable.
//
// Each backend implements the whole-buffer Codec interface (Compress and
// Decompress of one chunk). The streaming layer never talks to a backend
// directly: it writes raw element bytes through a ChunkWriter and reads them
// back through a ChunkReader, which handle the per-chunk length framing and
// the codec dispatch. Adding a backend means adding one Codec implementation
// and one entry in the codec table; the element-streaming logic is untouched.
//
// Backends:
//
//   - zlib, default level and explicit levels 1-9 (klauspost/compress/zlib)
//   - bzip2 (dsnet/compress/bzip2; the standard library can only read bzip2)
//   - xz (ulikunitz/xz)
//   - zstd, extension kind (valyala/gozstd under cgo, klauspost otherwise)
//   - lz4 block format, extension kind (pierrec/lz4)
//   - passthrough for CompressionNone
package compress
