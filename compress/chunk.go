package compress

import (
	"fmt"
	"io"

	"github.com/gta-format/gta/endian"
	"github.com/gta-format/gta/errs"
	"github.com/gta-format/gta/internal/pool"
)

// Chunk framing for compressed array data. The data is stored as a sequence
// of chunks, each one complete backend-native compressed unit:
//
//	{ compressedLen uint64, compressed bytes } ... { 0 uint64 }
//
// A zero length terminates the sequence. Each chunk decompresses to at most
// MaxChunkSize bytes. The length prefixes allow skipping the data without
// decompressing it (see SkipChunks).

const (
	// DefaultChunkSize is the default uncompressed chunk size.
	DefaultChunkSize = pool.ChunkBufferDefaultSize

	// MaxChunkSize is the largest uncompressed chunk size the format
	// permits. Writers clamp their chunk size to it, and readers reject any
	// chunk that decompresses beyond it, which bounds the memory one hostile
	// chunk can demand.
	MaxChunkSize = pool.ChunkBufferMaxThreshold

	// maxCompressedChunkSize bounds a single chunk's compressed length while
	// parsing. Any larger length prefix is treated as corrupt input before
	// significant memory is committed.
	maxCompressedChunkSize = 1 << 30
)

// ChunkWriter frames and compresses a byte stream into chunks on an
// underlying writer. It buffers up to chunkSize uncompressed bytes,
// compresses each full buffer as one chunk, and emits the zero terminator on
// Close. It never closes the underlying writer.
type ChunkWriter struct {
	w         io.Writer
	codec     Codec
	buf       *pool.ByteBuffer
	chunkSize int
	closed    bool
}

// NewChunkWriter creates a chunk-framing writer over w using the given
// codec. chunkSize is the uncompressed chunk size; values below 1 select
// DefaultChunkSize, values above MaxChunkSize are clamped to it.
func NewChunkWriter(w io.Writer, codec Codec, chunkSize int) *ChunkWriter {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize > MaxChunkSize {
		chunkSize = MaxChunkSize
	}

	return &ChunkWriter{
		w:         w,
		codec:     codec,
		buf:       pool.GetChunkBuffer(),
		chunkSize: chunkSize,
	}
}

// Write stages p into the current chunk, flushing complete chunks to the
// underlying writer as they fill up. On a flush failure it reports the
// number of bytes already staged, per the io.Writer contract.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, errs.ErrTraversalCorrupted
	}

	written := 0
	for len(p) > 0 {
		room := cw.chunkSize - cw.buf.Len()
		if room > len(p) {
			room = len(p)
		}
		cw.buf.MustWrite(p[:room])
		p = p[room:]
		written += room

		if cw.buf.Len() == cw.chunkSize {
			if err := cw.flushChunk(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

// Close flushes the pending partial chunk, writes the zero terminator and
// releases the staging buffer. The underlying writer stays open; it is owned
// by the caller. Close is idempotent.
func (cw *ChunkWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	defer func() {
		pool.PutChunkBuffer(cw.buf)
		cw.buf = nil
	}()

	if cw.buf.Len() > 0 {
		if err := cw.flushChunk(); err != nil {
			return err
		}
	}

	var zero [8]byte
	if _, err := cw.w.Write(zero[:]); err != nil {
		return fmt.Errorf("%w: writing chunk terminator: %w", errs.ErrIO, err)
	}

	return nil
}

func (cw *ChunkWriter) flushChunk() error {
	compressed, err := cw.codec.Compress(cw.buf.Bytes())
	if err != nil {
		return err
	}

	head := endian.WireEngine().AppendUint64(nil, uint64(len(compressed)))
	if _, err := cw.w.Write(head); err != nil {
		return fmt.Errorf("%w: writing chunk length: %w", errs.ErrIO, err)
	}
	if _, err := cw.w.Write(compressed); err != nil {
		return fmt.Errorf("%w: writing chunk: %w", errs.ErrIO, err)
	}
	cw.buf.Reset()

	return nil
}

// ChunkReader decompresses a chunk-framed stream from an underlying reader.
// It reads and decompresses one chunk at a time, serving bytes from the
// decompressed buffer, and reports io.EOF after the zero terminator.
type ChunkReader struct {
	r         io.Reader
	codec     Codec
	buf       []byte // decompressed bytes of the current chunk
	pos       int
	remaining uint64 // decompressed bytes the sequence may still produce
	done      bool
}

// NewChunkReader creates a chunk-framing reader over r using the given
// codec. dataSize is the declared total decompressed size of the sequence;
// any chunk that would decompress beyond it, or beyond MaxChunkSize, is
// rejected as invalid data, so a hostile stream cannot amplify past what
// the caller already agreed to read.
func NewChunkReader(r io.Reader, codec Codec, dataSize uint64) *ChunkReader {
	return &ChunkReader{r: r, codec: codec, remaining: dataSize}
}

// Read implements io.Reader over the decompressed byte sequence.
func (cr *ChunkReader) Read(p []byte) (int, error) {
	read := 0
	for read < len(p) {
		if cr.pos == len(cr.buf) {
			if cr.done {
				if read > 0 {
					return read, nil
				}
				return 0, io.EOF
			}
			if err := cr.nextChunk(); err != nil {
				return read, err
			}
			continue
		}

		n := copy(p[read:], cr.buf[cr.pos:])
		cr.pos += n
		read += n
	}

	return read, nil
}

func (cr *ChunkReader) nextChunk() error {
	var head [8]byte
	if _, err := io.ReadFull(cr.r, head[:]); err != nil {
		return fmt.Errorf("%w: reading chunk length: %w", errs.ErrUnexpectedEOF, err)
	}
	length := endian.WireEngine().Uint64(head[:])

	if length == 0 {
		cr.done = true
		cr.buf = nil
		cr.pos = 0
		return nil
	}
	if length > maxCompressedChunkSize {
		return fmt.Errorf("%w: chunk length %d exceeds limit", errs.ErrInvalidData, length)
	}

	// Stage through a pooled buffer with io.CopyN so a hostile length
	// prefix cannot force a large allocation ahead of the actual bytes.
	staging := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(staging)

	if _, err := io.CopyN(staging, cr.r, int64(length)); err != nil { //nolint:gosec // bounded by maxCompressedChunkSize
		return fmt.Errorf("%w: reading chunk: %w", errs.ErrUnexpectedEOF, err)
	}

	src := staging.Bytes()
	decompressed, err := cr.codec.Decompress(src)
	if err != nil {
		return err
	}
	if len(decompressed) > MaxChunkSize {
		return fmt.Errorf("%w: chunk decompresses to %d bytes, limit is %d", errs.ErrInvalidData, len(decompressed), MaxChunkSize)
	}
	if uint64(len(decompressed)) > cr.remaining {
		return fmt.Errorf("%w: chunk decompresses to %d bytes with %d declared remaining", errs.ErrInvalidData, len(decompressed), cr.remaining)
	}

	// A codec may hand back its input unchanged; the staging buffer returns
	// to the pool, so aliased bytes must be copied out first.
	if len(decompressed) > 0 && &decompressed[0] == &src[0] {
		decompressed = append([]byte(nil), decompressed...)
	}

	cr.remaining -= uint64(len(decompressed))
	cr.buf = decompressed
	cr.pos = 0

	return nil
}

// SkipChunks advances r past one complete chunk sequence, including the zero
// terminator, without decompressing anything. When r implements io.Seeker
// the compressed payloads are seeked over; otherwise they are discarded.
func SkipChunks(r io.Reader) error {
	seeker, seekable := r.(io.Seeker)

	var head [8]byte
	for {
		if _, err := io.ReadFull(r, head[:]); err != nil {
			return fmt.Errorf("%w: reading chunk length: %w", errs.ErrUnexpectedEOF, err)
		}
		length := endian.WireEngine().Uint64(head[:])
		if length == 0 {
			return nil
		}
		if length > maxCompressedChunkSize {
			return fmt.Errorf("%w: chunk length %d exceeds limit", errs.ErrInvalidData, length)
		}

		if seekable {
			if _, err := seeker.Seek(int64(length), io.SeekCurrent); err != nil { //nolint:gosec // bounded above
				return fmt.Errorf("%w: seeking past chunk: %w", errs.ErrIO, err)
			}
			continue
		}
		if _, err := io.CopyN(io.Discard, r, int64(length)); err != nil { //nolint:gosec // bounded above
			return fmt.Errorf("%w: discarding chunk: %w", errs.ErrUnexpectedEOF, err)
		}
	}
}
