package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())

	bb.MustWrite([]byte("hello"))
	require.Equal(t, 5, bb.Len())
	require.Equal(t, []byte("hello"), bb.Bytes())

	n, err := bb.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, []byte("hello world"), bb.Bytes())

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(11), written)
	require.Equal(t, "hello world", out.String())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64, "reset retains capacity")
}

func TestByteBufferSetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(8)
	require.Equal(t, 8, bb.Len())

	require.Panics(t, func() { bb.SetLength(-1) })
	require.Panics(t, func() { bb.SetLength(bb.Cap() + 1) })
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3})

	bb.ExtendOrGrow(100)
	require.Equal(t, 103, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes()[:3], "grow preserves contents")
}

func TestByteBufferPoolDropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	small := p.Get()
	small.MustWrite(bytes.Repeat([]byte{1}, 32))
	p.Put(small)

	big := NewByteBuffer(128)
	p.Put(big) // above threshold, silently discarded

	p.Put(nil) // must not panic

	reused := p.Get()
	require.Equal(t, 0, reused.Len(), "pooled buffers come back empty")
}

func TestChunkBufferPool(t *testing.T) {
	bb := GetChunkBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte("chunk"))
	PutChunkBuffer(bb)
}
