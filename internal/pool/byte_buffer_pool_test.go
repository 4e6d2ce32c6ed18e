package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("hello"))
	bb.MustWriteByte(' ')
	bb.MustWriteString("world")

	require.Equal(t, 11, bb.Len())
	require.Equal(t, []byte("hello world"), bb.Bytes())
}

func TestByteBuffer_Reset_RetainsCapacity(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite(bytes.Repeat([]byte("x"), 100))
	capBefore := bb.Cap()

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWriteString("abc")

	bb.Grow(1000)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1000)
	require.Equal(t, []byte("abc"), bb.Bytes())

	// Sufficient capacity: no reallocation needed.
	capBefore := bb.Cap()
	bb.Grow(10)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(8)
	n, err := bb.Write([]byte("snapshot"))
	require.NoError(t, err)
	require.Equal(t, 8, n)

	var dst bytes.Buffer
	written, err := bb.WriteTo(&dst)
	require.NoError(t, err)
	require.Equal(t, int64(8), written)
	require.Equal(t, "snapshot", dst.String())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWriteString("data")
	p.Put(bb)

	reused := p.Get()
	require.NotNil(t, reused)
	require.Equal(t, 0, reused.Len()) // Put resets before pooling
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // exceeds threshold, should be discarded without panic

	next := p.Get()
	require.NotNil(t, next)
}

func TestSnapshotBufferPool(t *testing.T) {
	bb := GetSnapshotBuffer()
	require.NotNil(t, bb)
	bb.MustWriteString("abc")
	PutSnapshotBuffer(bb)
	PutSnapshotBuffer(nil) // nil is a no-op
}
