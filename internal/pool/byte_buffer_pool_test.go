package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/arloliu/pmwire/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(RecordBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(RecordBufferDefaultSize)
	bb.MustWrite([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(RecordBufferDefaultSize)
	bb.MustWrite([]byte("test"))

	_, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(RecordBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, RecordBufferDefaultSize, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(RecordBufferDefaultSize)
		bb.MustWrite(make([]byte, RecordBufferDefaultSize))
		bb.Grow(1)

		assert.Equal(t, 2*RecordBufferDefaultSize, cap(bb.B))
		assert.Equal(t, RecordBufferDefaultSize, bb.Len(), "length should not change")
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * RecordBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.MustWrite(make([]byte, size))
		bb.Grow(1)

		assert.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("huge request", func(t *testing.T) {
		bb := NewByteBuffer(RecordBufferDefaultSize)
		bb.MustWrite([]byte("keep"))
		bb.Grow(RecordBufferDefaultSize * 10)

		assert.GreaterOrEqual(t, cap(bb.B), 4+RecordBufferDefaultSize*10)
		assert.Equal(t, []byte("keep"), bb.Bytes(), "data should survive reallocation")
	})
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	require.True(t, bb.Extend(8))
	require.False(t, bb.Extend(1))

	bb.ExtendOrGrow(4)
	assert.Equal(t, 12, bb.Len())
	assert.Len(t, bb.Slice(0, 12), 12)

	bb.SetLength(2)
	assert.Equal(t, 2, bb.Len())
	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.Slice(3, 2) })
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb)

	for range 10 {
		assert.LessOrEqual(t, cap(p.Get().B), 128)
	}
}

func TestVolumeBuffer(t *testing.T) {
	bb := GetVolumeBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 0)
	PutVolumeBuffer(bb)
}

// =============================================================================
// RecordPool Tests
// =============================================================================

func TestRecordPool_Acquire(t *testing.T) {
	p := NewRecordPool(0)
	require.Equal(t, DefaultMaxRecordSize, p.MaxRecordSize())

	buf, err := p.Acquire(100)
	require.NoError(t, err)
	assert.Len(t, buf, 100)

	big, err := p.Acquire(RecordBufferDefaultSize * 3)
	require.NoError(t, err)
	assert.Len(t, big, RecordBufferDefaultSize*3)

	p.Release(buf)
	p.Release(big)
	p.Release(nil)
}

func TestRecordPool_Limit(t *testing.T) {
	p := NewRecordPool(64)

	_, err := p.Acquire(65)
	require.ErrorIs(t, err, errs.ErrNoMem)

	_, err = p.Acquire(-1)
	require.ErrorIs(t, err, errs.ErrNoMem)

	buf, err := p.Acquire(64)
	require.NoError(t, err)
	assert.Len(t, buf, 64)
}

func TestRecordPool_Concurrent(t *testing.T) {
	p := DefaultRecordPool()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for range 100 {
				buf, err := p.Acquire(n * 16)
				if err != nil {
					t.Error(err)
					return
				}
				for j := range buf {
					buf[j] = byte(n)
				}
				p.Release(buf)
			}
		}(i + 1)
	}
	wg.Wait()
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
