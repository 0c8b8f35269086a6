// Package pool supplies and reclaims the byte buffers records are encoded into
// and archive volumes are assembled in.
package pool

import (
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/pmwire/errs"
)

const (
	RecordBufferDefaultSize  = 1024 * 4        // 4KiB
	RecordBufferMaxThreshold = 1024 * 256      // 256KiB
	VolumeBufferDefaultSize  = 1024 * 1024     // 1MiB
	VolumeBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
	DefaultMaxRecordSize     = 1<<31 - 1       // largest length a record header can carry
)

// ByteBuffer is a growable byte slice handed out by a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes() returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<16KB), grow by RecordBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	// Calculate growth size based on current buffer size
	growBy := RecordBufferDefaultSize
	if cap(bb.B) > 4*RecordBufferDefaultSize {
		// For larger buffers, grow by 25% to balance memory and reallocation cost
		growBy = cap(bb.B) / 4
	}

	// Ensure we grow enough for at least the required bytes
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	// Allocate new buffer with increased capacity
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var volumeDefaultPool = NewByteBufferPool(VolumeBufferDefaultSize, VolumeBufferMaxThreshold)

// GetVolumeBuffer retrieves a ByteBuffer from the default volume pool.
func GetVolumeBuffer() *ByteBuffer {
	return volumeDefaultPool.Get()
}

// PutVolumeBuffer returns a ByteBuffer to the default volume pool.
func PutVolumeBuffer(bb *ByteBuffer) {
	volumeDefaultPool.Put(bb)
}

// RecordPool hands out exactly sized record buffers backed by a ByteBufferPool.
//
// Requests above the configured record size limit fail with errs.ErrNoMem,
// which is how the encoder observes buffer exhaustion.
type RecordPool struct {
	buffers       *ByteBufferPool
	maxRecordSize int
}

// NewRecordPool creates a RecordPool refusing requests larger than maxRecordSize bytes.
// A non-positive maxRecordSize means DefaultMaxRecordSize.
func NewRecordPool(maxRecordSize int) *RecordPool {
	if maxRecordSize <= 0 {
		maxRecordSize = DefaultMaxRecordSize
	}

	return &RecordPool{
		buffers:       NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold),
		maxRecordSize: maxRecordSize,
	}
}

// MaxRecordSize returns the largest request the pool accepts.
func (p *RecordPool) MaxRecordSize() int {
	return p.maxRecordSize
}

// Acquire returns a buffer of length size. Its contents are unspecified.
func (p *RecordPool) Acquire(size int) ([]byte, error) {
	if size < 0 || size > p.maxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes requested, limit %d", errs.ErrNoMem, size, p.maxRecordSize)
	}

	bb := p.buffers.Get()
	bb.Grow(size)
	bb.SetLength(size)

	return bb.B, nil
}

// Release returns buf to the pool. buf must not be used afterwards.
func (p *RecordPool) Release(buf []byte) {
	if buf == nil {
		return
	}

	p.buffers.Put(&ByteBuffer{B: buf[:0]})
}

var recordDefaultPool = NewRecordPool(DefaultMaxRecordSize)

// DefaultRecordPool returns the shared record pool.
func DefaultRecordPool() *RecordPool {
	return recordDefaultPool
}
