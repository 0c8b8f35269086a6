package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/internal/pool"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// Allocator supplies and reclaims record buffers.
//
// Acquire returns a buffer of exactly size bytes with unspecified contents,
// or an error when no buffer can be provided. Errors are returned by
// Encoder.Encode unchanged.
type Allocator interface {
	Acquire(size int) ([]byte, error)
	Release(buf []byte)
}

// Encoder encodes metric results into records of one format.
type Encoder struct {
	format    format.RecordFormat
	allocator Allocator
	from      int32
}

// NewEncoder creates an Encoder for record format rf.
//
// An unknown rf is a programming error and panics.
//
// Parameters:
//   - rf: Target record format
//   - opts: WithAllocator, WithFrom
//
// Returns:
//   - *Encoder: Encoder ready for use
//   - error: Option validation error
func NewEncoder(rf format.RecordFormat, opts ...EncoderOption) (*Encoder, error) {
	section.HeaderSize(rf)

	e := &Encoder{
		format:    rf,
		allocator: pool.DefaultRecordPool(),
	}
	if err := applyEncoderOptions(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Format returns the record format the encoder produces.
func (e *Encoder) Format() format.RecordFormat {
	return e.format
}

// Encode encodes r into a record buffer obtained from the encoder's allocator.
//
// The returned slice has the record length; its capacity leaves at least one
// wire unit spare for a trailer. Hand it back with Release when done.
//
// Returns:
//   - []byte: The encoded record
//   - error: ErrInvalidResult when r is nil, breaks the value set invariants,
//     has a timestamp the format cannot carry or does not fit in a record, or
//     the allocator's error unchanged
func (e *Encoder) Encode(r *result.Result) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if e.format.HasNarrowTimestamp() && (r.Timestamp.Sec < math.MinInt32 || r.Timestamp.Sec > math.MaxInt32) {
		return nil, fmt.Errorf("%w: %d seconds do not fit a %s timestamp", errs.ErrInvalidResult, r.Timestamp.Sec, e.format)
	}
	if len(r.Sets) >= section.MaxNumPMID {
		return nil, fmt.Errorf("%w: %d value sets", errs.ErrInvalidResult, len(r.Sets))
	}

	fixed, variable := Size(e.format, r.Sets)
	need := fixed + variable
	if need > section.MaxRecordLen {
		return nil, fmt.Errorf("%w: record of %d bytes exceeds the record length limit", errs.ErrInvalidResult, need)
	}

	buf, err := e.allocator.Acquire(need + section.WireUnit)
	if err != nil {
		return nil, err
	}
	rec := buf[:need]

	hdr := section.RecordHeader{
		Format:  e.format,
		Len:     int32(need),
		Type:    e.format.PDUType(),
		From:    e.from,
		Sec:     r.Timestamp.Sec,
		Nsec:    int64(r.Timestamp.Nsec),
		NumPMID: int32(len(r.Sets)),
	}
	hdr.Put(rec)

	encodeValueSets(rec, section.HeaderSize(e.format), fixed, r.Sets)

	return rec, nil
}

// Release returns a record produced by Encode to the allocator.
func (e *Encoder) Release(rec []byte) {
	if rec == nil {
		return
	}

	e.allocator.Release(rec[:cap(rec)])
}
