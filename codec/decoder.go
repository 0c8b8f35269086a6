package codec

import (
	"fmt"

	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// Decoder decodes records of one format into metric results.
type Decoder struct {
	format        format.RecordFormat
	maxRecordSize int
}

// NewDecoder creates a Decoder for records framed as rf: a wire result, a
// wire high-resolution result, a legacy archive record or a compact archive
// record.
//
// An unknown rf is a programming error and panics.
func NewDecoder(rf format.RecordFormat, opts ...DecoderOption) (*Decoder, error) {
	section.HeaderSize(rf)

	d := &Decoder{
		format:        rf,
		maxRecordSize: section.MaxRecordLen,
	}
	if err := applyDecoderOptions(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Format returns the record format the decoder expects.
func (d *Decoder) Format() format.RecordFormat {
	return d.format
}

// Decode decodes the record at the start of buf. Bytes after the declared
// record length are ignored.
//
// The returned result owns all of its storage; buf may be reused as soon as
// Decode returns.
//
// Returns:
//   - *result.Result: The decoded result
//   - error: ErrIPC wrapped with a description of the first violated check
func (d *Decoder) Decode(buf []byte) (*result.Result, error) {
	hdr, err := section.ParseRecordHeader(buf, d.format)
	if err != nil {
		return nil, err
	}

	headerSize := section.HeaderSize(d.format)
	recLen := int(hdr.Len)
	if recLen < headerSize || recLen > len(buf) {
		return nil, fmt.Errorf("%w: declared record length %d outside [%d, %d]", errs.ErrIPC, recLen, headerSize, len(buf))
	}
	if recLen > d.maxRecordSize {
		return nil, fmt.Errorf("%w: declared record length %d exceeds limit %d", errs.ErrIPC, recLen, d.maxRecordSize)
	}
	if d.format.IsWire() && hdr.Type != d.format.PDUType() {
		return nil, fmt.Errorf("%w: record type %#x is not %#x", errs.ErrIPC, hdr.Type, d.format.PDUType())
	}

	numpmid := int(hdr.NumPMID)
	if numpmid < 0 || numpmid >= recLen {
		return nil, fmt.Errorf("%w: numpmid %d invalid for record length %d", errs.ErrIPC, numpmid, recLen)
	}
	if numpmid >= section.MaxNumPMID {
		return nil, fmt.Errorf("%w: numpmid %d exceeds limit %d", errs.ErrIPC, numpmid, section.MaxNumPMID)
	}

	res := &result.Result{
		Timestamp: result.Timestamp{Sec: hdr.Sec, Nsec: int32(hdr.Nsec)},
		Sets:      make([]result.ValueSet, numpmid),
	}
	if err := decodeValueSets(buf[:recLen], headerSize, res.Sets); err != nil {
		return nil, err
	}

	return res, nil
}
