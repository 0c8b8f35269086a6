package section

import (
	"fmt"

	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
)

// HeaderSize returns the fixed header size of rf.
//
// An unknown format is a mismatch between caller and codec, not bad input,
// so it panics.
func HeaderSize(rf format.RecordFormat) int {
	switch rf {
	case format.FormatResult, format.FormatArchiveV2:
		return ResultHeaderSize
	case format.FormatHighResResult:
		return HighResHeaderSize
	case format.FormatArchiveV3:
		return ArchiveV3HeaderSize
	default:
		panic(fmt.Sprintf("section: %v: %d", errs.ErrUnknownRecordFormat, rf))
	}
}

// RecordHeader is the decoded fixed header of a record.
type RecordHeader struct {
	Format format.RecordFormat

	Len  int32
	Type int32
	// From is the sender identity. ArchiveV3 records repeat Len here.
	From int32

	Sec int64
	// Nsec is always nanoseconds. Result and ArchiveV2 records only carry
	// microseconds, so Put truncates and Parse scales.
	Nsec int64

	NumPMID int32
}

// Put writes the header into the first HeaderSize(h.Format) bytes of b.
func (h *RecordHeader) Put(b []byte) {
	engine := endian.GetWireEngine()
	size := HeaderSize(h.Format)
	_ = b[size-1]

	endian.PutInt32(engine, b[0:4], h.Len)
	endian.PutInt32(engine, b[4:8], h.Type)

	switch h.Format {
	case format.FormatResult, format.FormatArchiveV2:
		endian.PutInt32(engine, b[8:12], h.From)
		endian.PutInt32(engine, b[12:16], int32(h.Sec))
		endian.PutInt32(engine, b[16:20], int32(h.Nsec/1000))
		endian.PutInt32(engine, b[20:24], h.NumPMID)
	case format.FormatHighResResult:
		endian.PutInt32(engine, b[8:12], h.From)
		endian.PutInt32(engine, b[12:16], h.NumPMID)
		endian.PutInt64(engine, b[16:24], h.Sec)
		endian.PutInt64(engine, b[24:32], h.Nsec)
	case format.FormatArchiveV3:
		endian.PutInt32(engine, b[8:12], h.Len)
		engine.PutUint32(b[12:16], uint32(uint64(h.Sec)>>32))
		engine.PutUint32(b[16:20], uint32(h.Sec))
		endian.PutInt32(engine, b[20:24], int32(h.Nsec))
		endian.PutInt32(engine, b[24:28], h.NumPMID)
	}
}

// Parse reads a header of layout rf from data.
//
// Returns:
//   - error: ErrIPC when data is shorter than the header
func (h *RecordHeader) Parse(data []byte, rf format.RecordFormat) error {
	size := HeaderSize(rf)
	if len(data) < size {
		return fmt.Errorf("%w: %d bytes is too short for a %s header (%d bytes)", errs.ErrIPC, len(data), rf, size)
	}

	engine := endian.GetWireEngine()

	h.Format = rf
	h.Len = endian.Int32(engine, data[0:4])
	h.Type = endian.Int32(engine, data[4:8])
	h.From = endian.Int32(engine, data[8:12])

	switch rf {
	case format.FormatResult, format.FormatArchiveV2:
		h.Sec = int64(endian.Int32(engine, data[12:16]))
		h.Nsec = int64(endian.Int32(engine, data[16:20])) * 1000
		h.NumPMID = endian.Int32(engine, data[20:24])
	case format.FormatHighResResult:
		h.NumPMID = endian.Int32(engine, data[12:16])
		h.Sec = endian.Int64(engine, data[16:24])
		h.Nsec = endian.Int64(engine, data[24:32])
	case format.FormatArchiveV3:
		h.Sec = int64(uint64(engine.Uint32(data[12:16]))<<32 | uint64(engine.Uint32(data[16:20])))
		h.Nsec = int64(endian.Int32(engine, data[20:24]))
		h.NumPMID = endian.Int32(engine, data[24:28])
	}

	return nil
}

// ParseRecordHeader parses a RecordHeader of layout rf from data.
func ParseRecordHeader(data []byte, rf format.RecordFormat) (RecordHeader, error) {
	var h RecordHeader
	if err := h.Parse(data, rf); err != nil {
		return RecordHeader{}, err
	}

	return h, nil
}
