package section

import (
	"fmt"

	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
)

const (
	VolumeMagic      = 0x504D5756 // "PMWV"
	VolumeVersion    = 1
	VolumeHeaderSize = 28
)

// VolumeHeader is the fixed header of an archive volume.
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|------------------------------------------
//	0-3    | Magic       | uint32 | "PMWV"
//	4-5    | Version     | uint16 |
//	6      | Format      | uint8  | record format of every record
//	7      | Compression | uint8  | payload compression
//	8-11   | RecordCount | uint32 |
//	12-15  | RawSize     | uint32 | payload size before compression
//	16-19  | PayloadSize | uint32 | payload size as stored
//	20-27  | Checksum    | uint64 | xxHash64 of the uncompressed payload
type VolumeHeader struct {
	Version     uint16
	Format      format.RecordFormat
	Compression format.CompressionType
	RecordCount uint32
	RawSize     uint32
	PayloadSize uint32
	Checksum    uint64
}

// NewVolumeHeader creates a header for a volume of rf records.
func NewVolumeHeader(rf format.RecordFormat, compression format.CompressionType) *VolumeHeader {
	return &VolumeHeader{
		Version:     VolumeVersion,
		Format:      rf,
		Compression: compression,
	}
}

// Bytes serializes the header.
func (h *VolumeHeader) Bytes() []byte {
	b := make([]byte, VolumeHeaderSize)
	engine := endian.GetWireEngine()

	engine.PutUint32(b[0:4], VolumeMagic)
	engine.PutUint16(b[4:6], h.Version)
	b[6] = byte(h.Format)
	b[7] = byte(h.Compression)
	engine.PutUint32(b[8:12], h.RecordCount)
	engine.PutUint32(b[12:16], h.RawSize)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint64(b[20:28], h.Checksum)

	return b
}

// Parse parses the header from data.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrUnsupportedVersion,
//     or ErrIPC for an unknown record format
func (h *VolumeHeader) Parse(data []byte) error {
	if len(data) < VolumeHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetWireEngine()
	if engine.Uint32(data[0:4]) != VolumeMagic {
		return errs.ErrInvalidMagicNumber
	}

	h.Version = engine.Uint16(data[4:6])
	if h.Version != VolumeVersion {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	h.Format = format.RecordFormat(data[6])
	if !h.Format.IsValid() {
		return fmt.Errorf("%w: volume record format %d", errs.ErrIPC, data[6])
	}

	h.Compression = format.CompressionType(data[7])
	h.RecordCount = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])

	return nil
}

// ParseVolumeHeader parses a VolumeHeader from data.
func ParseVolumeHeader(data []byte) (VolumeHeader, error) {
	var h VolumeHeader
	if err := h.Parse(data); err != nil {
		return VolumeHeader{}, err
	}

	return h, nil
}
