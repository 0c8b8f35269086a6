package section

import "math"

const (
	// WireUnit is the record alignment unit and the granularity of value block offsets.
	WireUnit = 4

	ResultHeaderSize    = 24 // fixed header size of Result and ArchiveV2 records
	HighResHeaderSize   = 32 // fixed header size of HighResResult records
	ArchiveV3HeaderSize = 28 // fixed header size of ArchiveV3 records

	ValueSetHeaderSize = 8 // pmid + count
	ValueFormatSize    = 4 // valfmt, present only when count > 0
	ValueSlotSize      = 8 // inst + value-or-offset

	// MaxRecordLen is the largest length a record header can declare.
	MaxRecordLen = math.MaxInt32

	// MaxValues bounds the count of one value set so that the slot arithmetic
	// for it cannot overflow a 32-bit length.
	MaxValues = (MaxRecordLen - ValueSetHeaderSize - ValueFormatSize) / ValueSlotSize

	// MaxNumPMID bounds the number of value sets in one record.
	MaxNumPMID = (MaxRecordLen - HighResHeaderSize) / ValueSetHeaderSize
)

// PadToWireUnit rounds n up to the next multiple of WireUnit.
func PadToWireUnit(n int) int {
	return (n + WireUnit - 1) &^ (WireUnit - 1)
}
