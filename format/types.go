package format

type (
	RecordFormat    uint8
	ValueFormat     int32
	ValueType       int32
	CompressionType uint8
)

const (
	FormatResult        RecordFormat = 0x1 // FormatResult is the wire result record (sec/usec timestamp).
	FormatHighResResult RecordFormat = 0x2 // FormatHighResResult is the wire high-resolution result record.
	FormatArchiveV2     RecordFormat = 0x3 // FormatArchiveV2 is the legacy archive data record, laid out like FormatResult.
	FormatArchiveV3     RecordFormat = 0x4 // FormatArchiveV3 is the compact archive data record.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// PDU type codes carried in the second header word of wire records.
const (
	PDUResult        int32 = 0x7001
	PDUHighResResult int32 = 0x7015
)

// Value storage formats. Anything other than ValInsitu refers to a value block.
const (
	ValInsitu ValueFormat = 0 // value stored inline in the value slot
	ValDPtr   ValueFormat = 1 // value block, dynamically allocated by the producer
	ValSPtr   ValueFormat = 2 // value block, statically allocated by the producer
)

// Value type tags stored in value block headers.
const (
	Type32              ValueType = 0
	TypeU32             ValueType = 1
	Type64              ValueType = 2
	TypeU64             ValueType = 3
	TypeFloat           ValueType = 4
	TypeDouble          ValueType = 5
	TypeString          ValueType = 6
	TypeAggregate       ValueType = 7
	TypeAggregateStatic ValueType = 8
	TypeEvent           ValueType = 9
	TypeHighResEvent    ValueType = 10
	TypeUnknown         ValueType = 255
)

func (r RecordFormat) String() string {
	switch r {
	case FormatResult:
		return "Result"
	case FormatHighResResult:
		return "HighResResult"
	case FormatArchiveV2:
		return "ArchiveV2"
	case FormatArchiveV3:
		return "ArchiveV3"
	default:
		return "Unknown"
	}
}

// IsValid reports whether r names one of the known record layouts.
func (r RecordFormat) IsValid() bool {
	return r >= FormatResult && r <= FormatArchiveV3
}

// IsWire reports whether r is a transport record whose type word is checked on decode.
func (r RecordFormat) IsWire() bool {
	return r == FormatResult || r == FormatHighResResult
}

// HasNarrowTimestamp reports whether r stores seconds as a 32-bit word and
// sub-second time as microseconds.
func (r RecordFormat) HasNarrowTimestamp() bool {
	return r == FormatResult || r == FormatArchiveV2
}

// PDUType returns the type word written for r.
func (r RecordFormat) PDUType() int32 {
	if r == FormatHighResResult {
		return PDUHighResResult
	}

	return PDUResult
}

func (v ValueFormat) String() string {
	switch v {
	case ValInsitu:
		return "Insitu"
	case ValDPtr:
		return "DPtr"
	case ValSPtr:
		return "SPtr"
	default:
		return "Unknown"
	}
}

// IsValid reports whether v is a known value storage format.
func (v ValueFormat) IsValid() bool {
	return v == ValInsitu || v == ValDPtr || v == ValSPtr
}

// IsIndirect reports whether values in this format live in value blocks.
func (v ValueFormat) IsIndirect() bool {
	return v == ValDPtr || v == ValSPtr
}

func (t ValueType) String() string {
	switch t {
	case Type32:
		return "32"
	case TypeU32:
		return "U32"
	case Type64:
		return "64"
	case TypeU64:
		return "U64"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeAggregate:
		return "Aggregate"
	case TypeAggregateStatic:
		return "AggregateStatic"
	case TypeEvent:
		return "Event"
	case TypeHighResEvent:
		return "HighResEvent"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the defined compression types.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
