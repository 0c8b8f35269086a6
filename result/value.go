package result

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/arloliu/pmwire/format"
)

// InNull is the instance identifier of a value that belongs to a metric
// without an instance domain.
const InNull int32 = -1

// ValueBlockHeaderSize is the size of the length and type words that precede
// a value block payload on the wire.
const ValueBlockHeaderSize = 8

// ValueBlock is an out-of-line, type-tagged value.
//
// Payload bytes are opaque to the codec. The constructors in this package
// store numeric payloads big-endian.
type ValueBlock struct {
	Type    format.ValueType
	Payload []byte
}

// Len returns the block length as written in its header, header included.
func (b *ValueBlock) Len() int {
	return ValueBlockHeaderSize + len(b.Payload)
}

// Value is one instance of a metric. Exactly one of Lval and Block is
// meaningful, chosen by the owning ValueSet's ValFmt.
type Value struct {
	Inst  int32
	Lval  int32
	Block *ValueBlock
}

// NewInsitu creates an inline value.
func NewInsitu(inst int32, v int32) Value {
	return Value{Inst: inst, Lval: v}
}

// NewU32 creates an inline unsigned 32-bit value.
func NewU32(inst int32, v uint32) Value {
	return Value{Inst: inst, Lval: int32(v)}
}

// NewBlock creates a value stored in a value block. The payload is not copied.
func NewBlock(inst int32, typ format.ValueType, payload []byte) Value {
	return Value{Inst: inst, Block: &ValueBlock{Type: typ, Payload: payload}}
}

// NewString creates a NUL-terminated string value block.
func NewString(inst int32, s string) Value {
	payload := make([]byte, len(s)+1)
	copy(payload, s)

	return NewBlock(inst, format.TypeString, payload)
}

// NewU64 creates an unsigned 64-bit value block.
func NewU64(inst int32, v uint64) Value {
	return NewBlock(inst, format.TypeU64, binary.BigEndian.AppendUint64(nil, v))
}

// NewDouble creates a double precision value block.
func NewDouble(inst int32, v float64) Value {
	return NewBlock(inst, format.TypeDouble, binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
}

// IsIndirect reports whether the value is stored in a value block.
func (v Value) IsIndirect() bool {
	return v.Block != nil
}

// U32 returns the inline value as an unsigned 32-bit integer.
func (v Value) U32() uint32 {
	return uint32(v.Lval)
}

// String returns a string block payload without its NUL terminator.
func (v Value) String() string {
	if v.Block == nil {
		return ""
	}

	return string(bytes.TrimSuffix(v.Block.Payload, []byte{0}))
}

// U64 returns an 8-byte block payload as an unsigned integer, or 0 when the
// payload has another size.
func (v Value) U64() uint64 {
	if v.Block == nil || len(v.Block.Payload) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v.Block.Payload)
}

// Double returns an 8-byte block payload as a float64.
func (v Value) Double() float64 {
	return math.Float64frombits(v.U64())
}

func (v Value) equal(o Value, indirect bool) bool {
	if v.Inst != o.Inst {
		return false
	}
	if !indirect {
		return v.Lval == o.Lval
	}
	if v.Block == nil || o.Block == nil {
		return v.Block == o.Block
	}

	return v.Block.Type == o.Block.Type && bytes.Equal(v.Block.Payload, o.Block.Payload)
}
