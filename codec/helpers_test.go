package codec

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/result"
	"github.com/stretchr/testify/require"
)

var allFormats = []format.RecordFormat{
	format.FormatResult,
	format.FormatHighResResult,
	format.FormatArchiveV2,
	format.FormatArchiveV3,
}

// testTimestamp has whole microseconds so it survives every record format.
var testTimestamp = result.Timestamp{Sec: 1_700_000_123, Nsec: 456_789_000}

// mixedResult covers insitu sets, block sets of every storage kind, empty
// sets and error codes.
func mixedResult() *result.Result {
	return result.New(testTimestamp,
		result.NewValueSet(result.PMID(60, 0, 1), format.ValInsitu,
			result.NewU32(result.InNull, 42)),
		result.NewErrorSet(result.PMID(60, 0, 2), -12),
		result.NewValueSet(result.PMID(60, 1, 3), format.ValDPtr,
			result.NewString(0, "sda"),
			result.NewString(1, "sdb1"),
			result.NewU64(2, 1<<40+3),
			result.NewDouble(3, 2.5),
		),
		result.NewValueSet(result.PMID(60, 1, 4), format.ValInsitu),
		result.NewValueSet(result.PMID(2, 3, 4), format.ValInsitu,
			result.NewInsitu(0, -1),
			result.NewInsitu(1, 0),
			result.NewInsitu(2, 1<<30),
		),
		result.NewValueSet(result.PMID(3, 0, 0), format.ValSPtr,
			result.NewBlock(7, format.TypeAggregate, []byte{1, 2, 3, 4, 5, 6, 7}),
			result.NewBlock(8, format.TypeAggregate, nil),
		),
	)
}

func stringResult(n int) *result.Result {
	return result.New(testTimestamp,
		result.NewValueSet(result.PMID(1, 0, 1), format.ValInsitu, result.NewU32(result.InNull, 7)),
		result.NewValueSet(result.PMID(1, 0, 2), format.ValDPtr,
			result.NewBlock(result.InNull, format.TypeString, []byte(strings.Repeat("x", n)))),
	)
}

// mustEncode encodes r and returns a private copy of the record.
func mustEncode(t testing.TB, rf format.RecordFormat, r *result.Result) []byte {
	t.Helper()

	enc, err := NewEncoder(rf)
	require.NoError(t, err)

	rec, err := enc.Encode(r)
	require.NoError(t, err)
	defer enc.Release(rec)

	return bytes.Clone(rec)
}

func mustDecoder(t testing.TB, rf format.RecordFormat) *Decoder {
	t.Helper()

	dec, err := NewDecoder(rf)
	require.NoError(t, err)

	return dec
}

func putWord(b []byte, off int, v int32) {
	binary.BigEndian.PutUint32(b[off:], uint32(v))
}

func word(b []byte, off int) int32 {
	return int32(binary.BigEndian.Uint32(b[off:]))
}

// fillingAllocator hands out buffers full of garbage to prove the encoder
// writes every byte.
type fillingAllocator struct {
	fill     byte
	acquired int
	released int
}

func (a *fillingAllocator) Acquire(size int) ([]byte, error) {
	a.acquired++

	return bytes.Repeat([]byte{a.fill}, size), nil
}

func (a *fillingAllocator) Release([]byte) {
	a.released++
}

type failingAllocator struct {
	err error
}

func (a failingAllocator) Acquire(int) ([]byte, error) {
	return nil, a.err
}

func (a failingAllocator) Release([]byte) {}
