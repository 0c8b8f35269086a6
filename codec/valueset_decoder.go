package codec

import (
	"fmt"

	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// valueSetLayout is what the validation pass learns about a value-set list.
type valueSetLayout struct {
	listEnd    int // offset just past the last value slot
	numValues  int
	numBlocks  int
	blockBytes int // sum of padded value block sizes
	lowest     int // lowest value block offset, or the record end without blocks
}

// decodeValueSets fills sets from the value-set list of rec starting at
// listOff. rec must be exactly the declared record length.
//
// Nothing is allocated until the whole list has been validated and the
// header, list and block regions are known to tile rec exactly. The decoded
// values and blocks live in storage owned by the result.
func decodeValueSets(rec []byte, listOff int, sets []result.ValueSet) error {
	layout, err := measureValueSets(rec, listOff, len(sets))
	if err != nil {
		return err
	}
	if err := checkTiling(len(rec), listOff, layout); err != nil {
		return err
	}

	materializeValueSets(rec, listOff, layout, sets)

	return nil
}

// measureValueSets walks numpmid value sets, bounds-checking every field and
// every referenced value block.
func measureValueSets(rec []byte, off int, numpmid int) (valueSetLayout, error) {
	engine := endian.GetWireEngine()
	end := len(rec)
	layout := valueSetLayout{lowest: end}

	for i := range numpmid {
		if off+section.ValueSetHeaderSize > end {
			return layout, fmt.Errorf("%w: value set %d at offset %d runs past record end %d", errs.ErrIPC, i, off, end)
		}

		numval := endian.Int32(engine, rec[off+4:])
		off += section.ValueSetHeaderSize
		if numval <= 0 {
			// zero values, or a per-metric error code
			continue
		}

		if off+section.ValueFormatSize > end {
			return layout, fmt.Errorf("%w: value set %d format at offset %d runs past record end %d", errs.ErrIPC, i, off, end)
		}
		valfmt := format.ValueFormat(endian.Int32(engine, rec[off:]))
		if !valfmt.IsValid() {
			return layout, fmt.Errorf("%w: value set %d has unknown value format %d", errs.ErrIPC, i, valfmt)
		}
		off += section.ValueFormatSize

		if int(numval) > end || numval > section.MaxValues {
			return layout, fmt.Errorf("%w: value set %d count %d exceeds record length %d", errs.ErrIPC, i, numval, end)
		}

		for j := range int(numval) {
			if off+section.ValueSlotSize > end {
				return layout, fmt.Errorf("%w: value set %d value %d at offset %d runs past record end %d", errs.ErrIPC, i, j, off, end)
			}

			if valfmt.IsIndirect() {
				blockOff, padded, err := checkValueBlock(rec, engine.Uint32(rec[off+4:]))
				if err != nil {
					return layout, fmt.Errorf("value set %d value %d: %w", i, j, err)
				}

				layout.numBlocks++
				layout.blockBytes += padded
				layout.lowest = min(layout.lowest, blockOff)
			}
			off += section.ValueSlotSize
		}

		layout.numValues += int(numval)
	}

	layout.listEnd = off

	return layout, nil
}

// checkValueBlock validates the value block referenced by a value slot
// holding offset (in wire units) and returns its byte offset and padded size.
func checkValueBlock(rec []byte, offset uint32) (int, int, error) {
	end := uint64(len(rec))
	start := uint64(offset) * section.WireUnit
	if start+result.ValueBlockHeaderSize > end {
		return 0, 0, fmt.Errorf("%w: value block offset %d outside record of %d bytes", errs.ErrIPC, start, end)
	}

	blockOff := int(start)
	blen := int(endian.Int32(endian.GetWireEngine(), rec[blockOff:]))
	if blen < result.ValueBlockHeaderSize || blen > len(rec) {
		return 0, 0, fmt.Errorf("%w: value block at %d has length %d", errs.ErrIPC, blockOff, blen)
	}

	padded := section.PadToWireUnit(blen)
	if blockOff+padded > len(rec) {
		return 0, 0, fmt.Errorf("%w: value block at %d of length %d runs past record end %d", errs.ErrIPC, blockOff, blen, len(rec))
	}

	return blockOff, padded, nil
}

// checkTiling verifies that the bytes preceding the list, the list itself and
// the value blocks exactly partition a record of recLen bytes.
func checkTiling(recLen int, preceding int, layout valueSetLayout) error {
	listBytes := layout.listEnd - preceding

	if preceding+listBytes != recLen-(recLen-layout.lowest) {
		return fmt.Errorf("%w: value-set list ends at %d but value blocks start at %d", errs.ErrIPC, layout.listEnd, layout.lowest)
	}
	if preceding+listBytes+layout.blockBytes != recLen {
		return fmt.Errorf("%w: header, value-set list and value blocks cover %d bytes of a %d byte record",
			errs.ErrIPC, preceding+listBytes+layout.blockBytes, recLen)
	}

	return nil
}

// materializeValueSets decodes an already validated list into sets. The block
// region is copied once into a new buffer and every decoded block refers into
// that copy.
func materializeValueSets(rec []byte, off int, layout valueSetLayout, sets []result.ValueSet) {
	engine := endian.GetWireEngine()

	store := make([]byte, len(rec)-layout.lowest)
	copy(store, rec[layout.lowest:])
	values := make([]result.Value, layout.numValues)
	blocks := make([]result.ValueBlock, layout.numBlocks)

	for i := range sets {
		vs := &sets[i]
		vs.PMID = engine.Uint32(rec[off:])
		vs.NumVal = endian.Int32(engine, rec[off+4:])
		off += section.ValueSetHeaderSize
		if vs.NumVal <= 0 {
			continue
		}

		vs.ValFmt = format.ValueFormat(endian.Int32(engine, rec[off:]))
		off += section.ValueFormatSize

		n := int(vs.NumVal)
		vs.Values, values = values[:n:n], values[n:]

		indirect := vs.ValFmt.IsIndirect()
		for j := range vs.Values {
			v := &vs.Values[j]
			v.Inst = endian.Int32(engine, rec[off:])
			if indirect {
				rel := int(uint64(engine.Uint32(rec[off+4:]))*section.WireUnit) - layout.lowest
				blen := int(endian.Int32(engine, store[rel:]))

				b := &blocks[0]
				blocks = blocks[1:]
				b.Type = format.ValueType(endian.Int32(engine, store[rel+4:]))
				b.Payload = store[rel+result.ValueBlockHeaderSize : rel+blen : rel+blen]
				v.Block = b
			} else {
				v.Lval = endian.Int32(engine, rec[off+4:])
			}
			off += section.ValueSlotSize
		}
	}
}
