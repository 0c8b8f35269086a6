package codec

import (
	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// encodeValueSets writes sets into rec starting at off. Value blocks are
// written from blockOff onwards. rec must have been sized with Size.
func encodeValueSets(rec []byte, off int, blockOff int, sets []result.ValueSet) {
	engine := endian.GetWireEngine()

	for i := range sets {
		vs := &sets[i]

		engine.PutUint32(rec[off:], vs.PMID)
		endian.PutInt32(engine, rec[off+4:], vs.NumVal)
		off += section.ValueSetHeaderSize
		if vs.NumVal <= 0 {
			continue
		}

		endian.PutInt32(engine, rec[off:], int32(vs.ValFmt))
		off += section.ValueFormatSize

		indirect := vs.ValFmt.IsIndirect()
		for j := range vs.Values {
			v := &vs.Values[j]
			endian.PutInt32(engine, rec[off:], v.Inst)
			if indirect {
				engine.PutUint32(rec[off+4:], uint32(blockOff/section.WireUnit))
				blockOff = putValueBlock(rec, blockOff, v.Block)
			} else {
				endian.PutInt32(engine, rec[off+4:], v.Lval)
			}
			off += section.ValueSlotSize
		}
	}
}

// putValueBlock writes vb at off, zero fills up to the next wire unit and
// returns the offset following the block.
func putValueBlock(rec []byte, off int, vb *result.ValueBlock) int {
	engine := endian.GetWireEngine()
	n := vb.Len()
	end := off + section.PadToWireUnit(n)

	endian.PutInt32(engine, rec[off:], int32(n))
	endian.PutInt32(engine, rec[off+4:], int32(vb.Type))
	copy(rec[off+result.ValueBlockHeaderSize:off+n], vb.Payload)
	clear(rec[off+n : end])

	return end
}
