package codec

import (
	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// Size returns the bytes needed to encode sets in record format rf: the fixed
// region (header and value-set list) and the variable region (padded value
// blocks).
//
// An unknown rf panics.
func Size(rf format.RecordFormat, sets []result.ValueSet) (fixed, variable int) {
	fixed = section.HeaderSize(rf)

	for i := range sets {
		vs := &sets[i]
		fixed += section.ValueSetHeaderSize
		if vs.NumVal <= 0 {
			continue
		}

		fixed += section.ValueFormatSize + int(vs.NumVal)*section.ValueSlotSize
		if !vs.ValFmt.IsIndirect() {
			continue
		}

		for j := range vs.Values {
			if b := vs.Values[j].Block; b != nil {
				variable += section.PadToWireUnit(b.Len())
			}
		}
	}

	return fixed, variable
}
