package result

import (
	"fmt"

	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
)

// ValueSet holds the values of one metric.
type ValueSet struct {
	PMID uint32
	// NumVal is the number of values, or a negative per-metric error code.
	NumVal int32
	// ValFmt is only meaningful when NumVal > 0.
	ValFmt format.ValueFormat
	Values []Value
}

// NewValueSet creates a value set holding values in the given storage format.
func NewValueSet(pmid uint32, valfmt format.ValueFormat, values ...Value) ValueSet {
	return ValueSet{
		PMID:   pmid,
		NumVal: int32(len(values)),
		ValFmt: valfmt,
		Values: values,
	}
}

// NewErrorSet creates a value set whose count carries a negative error code.
func NewErrorSet(pmid uint32, code int32) ValueSet {
	return ValueSet{PMID: pmid, NumVal: code}
}

// Err returns the per-metric error when NumVal holds an error code, nil otherwise.
func (vs *ValueSet) Err() error {
	if vs.NumVal >= 0 {
		return nil
	}

	return &errs.MetricError{PMID: vs.PMID, Code: vs.NumVal}
}

// Validate checks the value set invariants the encoder relies on.
func (vs *ValueSet) Validate() error {
	if vs.NumVal <= 0 {
		if len(vs.Values) != 0 {
			return fmt.Errorf("%w: metric %#x: count %d with %d values", errs.ErrInvalidResult, vs.PMID, vs.NumVal, len(vs.Values))
		}

		return nil
	}

	if int(vs.NumVal) != len(vs.Values) {
		return fmt.Errorf("%w: metric %#x: count %d but %d values", errs.ErrInvalidResult, vs.PMID, vs.NumVal, len(vs.Values))
	}
	if !vs.ValFmt.IsValid() {
		return fmt.Errorf("%w: metric %#x: unknown value format %d", errs.ErrInvalidResult, vs.PMID, vs.ValFmt)
	}

	indirect := vs.ValFmt.IsIndirect()
	for i := range vs.Values {
		if vs.Values[i].IsIndirect() != indirect {
			return fmt.Errorf("%w: metric %#x: value %d storage does not match format %s",
				errs.ErrInvalidResult, vs.PMID, i, vs.ValFmt)
		}
	}

	return nil
}

// Result is a timestamped, ordered collection of value sets.
type Result struct {
	Timestamp Timestamp
	Sets      []ValueSet
}

// New creates a result from value sets. The sets are not copied.
func New(ts Timestamp, sets ...ValueSet) *Result {
	return &Result{Timestamp: ts, Sets: sets}
}

// NumPMID returns the number of value sets.
func (r *Result) NumPMID() int {
	return len(r.Sets)
}

// Validate checks the timestamp and every value set. A nil result is invalid.
func (r *Result) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil result", errs.ErrInvalidResult)
	}
	if err := r.Timestamp.Validate(); err != nil {
		return err
	}

	for i := range r.Sets {
		if err := r.Sets[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Equal reports whether r and o hold the same timestamp and value sets in
// the same order. ValFmt is ignored for sets without values.
func (r *Result) Equal(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Timestamp != o.Timestamp || len(r.Sets) != len(o.Sets) {
		return false
	}

	for i := range r.Sets {
		a, b := &r.Sets[i], &o.Sets[i]
		if a.PMID != b.PMID || a.NumVal != b.NumVal || len(a.Values) != len(b.Values) {
			return false
		}
		if a.NumVal <= 0 {
			continue
		}
		if a.ValFmt != b.ValFmt {
			return false
		}

		indirect := a.ValFmt.IsIndirect()
		for j := range a.Values {
			if !a.Values[j].equal(b.Values[j], indirect) {
				return false
			}
		}
	}

	return true
}
