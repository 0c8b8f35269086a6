// Package errs defines the errors returned by the record codec and the archive
// volume reader/writer.
//
// Decode failures caused by malformed or hostile input always wrap ErrIPC, so
// callers can classify them with errors.Is regardless of which check fired.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIPC reports input bytes that violate a structural rule of the record
	// format: bounds, counts, block lengths or region tiling.
	ErrIPC = errors.New("IPC protocol failure")

	// ErrNoMem reports that a record buffer could not be acquired.
	ErrNoMem = errors.New("insufficient memory for record buffer")

	// ErrInvalidResult reports a metric result that breaks the value set
	// invariants and therefore cannot be encoded.
	ErrInvalidResult = errors.New("invalid metric result")

	// ErrUnknownRecordFormat is carried by the panic raised when a caller
	// passes a record format the codec does not know.
	ErrUnknownRecordFormat = errors.New("unknown record format")
)

// Archive volume errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported volume version")
	ErrChecksumMismatch   = errors.New("volume checksum mismatch")
	ErrTrailerMismatch    = errors.New("record trailer does not match record length")
	ErrWriterClosed       = errors.New("archive writer is closed")
	ErrVolumeFull         = errors.New("archive volume payload limit reached")
	ErrSizeLimitExceeded  = errors.New("decompressed size exceeds limit")
)

// MetricError is the per-metric failure carried by a value set whose count
// field holds a negative error code instead of a number of values.
type MetricError struct {
	PMID uint32
	Code int32
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric %#x: error code %d", e.PMID, e.Code)
}
