// Package pmwire encodes metric results into the binary records exchanged
// between metric collectors and clients, and stored in metric archives.
//
// A result is a timestamp and an ordered list of value sets, one per metric
// (PMID). Each value set carries either a list of instance/value pairs or a
// negative per-metric error code. Values are stored inline as 32-bit words or
// as typed value blocks referenced by offset.
//
// # Record formats
//
//   - format.FormatResult: wire result record, microsecond timestamps
//   - format.FormatHighResResult: wire result record, nanosecond timestamps
//   - format.FormatArchiveV2: legacy archive data record
//   - format.FormatArchiveV3: compact archive data record, nanosecond timestamps
//
// # Basic Usage
//
//	r := result.New(result.FromTime(time.Now()),
//	    result.NewValueSet(pmwire.PMID(60, 0, 4), format.ValInsitu,
//	        result.NewU32(0, 1234),
//	    ),
//	    result.NewValueSet(pmwire.PMID(60, 1, 1), format.ValDPtr,
//	        result.NewString(0, "sda"),
//	    ),
//	)
//
//	rec, err := pmwire.EncodeResult(r, format.FormatHighResResult)
//	if err != nil {
//	    return err
//	}
//	decoded, err := pmwire.DecodeResult(rec, format.FormatHighResResult)
//
// Decoded results never reference the input buffer. Malformed input of any
// kind fails with an error wrapping errs.ErrIPC.
//
// # Package Structure
//
// This package wraps the codec and archive packages for the common cases. Use
// codec.Encoder directly to reuse pooled record buffers, and the archive
// package for compressed volumes of archive records.
package pmwire

import (
	"bytes"
	"io"

	"github.com/arloliu/pmwire/archive"
	"github.com/arloliu/pmwire/codec"
	"github.com/arloliu/pmwire/format"
	"github.com/arloliu/pmwire/result"
)

// PMID packs a metric identifier from its domain, cluster and item numbers.
func PMID(domain, cluster, item uint32) uint32 {
	return result.PMID(domain, cluster, item)
}

// NewEncoder creates a reusable encoder for record format rf. Records come from
// a shared buffer pool and go back to it with Release.
//
// An unknown rf panics.
//
// Example:
//
//	enc, _ := pmwire.NewEncoder(format.FormatHighResResult, codec.WithFrom(pid))
//	rec, err := enc.Encode(r)
//	if err != nil {
//	    return err
//	}
//	defer enc.Release(rec)
//	conn.Write(rec)
func NewEncoder(rf format.RecordFormat, opts ...codec.EncoderOption) (*codec.Encoder, error) {
	return codec.NewEncoder(rf, opts...)
}

// NewDecoder creates a reusable decoder for records of format rf.
//
// An unknown rf panics.
//
// Example:
//
//	dec, _ := pmwire.NewDecoder(format.FormatHighResResult, codec.WithMaxRecordSize(1<<20))
//	r, err := dec.Decode(pdu)
//	if errors.Is(err, errs.ErrIPC) {
//	    // malformed or hostile record
//	}
func NewDecoder(rf format.RecordFormat, opts ...codec.DecoderOption) (*codec.Decoder, error) {
	return codec.NewDecoder(rf, opts...)
}

// EncodeResult encodes r as a record of format rf. The returned slice is owned
// by the caller.
func EncodeResult(r *result.Result, rf format.RecordFormat) ([]byte, error) {
	enc, err := codec.NewEncoder(rf)
	if err != nil {
		return nil, err
	}

	rec, err := enc.Encode(r)
	if err != nil {
		return nil, err
	}
	defer enc.Release(rec)

	return bytes.Clone(rec), nil
}

// DecodeResult decodes the record of format rf at the start of buf.
func DecodeResult(buf []byte, rf format.RecordFormat) (*result.Result, error) {
	dec, err := codec.NewDecoder(rf)
	if err != nil {
		return nil, err
	}

	return dec.Decode(buf)
}

// NewArchiveWriter creates a writer of one archive volume on w. The volume is
// written when the writer is closed.
//
// Example:
//
//	aw, _ := pmwire.NewArchiveWriter(file, archive.WithCompression(format.CompressionZstd))
//	for _, r := range results {
//	    if err := aw.Append(r); err != nil {
//	        return err
//	    }
//	}
//	return aw.Close()
func NewArchiveWriter(w io.Writer, opts ...archive.Option) (*archive.Writer, error) {
	return archive.NewWriter(w, opts...)
}

// NewArchiveReader opens the archive volume held in data, verifying its header
// and checksum.
//
// Example:
//
//	ar, err := pmwire.NewArchiveReader(data)
//	if err != nil {
//	    return err
//	}
//	for r, err := range ar.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(r.Timestamp.Time(), r.NumPMID())
//	}
func NewArchiveReader(data []byte, opts ...archive.Option) (*archive.Reader, error) {
	return archive.NewReader(data, opts...)
}
