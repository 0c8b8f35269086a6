// Package codec converts metric results to and from the wire result records
// and the archive data records.
//
// # Encoding
//
// An Encoder sizes a result for its record format, acquires a buffer from its
// Allocator, writes the fixed header and then the value-set list. Values
// stored in value blocks are copied into a trailing block region and their
// value slots hold the block offset in 4-byte wire units from the record
// start. Every byte of the record, padding included, is written, so encoding
// the same result twice yields identical records.
//
//	enc, _ := codec.NewEncoder(format.FormatResult)
//	rec, err := enc.Encode(res)
//	if err != nil {
//	    return err
//	}
//	defer enc.Release(rec)
//
// The buffer behind a record always has room for one more wire unit after
// the record, so archive writers can append a trailer word in place.
//
// # Decoding
//
// A Decoder treats its input as untrusted. It validates the whole record
// before allocating anything for the value sets, checks that the header,
// value-set list and value-block region tile the declared record length with
// no gap and no overlap, and then materializes the result into freshly
// allocated storage. A decoded result never references the input buffer, so
// the caller may reuse or release the buffer as soon as Decode returns.
//
// Every decode failure wraps errs.ErrIPC.
//
// # Thread Safety
//
// Encoder and Decoder hold only immutable configuration and are safe for
// concurrent use, provided the buffers passed to them are not mutated
// concurrently.
package codec
