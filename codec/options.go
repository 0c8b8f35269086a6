package codec

import (
	"errors"
	"fmt"

	"github.com/arloliu/pmwire/internal/options"
	"github.com/arloliu/pmwire/section"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

func applyEncoderOptions(e *Encoder, opts ...EncoderOption) error {
	return options.Apply(e, opts...)
}

func applyDecoderOptions(d *Decoder, opts ...DecoderOption) error {
	return options.Apply(d, opts...)
}

// WithAllocator sets the allocator record buffers are acquired from.
// The default is the shared record pool.
func WithAllocator(a Allocator) EncoderOption {
	return options.New(func(e *Encoder) error {
		if a == nil {
			return errors.New("allocator must not be nil")
		}
		e.allocator = a

		return nil
	})
}

// WithFrom sets the sender identity written into the third header word.
// ArchiveV3 records ignore it and repeat the record length instead.
func WithFrom(from int32) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.from = from
	})
}

// WithMaxRecordSize rejects records declaring a length above n bytes.
// The default is the largest length a record header can carry.
func WithMaxRecordSize(n int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if n < section.HeaderSize(d.format) {
			return fmt.Errorf("max record size %d is smaller than the %s header", n, d.format)
		}
		d.maxRecordSize = n

		return nil
	})
}
