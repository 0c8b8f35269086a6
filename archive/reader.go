package archive

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/pmwire/codec"
	"github.com/arloliu/pmwire/compress"
	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/internal/hash"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// Reader replays the records of one archive volume in the order they were appended.
type Reader struct {
	header  section.VolumeHeader
	payload []byte
	decoder *codec.Decoder
	logger  logrus.FieldLogger
	offset  int
	index   uint32
	err     error
}

// NewReader opens the volume held in data.
//
// The header is validated, the payload decompressed and its checksum verified
// before any record is decoded.
//
// Parameters:
//   - data: A complete volume; bytes after the payload are ignored
//   - opts: WithMaxRecordSize, WithLogger
//
// Returns:
//   - *Reader: Reader positioned at the first record
//   - error: A volume header error, ErrIPC for inconsistent sizes, or
//     ErrChecksumMismatch
func NewReader(data []byte, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	hdr, err := section.ParseVolumeHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.Format.IsWire() {
		return nil, fmt.Errorf("%w: volume declares wire record format %s", errs.ErrIPC, hdr.Format)
	}

	stored := data[section.VolumeHeaderSize:]
	if uint64(hdr.PayloadSize) > uint64(len(stored)) {
		return nil, fmt.Errorf("%w: payload size %d exceeds the %d bytes available", errs.ErrIPC, hdr.PayloadSize, len(stored))
	}

	decompressor, err := compress.GetCodec(hdr.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIPC, err)
	}
	payload, err := decompressor.DecompressLimit(stored[:hdr.PayloadSize], int(hdr.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIPC, err)
	}
	if uint64(len(payload)) != uint64(hdr.RawSize) {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, header declares %d", errs.ErrIPC, len(payload), hdr.RawSize)
	}
	if sum := hash.Checksum(payload); sum != hdr.Checksum {
		return nil, fmt.Errorf("%w: got %#x, header declares %#x", errs.ErrChecksumMismatch, sum, hdr.Checksum)
	}

	decoder, err := codec.NewDecoder(hdr.Format, codec.WithMaxRecordSize(max(cfg.maxRecordSize, section.HeaderSize(hdr.Format))))
	if err != nil {
		return nil, err
	}

	cfg.logger.WithFields(logrus.Fields{
		"format":       hdr.Format.String(),
		"records":      hdr.RecordCount,
		"raw_size":     hdr.RawSize,
		"payload_size": hdr.PayloadSize,
		"compression":  hdr.Compression.String(),
	}).Debug("archive volume opened")

	return &Reader{
		header:  hdr,
		payload: payload,
		decoder: decoder,
		logger:  cfg.logger,
	}, nil
}

// Header returns the volume header.
func (r *Reader) Header() section.VolumeHeader {
	return r.header
}

// Next decodes the next record.
//
// Returns:
//   - *result.Result: The decoded result, owning all of its storage
//   - error: io.EOF after the last record, ErrTrailerMismatch for a damaged
//     frame, or the record decode error wrapped with its position. Errors are
//     sticky: once Next fails it keeps returning the same error.
func (r *Reader) Next() (*result.Result, error) {
	if r.err != nil {
		return nil, r.err
	}

	res, frameLen, err := r.readFrame()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			err = fmt.Errorf("record %d at offset %d: %w", r.index, r.offset, err)
			r.logger.WithFields(logrus.Fields{
				"record": r.index,
				"offset": r.offset,
			}).WithError(err).Debug("archive record rejected")
		}
		r.err = err

		return nil, err
	}

	r.offset += frameLen
	r.index++

	return res, nil
}

func (r *Reader) readFrame() (*result.Result, int, error) {
	rest := r.payload[r.offset:]
	if len(rest) == 0 {
		if r.index != r.header.RecordCount {
			return nil, 0, fmt.Errorf("%w: volume holds %d records, header declares %d", errs.ErrIPC, r.index, r.header.RecordCount)
		}

		return nil, 0, io.EOF
	}
	if r.index == r.header.RecordCount {
		return nil, 0, fmt.Errorf("%w: %d bytes after the last declared record", errs.ErrIPC, len(rest))
	}
	if len(rest) < section.WireUnit {
		return nil, 0, fmt.Errorf("%w: truncated frame of %d bytes", errs.ErrIPC, len(rest))
	}

	engine := endian.GetWireEngine()
	recLen := int(endian.Int32(engine, rest))
	if recLen < section.WireUnit || recLen > len(rest)-section.WireUnit {
		return nil, 0, fmt.Errorf("%w: record length %d outside the %d byte frame region", errs.ErrIPC, recLen, len(rest))
	}
	if trailer := int(endian.Int32(engine, rest[recLen:])); trailer != recLen {
		return nil, 0, fmt.Errorf("%w: trailer %d, record length %d", errs.ErrTrailerMismatch, trailer, recLen)
	}

	res, err := r.decoder.Decode(rest[:recLen])
	if err != nil {
		return nil, 0, err
	}

	return res, recLen + section.WireUnit, nil
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error, which is yielded with a nil result. io.EOF is not yielded.
func (r *Reader) All() iter.Seq2[*result.Result, error] {
	return func(yield func(*result.Result, error) bool) {
		for {
			res, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(res, err) || err != nil {
				return
			}
		}
	}
}
