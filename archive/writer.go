package archive

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/pmwire/codec"
	"github.com/arloliu/pmwire/compress"
	"github.com/arloliu/pmwire/endian"
	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/internal/hash"
	"github.com/arloliu/pmwire/internal/pool"
	"github.com/arloliu/pmwire/result"
	"github.com/arloliu/pmwire/section"
)

// Writer appends metric results to a single archive volume.
//
// Frames are buffered in memory until Close, which compresses the payload and
// writes the volume to the underlying io.Writer in one go.
type Writer struct {
	dst        io.Writer
	cfg        *config
	encoder    *codec.Encoder
	compressor compress.Compressor
	buf        *pool.ByteBuffer
	digest     hash.Digest
	count      uint32
	closed     bool
}

// NewWriter creates a Writer producing one volume on dst.
//
// Parameters:
//   - dst: Destination of the finished volume
//   - opts: WithRecordFormat, WithCompression, WithLogger
//
// Returns:
//   - *Writer: Writer ready for Append
//   - error: Option validation error
func NewWriter(dst io.Writer, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	compressor, err := compress.CreateCodec(cfg.compression, "volume")
	if err != nil {
		return nil, err
	}

	encoder, err := codec.NewEncoder(cfg.format)
	if err != nil {
		return nil, err
	}

	return &Writer{
		dst:        dst,
		cfg:        cfg,
		encoder:    encoder,
		compressor: compressor,
		buf:        pool.GetVolumeBuffer(),
		digest:     hash.NewDigest(),
	}, nil
}

// RecordCount returns the number of records appended so far.
func (w *Writer) RecordCount() int {
	return int(w.count)
}

// Append encodes r and adds it to the volume.
//
// Returns:
//   - error: ErrWriterClosed after Close, ErrInvalidResult for a result that
//     cannot be encoded, ErrVolumeFull once the payload would exceed 4GiB
func (w *Writer) Append(r *result.Result) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	rec, err := w.encoder.Encode(r)
	if err != nil {
		return err
	}
	defer w.encoder.Release(rec)

	recLen := len(rec)
	frameLen := recLen + section.WireUnit
	if uint64(w.buf.Len())+uint64(frameLen) > math.MaxUint32 {
		return fmt.Errorf("%w: %d records, %d bytes", errs.ErrVolumeFull, w.count, w.buf.Len())
	}

	// The encoder always leaves one spare wire unit for the trailer.
	endian.PutInt32(endian.GetWireEngine(), rec[recLen:frameLen], int32(recLen))

	start := w.buf.Len()
	w.buf.ExtendOrGrow(frameLen)
	frame := w.buf.Slice(start, start+frameLen)
	copy(frame, rec[:frameLen])
	w.digest.Write(frame)
	w.count++

	return nil
}

// Close compresses the buffered payload and writes the volume with a single
// Write call on the destination. The Writer
// cannot be used afterwards; a second Close returns ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	w.closed = true

	buf := w.buf
	w.buf = nil
	defer pool.PutVolumeBuffer(buf)

	raw := buf.Bytes()
	payload, err := w.compressor.Compress(raw)
	if err != nil {
		return fmt.Errorf("failed to compress volume payload: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: compressed payload of %d bytes", errs.ErrVolumeFull, len(payload))
	}

	hdr := section.NewVolumeHeader(w.cfg.format, w.cfg.compression)
	hdr.RecordCount = w.count
	hdr.RawSize = uint32(len(raw))
	hdr.PayloadSize = uint32(len(payload))
	hdr.Checksum = w.digest.Sum64()

	out := pool.GetVolumeBuffer()
	defer pool.PutVolumeBuffer(out)
	out.MustWrite(hdr.Bytes())
	out.MustWrite(payload)
	if _, err := out.WriteTo(w.dst); err != nil {
		return fmt.Errorf("failed to write volume: %w", err)
	}

	stats := compress.CompressionStats{
		Algorithm:      w.cfg.compression,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(payload)),
	}
	w.cfg.logger.WithFields(logrus.Fields{
		"format":        w.cfg.format.String(),
		"records":       w.count,
		"raw_size":      stats.OriginalSize,
		"payload_size":  stats.CompressedSize,
		"compression":   stats.Algorithm.String(),
		"space_savings": stats.SpaceSavings(),
	}).Debug("archive volume written")

	return nil
}
