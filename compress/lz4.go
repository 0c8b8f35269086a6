package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	// maxLZ4BlockSize bounds Decompress output.
	maxLZ4BlockSize = 128 * 1024 * 1024
	lz4MaxExpansion = 255
)

// LZ4Compressor compresses volumes as a single raw LZ4 block.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Returns nil for an empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block of at most 128MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, maxLZ4BlockSize)
}

// DecompressLimit decompresses an LZ4 block of at most limit bytes.
//
// A raw block does not record its original size, so the output buffer starts at
// four times the input and doubles on ErrInvalidSourceShortBuffer until it
// reaches the limit.
func (c LZ4Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	// Each input byte expands to at most 255 output bytes.
	ceiling := min(limit, len(data)*lz4MaxExpansion)
	bufSize := min(len(data)*4, ceiling)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if bufSize >= ceiling {
			if ceiling == limit {
				return nil, fmt.Errorf("%w: %w", sizeLimitError(limit), err)
			}

			return nil, err
		}
		bufSize = min(bufSize*2, ceiling)
	}
}
