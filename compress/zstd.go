package compress

// ZstdCompressor provides Zstandard compression of archive volumes.
//
// It favours ratio over speed, which suits archives that are written once and
// replayed rarely. The pure Go backend is used unless the module is built with
// the gozstd tag and cgo enabled.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
