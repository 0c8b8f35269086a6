// Package compress provides the block compression codecs used for archive volumes.
//
// An archive volume holds a run of framed data records. The whole framed
// payload is compressed once when the volume is closed, and decompressed once
// when it is opened for reading. Records themselves are never compressed
// individually.
//
// Supported algorithms:
//   - format.CompressionNone: payload stored as is
//   - format.CompressionZstd: best ratio, moderate speed
//   - format.CompressionS2: balanced ratio and speed
//   - format.CompressionLZ4: fastest decompression
//
// The Zstd codec uses github.com/klauspost/compress/zstd by default. Building
// with the gozstd tag and cgo enabled switches it to github.com/valyala/gozstd.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// All codecs are stateless values and safe for concurrent use.
package compress
