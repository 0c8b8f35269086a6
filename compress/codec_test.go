package compress

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pmwire/errs"
	"github.com/arloliu/pmwire/format"
)

var errRoundTripMismatch = errors.New("round trip mismatch")

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// framedPayload mimics an archive volume payload: repeated records with a
// slowly moving timestamp and a trailer word.
func framedPayload(n int) []byte {
	buf := make([]byte, 0, n*32)
	for i := range n {
		buf = append(buf,
			0, 0, 0, 28, 0, 0, 0, 0, 0, 0, 0, 28,
			0, 0, 0, 0, 0x65, 0x53, byte(i>>8), byte(i),
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 28)
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "volume")
		require.NoError(t, err)
		require.NotNil(t, codec)

		shared, err := GetCodec(ct)
		require.NoError(t, err)
		require.IsType(t, codec, shared)
	}

	_, err := CreateCodec(format.CompressionType(0x7f), "volume")
	require.ErrorContains(t, err, "invalid volume compression")

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorContains(t, err, "unsupported compression type")
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{Algorithm: format.CompressionS2}
	require.Zero(t, empty.CompressionRatio())
	require.Zero(t, empty.SpaceSavings())
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	c := NewNoOpCompressor()
	data := []byte("payload")

	out, err := c.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])

	out, err = c.Decompress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "binary_data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{name: "small_volume", data: framedPayload(4)},
		{name: "large_volume", data: framedPayload(8192)},
		{name: "zeros", data: make([]byte, 1024*1024)},
		{
			name: "pseudo_random",
			data: func() []byte {
				data := make([]byte, 4096)
				for i := range data {
					data[i] = byte((i*7 + i*i) % 251)
				}

				return data
			}(),
		},
	}

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed))
				})
			}
		})
	}
}

func TestAllCodecs_CompressesVolumes(t *testing.T) {
	data := framedPayload(4096)
	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data)/2)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := [][]byte{
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("this is not compressed data"),
	}

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			for _, input := range invalidInputs {
				_, err := codec.Decompress(input)
				require.Error(t, err)
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := framedPayload(256)
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range 20 {
						compressed, err := codec.Compress(data)
						if err != nil {
							errCh <- err
							return
						}
						out, err := codec.Decompress(compressed)
						if err != nil {
							errCh <- err
							return
						}
						if !bytes.Equal(data, out) {
							errCh <- errRoundTripMismatch
							return
						}
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllCodecs_DecompressLimit(t *testing.T) {
	data := framedPayload(2048)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.DecompressLimit(compressed, len(data))
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, out))

			_, err = codec.DecompressLimit(compressed, len(data)-1)
			require.ErrorIs(t, err, errs.ErrSizeLimitExceeded)

			_, err = codec.DecompressLimit(compressed, 16)
			require.ErrorIs(t, err, errs.ErrSizeLimitExceeded)

			out, err = codec.DecompressLimit(nil, 0)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_DecompressLimitHighlyCompressible(t *testing.T) {
	// 32MiB of zeros shrinks to a few KiB for every real codec.
	data := make([]byte, 32<<20)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), 1<<20)

			_, err = codec.DecompressLimit(compressed, 4096)
			require.ErrorIs(t, err, errs.ErrSizeLimitExceeded)
		})
	}
}
