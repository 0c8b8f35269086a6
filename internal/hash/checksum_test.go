package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Checksum([]byte(tt.data)))
		})
	}
}

func TestDigestMatchesChecksum(t *testing.T) {
	data := []byte("len|type|from|timestamp|numpmid|value sets|trailer")

	d := NewDigest()
	d.Write(data[:10])
	d.Write(data[10:])

	assert.Equal(t, Checksum(data), d.Sum64())
}
