package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetWireEngine(t *testing.T) {
	engine := GetWireEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	b := make([]byte, 4)
	engine.PutUint32(b, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b, "wire order puts MSB first")
}

func TestSignedHelpers(t *testing.T) {
	engine := GetWireEngine()

	t.Run("int32", func(t *testing.T) {
		b := make([]byte, 4)
		for _, v := range []int32{0, 1, -1, -12, math.MaxInt32, math.MinInt32} {
			PutInt32(engine, b, v)
			require.Equal(t, v, Int32(engine, b))
		}

		PutInt32(engine, b, -1)
		require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b)
	})

	t.Run("int64 full width", func(t *testing.T) {
		b := make([]byte, 8)
		PutInt64(engine, b, 0x0102030405060708)
		require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

		for _, v := range []int64{0, -1, math.MaxInt64, math.MinInt64, 1_700_000_000} {
			PutInt64(engine, b, v)
			require.Equal(t, v, Int64(engine, b))
		}
	})
}
