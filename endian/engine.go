// Package endian provides byte order utilities for the record codec.
//
// Every multi-byte field of a wire or archive record is big-endian, so the
// codec works through GetWireEngine(). The engine combines Go's
// binary.ByteOrder and binary.AppendByteOrder interfaces so header writers can
// either fill pre-sized buffers or append.
//
//	engine := endian.GetWireEngine()
//	engine.PutUint32(buf[0:4], uint32(recordLen))
//
// The helpers for signed fields exist because records carry signed counts,
// instance identifiers and timestamps that must round-trip bit for bit.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetWireEngine returns the network byte order engine used by every record layout.
func GetWireEngine() EndianEngine {
	return binary.BigEndian
}

// PutInt32 stores a signed 32-bit value through engine.
func PutInt32(engine EndianEngine, b []byte, v int32) {
	engine.PutUint32(b, uint32(v))
}

// Int32 reads a signed 32-bit value through engine.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b))
}

// PutInt64 stores a signed 64-bit value through engine as one full-width word.
func PutInt64(engine EndianEngine, b []byte, v int64) {
	engine.PutUint64(b, uint64(v))
}

// Int64 reads a signed 64-bit value through engine.
func Int64(engine EndianEngine, b []byte) int64 {
	return int64(engine.Uint64(b))
}
