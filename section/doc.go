// Package section defines the fixed-size binary structures of the record
// formats: the three record header layouts and the archive volume header.
//
// # Record Layouts
//
// Every record starts with three 32-bit words (len, type, from) followed by a
// layout-specific timestamp and metric count. All fields are big-endian.
//
//	Result / ArchiveV2 (24 bytes)
//	Bytes  | Field   | Type  | Description
//	-------|---------|-------|-------------------------------------------
//	0-3    | len     | int32 | record length in bytes
//	4-7    | type    | int32 | PDU type (0x7001)
//	8-11   | from    | int32 | sender identity
//	12-15  | sec     | int32 | timestamp seconds
//	16-19  | usec    | int32 | timestamp microseconds
//	20-23  | numpmid | int32 | number of value sets
//
//	HighResResult (32 bytes)
//	0-3    | len     | int32 |
//	4-7    | type    | int32 | PDU type (0x7015)
//	8-11   | from    | int32 |
//	12-15  | numpmid | int32 |
//	16-23  | sec     | int64 | full-width big-endian
//	24-31  | nsec    | int64 | full-width big-endian
//
//	ArchiveV3 (28 bytes)
//	0-3    | len     | int32 |
//	4-7    | type    | int32 |
//	8-11   | len     | int32 | repeat of the record length
//	12-15  | sec_hi  | int32 | high word of the 64-bit seconds
//	16-19  | sec_lo  | int32 | low word of the 64-bit seconds
//	20-23  | nsec    | int32 |
//	24-27  | numpmid | int32 |
//
// The value-set list follows the header immediately:
//
//	pmid:i32, count:i32 [, valfmt:i32 if count > 0], count × {inst:i32, value:i32}
//
// For indirect values the value word is the offset, in 4-byte wire units from
// the record start, of a value block: len:i32 (header included), type:i32,
// payload padded with zeros to a wire unit.
package section
