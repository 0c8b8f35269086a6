// Package result defines the in-memory metric result exchanged by agents,
// loggers and clients: a timestamp plus an ordered list of per-metric value
// sets.
//
// A ValueSet's NumVal field is overloaded. A non-negative NumVal is the number
// of values in the set; a negative NumVal is a per-metric error code and the
// set carries no values. When NumVal is positive, ValFmt says whether every
// value is stored inline (format.ValInsitu) or in a value block
// (format.ValDPtr or format.ValSPtr).
//
// Results produced by the codec decoder own all of their storage; nothing in
// them refers back to the buffer they were decoded from.
package result
