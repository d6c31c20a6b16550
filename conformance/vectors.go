// Package conformance holds named golden encode/decode fixtures for the
// scale codec: known Go values paired with their exact expected wire
// bytes, the in-process analogue of a cross-implementation test vector
// suite.
package conformance

import "encoding/hex"

// Vector pairs a Go value with the wire bytes it must produce and must be
// decoded back from.
type Vector struct {
	Name  string
	Value any
	Wire  []byte
}

func hexBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func boolPtr(b bool) *bool { return &b }

// Vectors are the named scenarios every implementation of this wire format
// is expected to agree on.
//
// The "compact N" rows use Go's bare uint type rather than uint64:
// scale.Marshal only routes the unsized int/uint kinds through the compact
// path (EncodeCompactUint64) by its concrete-type fast path — a sized
// uint64 takes the fixed-width 8-byte path instead, which is not what
// these rows are meant to exercise.
var Vectors = []Vector{
	{"uint16 69", uint16(69), hexBytes("4500")},
	{"int16 minus one", int16(-1), hexBytes("ffff")},
	{"bool true", true, hexBytes("01")},
	{"bool false", false, hexBytes("00")},
	{"compact zero", uint(0), hexBytes("00")},
	{"compact 63", uint(63), hexBytes("fc")},
	{"compact 64", uint(64), hexBytes("0101")},
	{"compact 16383", uint(16383), hexBytes("fdff")},
	{"compact 16384", uint(16384), hexBytes("02000100")},
	{"compact 1073741823", uint(1073741823), hexBytes("feffffff")},
	{"compact 1073741824", uint(1073741824), hexBytes("0300000040")},
	{"sequence of uint16", []uint16{1, 2, 3, 4}, hexBytes("100100020003000400")},
	{"string hello", "hello", hexBytes("1468656c6c6f")},
	{"option<bool> none", (*bool)(nil), hexBytes("00")},
	{"option<bool> some true", boolPtr(true), hexBytes("01")},
	{"option<bool> some false", boolPtr(false), hexBytes("02")},
}
