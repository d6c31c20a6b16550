package scale

import "math"

// Uint128 is an unsigned 128-bit integer represented as two 64-bit limbs,
// a fixed-integer width (w=16) that Go has no native type for. It
// carries no encode/decode special-casing: as an ordinary
// exported-field struct it already rides the generic product codec
// (encodeStruct/decodeStruct), which encodes Lo then Hi as two 8-byte
// little-endian fields — byte-identical to a single 16-byte little-endian
// integer, since Lo holds the low 64 bits and Hi the high 64 bits.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is the signed counterpart of Uint128. Two's complement at width
// 16 is just the raw 128-bit pattern split across Lo/Hi the same way.
type Int128 struct {
	Lo uint64
	Hi uint64
}

// trivialNatural implements the fixed-width integer formula: w bytes,
// little-endian, least-significant byte first. The generic type
// parameter lets one implementation serve every unsigned fixed width
// without per-width duplication.
type trivialNatural[T uint8 | uint16 | uint32 | uint64] struct{}

func (trivialNatural[T]) serialize(x T, l uint8) []byte {
	buf := make([]byte, 0, l)
	for i := uint8(0); i < l; i++ {
		buf = append(buf, byte((x>>(8*i))&T(math.MaxUint8)))
	}
	return buf
}

func (trivialNatural[T]) deserialize(buf []byte, u *T) {
	*u = 0
	for i := 0; i < len(buf); i++ {
		*u |= T(buf[i]) << (8 * i)
	}
}

var (
	natU8  trivialNatural[uint8]
	natU16 trivialNatural[uint16]
	natU32 trivialNatural[uint32]
	natU64 trivialNatural[uint64]
)

func serializeUint8(x uint8) []byte   { return natU8.serialize(x, 1) }
func serializeUint16(x uint16) []byte { return natU16.serialize(x, 2) }
func serializeUint32(x uint32) []byte { return natU32.serialize(x, 4) }
func serializeUint64(x uint64) []byte { return natU64.serialize(x, 8) }

func deserializeUint8(buf []byte) uint8 {
	var v uint8
	natU8.deserialize(buf, &v)
	return v
}

func deserializeUint16(buf []byte) uint16 {
	var v uint16
	natU16.deserialize(buf, &v)
	return v
}

func deserializeUint32(buf []byte) uint32 {
	var v uint32
	natU32.deserialize(buf, &v)
	return v
}

func deserializeUint64(buf []byte) uint64 {
	var v uint64
	natU64.deserialize(buf, &v)
	return v
}

// fixedWidth returns the wire width in bytes for the fixed-size numeric
// kinds this codec dispatches by concrete type (w in {1,2,4,8}).
// Uint128/Int128 are deliberately absent: they take the generic struct
// path (see the Uint128 doc comment above), not this single-shot path.
func fixedWidth(v any) (uint, bool) {
	switch v.(type) {
	case uint8, int8:
		return 1, true
	case uint16, int16:
		return 2, true
	case uint32, int32:
		return 4, true
	case uint64, int64:
		return 8, true
	default:
		return 0, false
	}
}
