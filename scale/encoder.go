package scale

import (
	"bytes"
	"math/big"
)

// Encoder is an append-only byte builder, owning its buffer from
// construction until Bytes finalizes it. It is not safe for concurrent
// use; an Encoder is meant to be driven by a single goroutine.
type Encoder struct {
	buf       bytes.Buffer
	opts      Options
	finalized bool
}

// NewEncoder constructs an Encoder with the permissive default Options.
func NewEncoder() *Encoder {
	return NewEncoderWithOptions(DefaultOptions())
}

// NewEncoderWithOptions constructs an Encoder governed by opts.
func NewEncoderWithOptions(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Marshal encodes v with the default Options and returns the wire bytes.
func Marshal(v any) ([]byte, error) {
	return MarshalWithOptions(v, DefaultOptions())
}

// MarshalWithOptions encodes v under opts.
func MarshalWithOptions(v any, opts Options) ([]byte, error) {
	e := NewEncoderWithOptions(opts)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Encode appends v's encoding, dispatching on its reflected shape. This
// is the shape-generic "append value" entry point.
func (e *Encoder) Encode(v any) error {
	if e.finalized {
		return ErrEncoderFinalized
	}
	return e.marshal(v)
}

// Bytes finalizes the encoder, returning the accumulated byte sequence.
// This consumes the encoder: further calls to Encode fail with
// ErrEncoderFinalized.
func (e *Encoder) Bytes() []byte {
	e.finalized = true
	return e.buf.Bytes()
}

// Len reports how many bytes have been appended so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

func (e *Encoder) writeByte(b byte) error {
	if e.finalized {
		return ErrEncoderFinalized
	}
	return e.buf.WriteByte(b)
}

func (e *Encoder) write(b []byte) error {
	if e.finalized {
		return ErrEncoderFinalized
	}
	_, err := e.buf.Write(b)
	return err
}

// EncodeBool appends the one-byte boolean shape.
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.writeByte(0x01)
	}
	return e.writeByte(0x00)
}

// EncodeUint8/EncodeUint16/EncodeUint32/EncodeUint64 append the
// fixed-width unsigned integer shapes.
func (e *Encoder) EncodeUint8(v uint8) error   { return e.write(serializeUint8(v)) }
func (e *Encoder) EncodeUint16(v uint16) error { return e.write(serializeUint16(v)) }
func (e *Encoder) EncodeUint32(v uint32) error { return e.write(serializeUint32(v)) }
func (e *Encoder) EncodeUint64(v uint64) error { return e.write(serializeUint64(v)) }

// EncodeInt8/EncodeInt16/EncodeInt32/EncodeInt64 append the fixed-width
// signed integer shapes, two's complement at their declared width.
func (e *Encoder) EncodeInt8(v int8) error   { return e.write(serializeUint8(uint8(v))) }
func (e *Encoder) EncodeInt16(v int16) error { return e.write(serializeUint16(uint16(v))) }
func (e *Encoder) EncodeInt32(v int32) error { return e.write(serializeUint32(uint32(v))) }
func (e *Encoder) EncodeInt64(v int64) error { return e.write(serializeUint64(uint64(v))) }

// EncodeCompactUint64 appends the compact-integer shape for a value known
// to fit uint64.
func (e *Encoder) EncodeCompactUint64(v uint64) error {
	return e.write(EncodeCompactUint64(v))
}

// EncodeCompact appends the compact-integer shape for an arbitrary
// precision value, failing with ErrValueOutOfRange beyond 2^536-1.
func (e *Encoder) EncodeCompact(v *big.Int) error {
	b, err := EncodeCompact(v)
	if err != nil {
		return err
	}
	return e.write(b)
}

// EncodeBytes appends the length-prefixed raw-byte shape: a compact
// length, then the bytes themselves (used by []byte, strings, and as the
// building block for sequences of byte-sized elements).
func (e *Encoder) EncodeBytes(b []byte) error {
	if err := e.EncodeCompactUint64(uint64(len(b))); err != nil {
		return err
	}
	return e.write(b)
}

// EncodeString appends the string shape: a compact length, then the raw
// UTF-8 bytes, unvalidated — UTF-8 validity is a caller concern.
func (e *Encoder) EncodeString(s string) error {
	return e.EncodeBytes([]byte(s))
}
