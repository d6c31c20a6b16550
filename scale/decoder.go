package scale

import (
	"fmt"
	"math/big"
	"reflect"
)

// Decoder is a cursor over a borrowed byte span: a read position that
// only ever advances, never rewinds, never mutates or extends the span it
// was given.
type Decoder struct {
	data []byte
	pos  int
	opts Options
}

// NewDecoder constructs a Decoder over data with the permissive default
// Options.
func NewDecoder(data []byte) *Decoder {
	return NewDecoderWithOptions(data, DefaultOptions())
}

// NewDecoderWithOptions constructs a Decoder over data governed by opts.
func NewDecoderWithOptions(data []byte, opts Options) *Decoder {
	return &Decoder{data: data, opts: opts}
}

// Unmarshal decodes data into v (which must be a non-nil pointer) with the
// default Options. Trailing bytes are not an error.
func Unmarshal(data []byte, v any) error {
	return UnmarshalWithOptions(data, v, DefaultOptions())
}

// UnmarshalWithOptions decodes data into v under opts. When
// opts.RequireFullConsumption is set, any bytes left over after decoding v
// surface ErrExtraData.
func UnmarshalWithOptions(data []byte, v any, opts Options) error {
	d := NewDecoderWithOptions(data, opts)
	if err := d.Decode(v); err != nil {
		return err
	}
	if opts.RequireFullConsumption && d.Remaining() > 0 {
		return fmt.Errorf("%w: %d bytes remain", ErrExtraData, d.Remaining())
	}
	return nil
}

// Remaining reports how many bytes are left between the cursor and the
// end of the span.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// HasMore reports whether at least n bytes remain, without advancing.
func (d *Decoder) HasMore(n int) bool {
	return d.Remaining() >= n
}

// NextByte returns the byte at the cursor and advances by one.
func (d *Decoder) NextByte() (byte, error) {
	if !d.HasMore(1) {
		return 0, ErrNotEnoughData
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) readN(n int) ([]byte, error) {
	if !d.HasMore(n) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughData, n, d.Remaining())
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// Decode reads one value's encoding into v, which must be a non-nil
// pointer. This is the shape-generic "read value" entry point that
// dispatches on v's reflected type. Only the mandatory outer pointer is
// stripped: if v's pointee is itself a pointer type, that inner pointer is
// passed to unmarshal as-is, since a pointer-typed destination is how this
// package spells Option<T> — collapsing it here instead would decode the
// payload unconditionally and lose the discriminant byte.
func (d *Decoder) Decode(v any) error {
	dstv := reflect.ValueOf(v)
	if dstv.Kind() != reflect.Ptr || dstv.IsNil() {
		return errorf(errUnsupportedType, v)
	}
	return d.unmarshal(dstv.Elem())
}

// DecodeBool reads the one-byte boolean shape.
func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.NextByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte 0x%02x", ErrUnexpectedValue, b)
	}
}

func (d *Decoder) DecodeUint8() (uint8, error) {
	b, err := d.readN(1)
	if err != nil {
		return 0, err
	}
	return deserializeUint8(b), nil
}

func (d *Decoder) DecodeUint16() (uint16, error) {
	b, err := d.readN(2)
	if err != nil {
		return 0, err
	}
	return deserializeUint16(b), nil
}

func (d *Decoder) DecodeUint32() (uint32, error) {
	b, err := d.readN(4)
	if err != nil {
		return 0, err
	}
	return deserializeUint32(b), nil
}

func (d *Decoder) DecodeUint64() (uint64, error) {
	b, err := d.readN(8)
	if err != nil {
		return 0, err
	}
	return deserializeUint64(b), nil
}

func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := d.DecodeUint8()
	return int8(v), err
}

func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := d.DecodeUint16()
	return int16(v), err
}

func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

// DecodeCompactUint64 reads a compact integer and fails with
// ErrValueOutOfRange if the decoded value doesn't fit in a uint64.
func (d *Decoder) DecodeCompactUint64() (uint64, error) {
	n, err := d.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: compact integer %s does not fit in uint64", ErrValueOutOfRange, n.String())
	}
	return n.Uint64(), nil
}

// DecodeCompact reads a compact integer of arbitrary precision.
func (d *Decoder) DecodeCompact() (*big.Int, error) {
	n, consumed, err := decodeCompactChecked(d.data[d.pos:], d.opts.StrictMinimalCompact)
	if err != nil {
		return nil, err
	}
	d.pos += consumed
	return n, nil
}

// decodeLength reads the compact length prefix shared by sequences, maps,
// strings and bit-sequences. Unlike a bare DecodeCompact call, a mode-3
// header here that claims more value bytes than remain in the span is
// refused as ErrTooManyItems rather than ErrNotEnoughData: whatever N it
// would decode to, a length-prefix encoding that already outgrows the
// entire remaining input is exactly the kind of adversarial claimed
// length this guards against, and is caught before the big-integer read
// that would otherwise surface a less specific NOT_ENOUGH_DATA.
func (d *Decoder) decodeLength() (uint64, error) {
	if d.HasMore(1) && d.data[d.pos]&0x03 == 0x03 {
		m := int(d.data[d.pos] >> 2)
		byteLen := m + 4
		if byteLen > d.Remaining()-1 {
			return 0, fmt.Errorf("%w: length-prefix header claims %d value bytes, only %d remain", ErrTooManyItems, byteLen, d.Remaining()-1)
		}
	}
	return d.DecodeCompactUint64()
}

// DecodeBytes reads the length-prefixed raw-byte shape.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	n, err := d.decodeLength()
	if err != nil {
		return nil, err
	}
	if n > 0 && n > uint64(d.Remaining()) {
		return nil, fmt.Errorf("%w: byte sequence of length %d exceeds %d remaining", ErrTooManyItems, n, d.Remaining())
	}
	return d.readN(int(n))
}

// DecodeString reads the string shape without validating UTF-8.
func (d *Decoder) DecodeString() (string, error) {
	b, err := d.DecodeBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
