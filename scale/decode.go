package scale

import (
	"crypto/ed25519"
	"math/big"
	"reflect"
)

// unmarshal is the reflection-driven dispatch core, the decode-side
// counterpart of Encoder.marshal.
func (d *Decoder) unmarshal(value reflect.Value) error {
	if value.CanAddr() {
		addr := value.Addr()
		if vd, ok := addr.Interface().(VariantDecoder); ok {
			return d.decodeVariant(vd)
		}
		if u, ok := addr.Interface().(Unmarshaler); ok {
			return u.UnmarshalSCALE(d)
		}
	}

	switch value.Interface().(type) {
	case int, uint:
		return d.decodeBuiltinInt(value)
	case *big.Int:
		n, err := d.DecodeCompact()
		if err != nil {
			return err
		}
		value.Set(reflect.ValueOf(n))
		return nil
	case bool:
		b, err := d.DecodeBool()
		if err != nil {
			return err
		}
		value.SetBool(b)
		return nil
	case []byte:
		b, err := d.DecodeBytes()
		if err != nil {
			return err
		}
		value.SetBytes(b)
		return nil
	case string:
		s, err := d.DecodeString()
		if err != nil {
			return err
		}
		value.SetString(s)
		return nil
	case BitSequence:
		bits, err := d.decodeBits()
		if err != nil {
			return err
		}
		value.Set(reflect.ValueOf(bits))
		return nil
	default:
		if w, ok := fixedWidth(value.Interface()); ok {
			return d.decodeFixedWidth(value, w)
		}
		return d.handleReflectTypes(value)
	}
}

func (d *Decoder) decodeBuiltinInt(value reflect.Value) error {
	n, err := d.DecodeCompactUint64()
	if err != nil {
		return err
	}
	value.Set(reflect.ValueOf(n).Convert(value.Type()))
	return nil
}

func (d *Decoder) handleReflectTypes(value reflect.Value) error {
	switch value.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.decodeCustomPrimitive(value)
	case reflect.Ptr:
		return d.decodePointer(value)
	case reflect.Struct:
		return d.decodeStruct(value)
	case reflect.Array:
		return d.decodeArray(value)
	case reflect.Slice:
		if value.Type() == reflect.TypeOf(ed25519.PublicKey{}) {
			return d.decodeEd25519PublicKey(value)
		}
		if value.Type() == reflect.TypeOf(BitSequence{}) {
			return d.decodeBitsInto(value)
		}
		if value.Type() == reflect.TypeOf([]byte{}) {
			b, err := d.DecodeBytes()
			if err != nil {
				return err
			}
			value.SetBytes(b)
			return nil
		}
		return d.decodeSlice(value)
	case reflect.Map:
		return d.decodeMap(value)
	case reflect.String:
		s, err := d.DecodeString()
		if err != nil {
			return err
		}
		value.SetString(s)
		return nil
	default:
		return errorf(errUnsupportedType, value.Interface())
	}
}

func (d *Decoder) decodeCustomPrimitive(value reflect.Value) error {
	inType := value.Type()
	var temp reflect.Value
	switch inType.Kind() {
	case reflect.Bool:
		temp = reflect.New(reflect.TypeOf(false))
	case reflect.Int:
		temp = reflect.New(reflect.TypeOf(int(0)))
	case reflect.Int8:
		temp = reflect.New(reflect.TypeOf(int8(0)))
	case reflect.Int16:
		temp = reflect.New(reflect.TypeOf(int16(0)))
	case reflect.Int32:
		temp = reflect.New(reflect.TypeOf(int32(0)))
	case reflect.Int64:
		temp = reflect.New(reflect.TypeOf(int64(0)))
	case reflect.Uint:
		temp = reflect.New(reflect.TypeOf(uint(0)))
	case reflect.Uint8:
		temp = reflect.New(reflect.TypeOf(uint8(0)))
	case reflect.Uint16:
		temp = reflect.New(reflect.TypeOf(uint16(0)))
	case reflect.Uint32:
		temp = reflect.New(reflect.TypeOf(uint32(0)))
	case reflect.Uint64:
		temp = reflect.New(reflect.TypeOf(uint64(0)))
	default:
		return errorf(errUnsupportedType, value.Interface())
	}

	if err := d.unmarshal(temp.Elem()); err != nil {
		return err
	}
	value.Set(temp.Elem().Convert(inType))
	return nil
}

func (d *Decoder) decodeVariant(v VariantDecoder) error {
	b, err := d.NextByte()
	if err != nil {
		return err
	}
	payload, err := v.PayloadTemplate(b)
	if err != nil {
		return err
	}
	if payload == nil {
		return v.SetVariant(b, nil)
	}
	tmp := reflect.New(reflect.TypeOf(payload))
	tmp.Elem().Set(reflect.ValueOf(payload))
	if err := d.unmarshal(tmp.Elem()); err != nil {
		return err
	}
	return v.SetVariant(b, tmp.Elem().Interface())
}

// decodePointer implements Option<T> decode, with the *bool special case
// collapsed into the single-byte Option<Bool> form.
func (d *Decoder) decodePointer(value reflect.Value) error {
	if value.Type() == reflect.TypeOf((*bool)(nil)) {
		return d.decodeOptionBool(value)
	}

	b, err := d.NextByte()
	if err != nil {
		return err
	}
	switch b {
	case 0x00:
		value.Set(reflect.Zero(value.Type()))
		return nil
	case 0x01:
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}
		return d.unmarshal(value.Elem())
	default:
		return errorf("scale: unexpected option discriminant 0x%02x: %w", b, ErrUnexpectedValue)
	}
}

func (d *Decoder) decodeOptionBool(value reflect.Value) error {
	b, err := d.NextByte()
	if err != nil {
		return err
	}
	switch b {
	case 0x00:
		value.Set(reflect.Zero(value.Type()))
		return nil
	case 0x01:
		t := true
		value.Set(reflect.ValueOf(&t))
		return nil
	case 0x02:
		f := false
		value.Set(reflect.ValueOf(&f))
		return nil
	default:
		return errorf("scale: unexpected Option<Bool> byte 0x%02x: %w", b, ErrUnexpectedValue)
	}
}

func (d *Decoder) decodeStruct(value reflect.Value) error {
	t := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		fieldType := t.Field(i)
		if !field.CanSet() {
			continue
		}
		if tag, ok := fieldType.Tag.Lookup("scale"); ok {
			if tag == "-" {
				continue
			}
			tagValues := parseTag(tag)
			if length, found := tagValues["length"]; found {
				size, err := parseUintTag(length)
				if err != nil {
					return errorf(errInvalidLengthTag, fieldType.Name, err)
				}
				if err := d.decodeFixedWidth(field, uint(size)); err != nil {
					return errorf(errDecodingStructField, fieldType.Name, err)
				}
				continue
			}
			if encodingType, found := tagValues["encoding"]; found && encodingType == "compact" {
				n, err := d.DecodeCompactUint64()
				if err != nil {
					return errorf(errDecodingStructField, fieldType.Name, err)
				}
				field.Set(reflect.ValueOf(n).Convert(field.Type()))
				continue
			}
		}
		if err := d.unmarshal(field); err != nil {
			return errorf(errDecodingStructField, fieldType.Name, err)
		}
	}
	return nil
}

func (d *Decoder) decodeArray(value reflect.Value) error {
	for i := 0; i < value.Len(); i++ {
		if err := d.unmarshal(value.Index(i)); err != nil {
			return errorf(errDecodingSliceElement, i, err)
		}
	}
	return nil
}

func (d *Decoder) decodeEd25519PublicKey(value reflect.Value) error {
	b, err := d.readN(ed25519.PublicKeySize)
	if err != nil {
		return err
	}
	pk := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pk, b)
	value.Set(reflect.ValueOf(pk))
	return nil
}

// decodeSlice implements a bounded-allocation policy: before any
// allocation, it checks the declared length against what the
// remaining bytes could possibly support, then grows the destination
// slice via ordinary reflect.Append (whose geometric growth never
// pre-allocates proportionally to an attacker-declared N).
func (d *Decoder) decodeSlice(value reflect.Value) error {
	n, err := d.decodeLength()
	if err != nil {
		return err
	}
	elemType := value.Type().Elem()
	if err := d.checkBudget(n, minWireSize(elemType)); err != nil {
		return err
	}

	out := reflect.MakeSlice(value.Type(), 0, 0)
	for i := uint64(0); i < n; i++ {
		elem := reflect.New(elemType).Elem()
		if err := d.unmarshal(elem); err != nil {
			return errorf(errDecodingSliceElement, i, err)
		}
		out = reflect.Append(out, elem)
	}
	value.Set(out)
	return nil
}

// checkBudget enforces the bounded-allocation rule: when an item's known
// minimum wire size is non-zero, N may not exceed what the remaining
// bytes could cover; when it is zero-sized, N is capped by the
// configured absolute ceiling instead.
func (d *Decoder) checkBudget(n uint64, minSize uint64) error {
	if minSize == 0 {
		if n > d.opts.maxItemsZeroSized() {
			return errorf("%w: %d zero-sized items exceeds cap %d", ErrTooManyItems, n, d.opts.maxItemsZeroSized())
		}
		return nil
	}
	maxAllowed := uint64(d.Remaining()) / minSize
	if n > maxAllowed {
		return errorf("%w: %d items of minimum size %d exceeds %d remaining bytes", ErrTooManyItems, n, minSize, d.Remaining())
	}
	return nil
}

func (d *Decoder) decodeMap(value reflect.Value) error {
	mapType := value.Type()
	keyType := mapType.Key()
	elemType := mapType.Elem()

	n, err := d.decodeLength()
	if err != nil {
		return err
	}
	if err := d.checkBudget(n, minWireSize(keyType)+minWireSize(elemType)); err != nil {
		return err
	}

	out := reflect.MakeMapWithSize(mapType, 0)
	for i := uint64(0); i < n; i++ {
		key := reflect.New(keyType).Elem()
		if err := d.unmarshal(key); err != nil {
			return errorf(errDecodingMapKey, err)
		}
		val := reflect.New(elemType).Elem()
		if err := d.unmarshal(val); err != nil {
			return errorf(errDecodingMapValue, err)
		}
		// Last-wins: a later occurrence of an equal key overwrites the
		// earlier value.
		out.SetMapIndex(key, val)
	}
	value.Set(out)
	return nil
}

// decodeBits reads the bit-sequence shape into a fresh BitSequence: a
// compact length N, then N single-byte booleans. Despite the name, this
// shape is not bit-packed.
func (d *Decoder) decodeBits() (BitSequence, error) {
	n, err := d.decodeLength()
	if err != nil {
		return nil, err
	}
	if err := d.checkBudget(n, 1); err != nil {
		return nil, err
	}
	out := make(BitSequence, 0, minInt(int(n), 4096))
	for i := uint64(0); i < n; i++ {
		b, err := d.DecodeBool()
		if err != nil {
			return nil, errorf(errDecodingSliceElement, i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (d *Decoder) decodeBitsInto(value reflect.Value) error {
	bits, err := d.decodeBits()
	if err != nil {
		return err
	}
	value.Set(reflect.ValueOf(bits).Convert(value.Type()))
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// decodeFixedWidth reads dstv as a length-byte little-endian integer, honoring
// an Option<T> discriminant first when the destination is a pointer
// (the decode-side counterpart of Encoder.encodeFixedWidth, used by the
// `scale:"length=N"` struct tag).
func (d *Decoder) decodeFixedWidth(dstv reflect.Value, length uint) error {
	typ := dstv.Type()
	if typ.Kind() == reflect.Ptr {
		b, err := d.NextByte()
		if err != nil {
			return err
		}
		switch b {
		case 0x00:
			dstv.Set(reflect.Zero(typ))
			return nil
		case 0x01:
			// fall through to read the pointee below
		default:
			return errorf("scale: unexpected option discriminant 0x%02x: %w", b, ErrUnexpectedValue)
		}
		if dstv.IsNil() {
			dstv.Set(reflect.New(typ.Elem()))
		}
		dstv = dstv.Elem()
		typ = typ.Elem()
	}

	buf, err := d.readN(int(length))
	if err != nil {
		return err
	}

	var v uint64
	for i := uint(0); i < length && i < 8; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}

	switch typ.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		dstv.Set(reflect.ValueOf(v).Convert(typ))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		dstv.Set(reflect.ValueOf(int64(v)).Convert(typ))
	default:
		return errorf(errUnsupportedType, typ)
	}
	return nil
}
