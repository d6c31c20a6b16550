package scale

import (
	"crypto/ed25519"
	"math/big"
	"reflect"
)

// marshal is the reflection-driven dispatch core: a value implementing
// Marshaler or VariantEncoder is given full control, a handful of concrete
// types take a fast path, and everything else falls through to
// handleReflectTypes keyed on reflect.Kind.
func (e *Encoder) marshal(in any) error {
	if m, ok := in.(Marshaler); ok {
		b, err := m.MarshalSCALE()
		if err != nil {
			return err
		}
		return e.write(b)
	}

	if v, ok := in.(VariantEncoder); ok {
		return e.encodeVariant(v)
	}

	switch v := in.(type) {
	case int:
		if v < 0 {
			return errorf("%w: negative int %d has no compact encoding", ErrUnsupportedShape, v)
		}
		return e.EncodeCompactUint64(uint64(v))
	case uint:
		return e.EncodeCompactUint64(uint64(v))
	case *big.Int:
		return e.EncodeCompact(v)
	case bool:
		return e.EncodeBool(v)
	case []byte:
		return e.EncodeBytes(v)
	case string:
		return e.EncodeString(v)
	case BitSequence:
		return e.encodeBits(v)
	default:
		if w, ok := fixedWidth(v); ok {
			return e.encodeFixedWidth(v, w)
		}
		return e.handleReflectTypes(v)
	}
}

func (e *Encoder) handleReflectTypes(in any) error {
	val := reflect.ValueOf(in)
	switch val.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.encodeCustomPrimitive(in)
	case reflect.Ptr:
		return e.encodePointer(val)
	case reflect.Struct:
		return e.encodeStruct(in)
	case reflect.Array:
		return e.encodeArray(in)
	case reflect.Slice:
		switch v := in.(type) {
		case ed25519.PublicKey:
			return e.write(v)
		case BitSequence:
			return e.encodeBits(v)
		case []byte:
			return e.EncodeBytes(v)
		default:
			return e.encodeSlice(in)
		}
	case reflect.Map:
		return e.encodeMap(in)
	case reflect.String:
		return e.EncodeString(val.String())
	default:
		return errorf(errUnsupportedType, in)
	}
}

// encodeCustomPrimitive re-dispatches a named type whose underlying kind
// is a primitive (e.g. "type Alias uint16") through marshal as its base
// type.
func (e *Encoder) encodeCustomPrimitive(in any) error {
	val := reflect.ValueOf(in)
	switch val.Kind() {
	case reflect.Bool:
		return e.marshal(val.Bool())
	case reflect.Int:
		return e.marshal(int(val.Int()))
	case reflect.Int8:
		return e.marshal(int8(val.Int()))
	case reflect.Int16:
		return e.marshal(int16(val.Int()))
	case reflect.Int32:
		return e.marshal(int32(val.Int()))
	case reflect.Int64:
		return e.marshal(val.Int())
	case reflect.Uint:
		return e.marshal(uint(val.Uint()))
	case reflect.Uint8:
		return e.marshal(uint8(val.Uint()))
	case reflect.Uint16:
		return e.marshal(uint16(val.Uint()))
	case reflect.Uint32:
		return e.marshal(uint32(val.Uint()))
	case reflect.Uint64:
		return e.marshal(val.Uint())
	default:
		return errorf(errUnsupportedType, in)
	}
}

func (e *Encoder) encodeVariant(v VariantEncoder) error {
	index, payload, err := v.SelectedVariant()
	if err != nil {
		return err
	}
	if err := e.writeByte(index); err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	return e.marshal(payload)
}

// encodePointer implements Option<T>: 0x00 absent, 0x01 present followed
// by T's encoding. A *bool is special-cased into the Option<Bool>
// collapse: absent/true/false packed into one byte. Only the exact type
// *bool collapses; a pointer to a named bool type takes the generic
// Option<T> path (discriminant byte, then the bool byte).
func (e *Encoder) encodePointer(val reflect.Value) error {
	if bp, ok := val.Interface().(*bool); ok {
		return e.encodeOptionBool(bp)
	}
	if val.IsNil() {
		return e.writeByte(0x00)
	}
	if err := e.writeByte(0x01); err != nil {
		return err
	}
	return e.marshal(val.Elem().Interface())
}

func (e *Encoder) encodeOptionBool(v *bool) error {
	switch {
	case v == nil:
		return e.writeByte(0x00)
	case *v:
		return e.writeByte(0x01)
	default:
		return e.writeByte(0x02)
	}
}

func (e *Encoder) encodeStruct(in any) error {
	v := reflect.ValueOf(in)
	t := reflect.TypeOf(in)

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanInterface() {
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("scale"); ok {
			if tag == "-" {
				continue
			}
			tagValues := parseTag(tag)
			encodingType, hasEncoding := tagValues["encoding"]
			if length, hasLength := tagValues["length"]; hasLength {
				if hasEncoding {
					return errorf(errConflictingTags, fieldType.Name)
				}
				size, err := parseUintTag(length)
				if err != nil {
					return errorf(errInvalidLengthTag, fieldType.Name, err)
				}
				if err := e.encodeFixedWidth(field.Interface(), uint(size)); err != nil {
					return errorf(errEncodingStructField, fieldType.Name, err)
				}
				continue
			}
			if hasEncoding && encodingType == "compact" {
				switch field.Kind() {
				case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
					if err := e.EncodeCompactUint64(field.Uint()); err != nil {
						return errorf(errEncodingStructField, fieldType.Name, err)
					}
					continue
				default:
					return errorf(errUnsupportedCompactField, fieldType.Name, field.Kind())
				}
			}
		}

		if err := e.marshal(field.Interface()); err != nil {
			return errorf(errEncodingStructField, fieldType.Name, err)
		}
	}
	return nil
}

func (e *Encoder) encodeArray(in any) error {
	v := reflect.ValueOf(in)
	for i := 0; i < v.Len(); i++ {
		if err := e.marshal(v.Index(i).Interface()); err != nil {
			return errorf(errEncodingSliceElement, i, err)
		}
	}
	return nil
}

func (e *Encoder) encodeSlice(in any) error {
	v := reflect.ValueOf(in)
	if err := e.EncodeCompactUint64(uint64(v.Len())); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := e.marshal(v.Index(i).Interface()); err != nil {
			return errorf(errEncodingSliceElement, i, err)
		}
	}
	return nil
}

// encodeBits appends the bit-sequence shape: a compact length, then one
// byte per bool, in order. Despite the name, this shape is never
// bit-packed.
func (e *Encoder) encodeBits(bits BitSequence) error {
	if err := e.EncodeCompactUint64(uint64(len(bits))); err != nil {
		return err
	}
	for _, b := range bits {
		if err := e.EncodeBool(b); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap appends the map shape: a compact length, then each (K, V)
// pair as a product, keys sorted for determinism.
func (e *Encoder) encodeMap(in any) error {
	v := reflect.ValueOf(in)
	if v.Kind() != reflect.Map {
		return errorf(errUnsupportedType, in)
	}

	keys := v.MapKeys()
	if len(keys) == 0 {
		return e.EncodeCompactUint64(0)
	}
	if err := sortMapKeys(keys); err != nil {
		return err
	}
	if err := e.EncodeCompactUint64(uint64(len(keys))); err != nil {
		return err
	}
	for _, key := range keys {
		if err := e.marshal(key.Interface()); err != nil {
			return errorf(errEncodingMapKey, err)
		}
		if err := e.marshal(v.MapIndex(key).Interface()); err != nil {
			return errorf(errEncodingMapValue, err)
		}
	}
	return nil
}

// encodeFixedWidth appends i as an l-byte little-endian integer,
// following an Option<T> pointer indirection first if i is a pointer
// (used by the `scale:"length=N"` struct tag on an *optional* sized
// field).
func (e *Encoder) encodeFixedWidth(i any, l uint) error {
	val := reflect.ValueOf(i)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return e.writeByte(0x00)
		}
		if err := e.writeByte(0x01); err != nil {
			return err
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return e.write(serializeByWidth(val.Uint(), l))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return e.write(serializeByWidth(uint64(val.Int()), l))
	default:
		return errorf(errUnsupportedType, i)
	}
}

func serializeByWidth(x uint64, l uint) []byte {
	buf := make([]byte, l)
	for i := uint(0); i < l && i < 8; i++ {
		buf[i] = byte(x >> (8 * i))
	}
	return buf
}
