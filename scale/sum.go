package scale

import (
	"fmt"
	"reflect"
)

// Variant is a ready-made VariantEncoder for callers who don't want to
// implement the interface on their own type: Index selects which of the
// schema's declared alternatives is present, Value is its payload (nil
// for an empty-payload variant).
type Variant struct {
	Index uint8
	Value any
}

// SelectedVariant implements VariantEncoder.
func (v Variant) SelectedVariant() (uint8, any, error) {
	return v.Index, v.Value, nil
}

// EncodeSum appends the sum-type shape directly: a 1-byte index, then the
// payload's encoding. n is the declared variant count; an index outside
// 0..n-1 is refused with ErrWrongTypeIndex before anything is written, and
// n > 256 is refused with ErrUnsupportedShape since a single byte can't
// index more than 256 variants.
func (e *Encoder) EncodeSum(index uint8, n int, payload any) error {
	if n > 256 {
		return fmt.Errorf("%w: sum type has %d variants, max is 256", ErrUnsupportedShape, n)
	}
	if int(index) >= n {
		return fmt.Errorf("%w: index %d, %d variants", ErrWrongTypeIndex, index, n)
	}
	if err := e.writeByte(index); err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	return e.marshal(payload)
}

// DecodeSum reads the sum-type shape given the schema's ordered list of
// payload zero-values (nil entries mark an empty-payload variant). It
// fails with ErrWrongTypeIndex when the wire index is >= the schema
// length, never silently defaulting to any variant.
func (d *Decoder) DecodeSum(templates []any) (index uint8, payload any, err error) {
	if len(templates) > 256 {
		return 0, nil, fmt.Errorf("%w: sum type has %d variants, max is 256", ErrUnsupportedShape, len(templates))
	}
	b, err := d.NextByte()
	if err != nil {
		return 0, nil, err
	}
	if int(b) >= len(templates) {
		return 0, nil, fmt.Errorf("%w: index %d, %d variants", ErrWrongTypeIndex, b, len(templates))
	}
	tmpl := templates[b]
	if tmpl == nil {
		return b, nil, nil
	}
	v := reflect.New(reflect.TypeOf(tmpl))
	v.Elem().Set(reflect.ValueOf(tmpl))
	if err := d.unmarshal(v.Elem()); err != nil {
		return 0, nil, err
	}
	return b, v.Elem().Interface(), nil
}
