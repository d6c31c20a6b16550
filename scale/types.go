package scale

// Marshaler is implemented by types that know how to encode themselves
// directly onto the wire, bypassing the reflection-driven dispatch.
type Marshaler interface {
	MarshalSCALE() ([]byte, error)
}

// Unmarshaler is the decode-side counterpart of Marshaler. It reads
// directly from d so the cursor advances by exactly as many bytes as the
// custom shape actually occupies — unlike Marshaler, which can hand back
// a plain []byte because appending never needs to report a count.
type Unmarshaler interface {
	UnmarshalSCALE(d *Decoder) error
}

// VariantEncoder is implemented by sum types: the 1-byte index selects
// which of the n <= 256 declared variants is present, and Payload is the
// value to encode after the index (nil for an empty-payload variant).
type VariantEncoder interface {
	SelectedVariant() (index uint8, payload any, err error)
}

// VariantDecoder is the decode-side counterpart: PayloadTemplate returns a
// zero value of the type expected at index (or nil for an empty-payload
// variant), and SetVariant installs the decoded payload once it has been
// read. Returning ErrWrongTypeIndex from PayloadTemplate for an
// out-of-range index is how a wrong-type-index failure is surfaced; the
// codec itself never silently falls back.
type VariantDecoder interface {
	VariantEncoder
	PayloadTemplate(index uint8) (payload any, err error)
	SetVariant(index uint8, payload any) error
}

// BitSequence is a sequence-of-bool value. Despite the name it is not
// bit-packed on the wire: it is a compact length followed by N
// single-byte booleans, the same shape as Sequence<Bool>. The distinct
// type exists only so callers can opt into the dedicated []bool
// representation instead of []bool going through the generic slice path
// (both paths produce byte-identical output).
type BitSequence []bool
