// Package scale implements the SCALE (Simple Concatenated Aggregate
// Little-Endian) binary codec used across the Polkadot/Substrate family of
// systems: fixed-width little-endian integers, a four-mode compact integer,
// optionals (with the Option<Bool> single-byte collapse), discriminated
// sums, products, fixed arrays, length-prefixed sequences/maps/strings, and
// bit-sequences.
//
// Encoding and decoding are driven by reflection: a value
// implementing Marshaler/Unmarshaler is given full control, values
// implementing VariantEncoder/VariantDecoder are treated as sums, and
// everything else falls through a type switch keyed on reflect.Kind.
package scale
