package scale

// DefaultMaxItemsZeroSized is the absolute cap on a sequence length N when
// the element shape is statically zero-sized (an empty product): even a
// probe-and-grow allocation strategy needs an absolute ceiling in that case.
const DefaultMaxItemsZeroSized = 1 << 20

// Options controls the decoder's policy knobs. The zero value is
// the permissive, interop-friendly default used across Polkadot/Substrate
// tooling.
type Options struct {
	// StrictMinimalCompact rejects non-minimal compact-integer encodings
	// on decode (mode-3 with leading zero bytes, or a value that would
	// have fit a smaller mode). Default false: accept.
	StrictMinimalCompact bool

	// MaxItemsZeroSized bounds the declared length of a sequence whose
	// element shape is zero-sized. Zero means DefaultMaxItemsZeroSized.
	MaxItemsZeroSized uint64

	// RequireFullConsumption makes the top-level decode convenience
	// surface ErrExtraData when bytes remain after decoding the value.
	RequireFullConsumption bool
}

func (o Options) maxItemsZeroSized() uint64 {
	if o.MaxItemsZeroSized == 0 {
		return DefaultMaxItemsZeroSized
	}
	return o.MaxItemsZeroSized
}

// DefaultOptions returns the permissive defaults used when no explicit
// Options value is supplied.
func DefaultOptions() Options {
	return Options{}
}
