package scale_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaohu/scale/scale"
)

type product struct {
	A uint8
	B uint16
	C bool
}

func TestProductRoundTrip(t *testing.T) {
	in := product{A: 1, B: 2, C: true}
	out, err := scale.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x01}, out)

	var got product
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, in, got)
}

func TestEmptyStruct(t *testing.T) {
	type empty struct{}
	out, err := scale.Marshal(empty{})
	require.NoError(t, err)
	assert.Empty(t, out)

	var got empty
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, empty{}, got)
}

type withLengthTag struct {
	Count uint64 `scale:"length=4"`
}

func TestStructLengthTagOverridesDefaultWidth(t *testing.T) {
	in := withLengthTag{Count: 0x01020304}
	out, err := scale.Marshal(in)
	require.NoError(t, err)
	// length=4 forces a 4-byte encoding instead of uint64's native 8.
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, out)

	var got withLengthTag
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, in, got)
}

type withCompactTag struct {
	N uint64 `scale:"encoding=compact"`
}

func TestStructCompactTag(t *testing.T) {
	in := withCompactTag{N: 16384}
	out, err := scale.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0x01, 0x00}, out)

	var got withCompactTag
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, in, got)
}

type withSkippedField struct {
	Kept   uint8
	Hidden string `scale:"-"`
}

func TestStructSkipTag(t *testing.T) {
	in := withSkippedField{Kept: 5, Hidden: "not on the wire"}
	out, err := scale.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05}, out)

	var got withSkippedField
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, uint8(5), got.Kept)
	assert.Empty(t, got.Hidden)
}

func TestEd25519PublicKeyFixedShape(t *testing.T) {
	pk := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range pk {
		pk[i] = byte(i)
	}

	out, err := scale.Marshal(pk)
	require.NoError(t, err)
	// No length prefix: a fixed-size byte shape, not a generic sequence.
	assert.Equal(t, []byte(pk), out)

	var got ed25519.PublicKey
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, pk, got)
}
