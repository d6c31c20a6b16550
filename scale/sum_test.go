package scale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaohu/scale/scale"
)

func TestEncodeSumWithPayload(t *testing.T) {
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeSum(2, 4, uint8(7)))
	assert.Equal(t, []byte{0x02, 0x07}, e.Bytes())
}

func TestDecodeSumWithPayload(t *testing.T) {
	d := scale.NewDecoder([]byte{0x02, 0x07})
	index, payload, err := d.DecodeSum([]any{uint8(0), uint8(0), uint8(0), uint8(0)})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), index)
	assert.Equal(t, uint8(7), payload)
}

func TestEncodeSumEmptyPayloadVariant(t *testing.T) {
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeSum(1, 3, nil))
	assert.Equal(t, []byte{0x01}, e.Bytes())
}

func TestEncodeSumWrongTypeIndex(t *testing.T) {
	e := scale.NewEncoder()
	err := e.EncodeSum(5, 4, uint8(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrWrongTypeIndex)
	assert.Zero(t, e.Len(), "a rejected index must not write anything")
}

func TestDecodeSumWrongTypeIndex(t *testing.T) {
	d := scale.NewDecoder([]byte{0x09})
	_, _, err := d.DecodeSum([]any{uint8(0), uint8(0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrWrongTypeIndex)
}

func TestEncodeSumTooManyVariants(t *testing.T) {
	e := scale.NewEncoder()
	err := e.EncodeSum(0, 257, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrUnsupportedShape)
}

func TestVariantEncoderViaReadyMadeVariant(t *testing.T) {
	out, err := scale.Marshal(scale.Variant{Index: 3, Value: uint16(500)})
	require.NoError(t, err)
	assert.Equal(t, byte(3), out[0])

	gotIndex, gotPayload, err := scale.NewDecoder(out).DecodeSum(
		[]any{nil, nil, nil, uint16(0)},
	)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), gotIndex)
	assert.Equal(t, uint16(500), gotPayload)
}
