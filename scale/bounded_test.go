package scale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaohu/scale/scale"
)

func TestDecodeSliceRejectsLengthExceedingRemainingBytes(t *testing.T) {
	// Declares a length of 1000 uint32 elements (4 bytes each, 4000 bytes
	// needed) but supplies only 4 bytes of payload after the length prefix.
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeCompactUint64(1000))
	require.NoError(t, e.EncodeUint8(1))
	require.NoError(t, e.EncodeUint8(2))
	require.NoError(t, e.EncodeUint8(3))
	require.NoError(t, e.EncodeUint8(4))
	raw := e.Bytes()

	var got []uint32
	err := scale.Unmarshal(raw, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrTooManyItems)
	assert.Nil(t, got)
}

type zeroSized struct{}

func TestDecodeSliceOfZeroSizedElementsCapsAtAbsoluteCeiling(t *testing.T) {
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeCompactUint64(uint64(scale.DefaultMaxItemsZeroSized)+1))
	raw := e.Bytes()

	var got []zeroSized
	err := scale.Unmarshal(raw, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrTooManyItems)
}

func TestDecodeSliceOfZeroSizedElementsWithinCeilingDecodesFine(t *testing.T) {
	opts := scale.DefaultOptions()
	opts.MaxItemsZeroSized = 10
	e := scale.NewEncoderWithOptions(opts)
	require.NoError(t, e.EncodeCompactUint64(5))
	raw := e.Bytes()

	d := scale.NewDecoderWithOptions(raw, opts)
	var got []zeroSized
	require.NoError(t, d.Decode(&got))
	assert.Len(t, got, 5)
}

func TestDecodeMapRejectsLengthExceedingRemainingBytes(t *testing.T) {
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeCompactUint64(1000))
	raw := e.Bytes()

	var got map[uint32]uint32
	err := scale.Unmarshal(raw, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrTooManyItems)
}

func TestRequireFullConsumptionRejectsTrailingBytes(t *testing.T) {
	out, err := scale.Marshal(uint8(1))
	require.NoError(t, err)
	out = append(out, 0xff)

	opts := scale.DefaultOptions()
	opts.RequireFullConsumption = true

	var got uint8
	err = scale.UnmarshalWithOptions(out, &got, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrExtraData)
}

func TestTrailingBytesAreIgnoredByDefault(t *testing.T) {
	out, err := scale.Marshal(uint8(1))
	require.NoError(t, err)
	out = append(out, 0xff, 0xff)

	var got uint8
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, uint8(1), got)
}

func TestDecodeBytesRejectsLengthExceedingRemaining(t *testing.T) {
	e := scale.NewEncoder()
	require.NoError(t, e.EncodeCompactUint64(100))
	raw := e.Bytes()

	d := scale.NewDecoder(raw)
	_, err := d.DecodeBytes()
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrTooManyItems)
}

func TestNotEnoughDataForFixedWidthRead(t *testing.T) {
	var got uint32
	err := scale.Unmarshal([]byte{1, 2}, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrNotEnoughData)
}
