package scale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaohu/scale/scale"
)

func TestFixedWidthUnsigned(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []byte
	}{
		{"uint8", uint8(69), []byte{0x45}},
		{"uint16", uint16(69), []byte{0x45, 0x00}},
		{"uint16 max", uint16(0xffff), []byte{0xff, 0xff}},
		{"uint32", uint32(0x01020304), []byte{0x04, 0x03, 0x02, 0x01}},
		{"uint64", uint64(0x0102030405060708), []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := scale.Marshal(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestFixedWidthSignedRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   int16
		want []byte
	}{
		{"minus one", -1, []byte{0xff, 0xff}},
		{"positive", 69, []byte{0x45, 0x00}},
		{"min", -32768, []byte{0x00, 0x80}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := scale.Marshal(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)

			var got int16
			require.NoError(t, scale.Unmarshal(out, &got))
			assert.Equal(t, c.in, got)
		})
	}
}

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		out, err := scale.Marshal(v)
		require.NoError(t, err)
		if v {
			assert.Equal(t, []byte{0x01}, out)
		} else {
			assert.Equal(t, []byte{0x00}, out)
		}

		var got bool
		require.NoError(t, scale.Unmarshal(out, &got))
		assert.Equal(t, v, got)
	}
}

func TestBoolRejectsInvalidByte(t *testing.T) {
	var got bool
	err := scale.Unmarshal([]byte{0x02}, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrUnexpectedValue)
}

func TestUint128RoundTrip(t *testing.T) {
	v := scale.Uint128{Lo: 0x0102030405060708, Hi: 0x1112131415161718}
	out, err := scale.Marshal(v)
	require.NoError(t, err)
	require.Len(t, out, 16)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11}, out)

	var got scale.Uint128
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, v, got)
}

func TestInt128RoundTrip(t *testing.T) {
	v := scale.Int128{Lo: 0xffffffffffffffff, Hi: 0xffffffffffffffff}
	out, err := scale.Marshal(v)
	require.NoError(t, err)

	var got scale.Int128
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Equal(t, v, got)
}
