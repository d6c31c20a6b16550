package scale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaohu/scale/scale"
)

func TestOptionUint32(t *testing.T) {
	v := uint32(7)
	out, err := scale.Marshal(&v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x07, 0x00, 0x00, 0x00}, out)

	var got *uint32
	require.NoError(t, scale.Unmarshal(out, &got))
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
}

func TestOptionUint32Absent(t *testing.T) {
	var p *uint32
	out, err := scale.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out)

	var got *uint32
	require.NoError(t, scale.Unmarshal(out, &got))
	assert.Nil(t, got)
}

func TestOptionBoolCollapse(t *testing.T) {
	cases := []struct {
		name string
		in   *bool
		want byte
	}{
		{"none", nil, 0x00},
		{"some true", boolPtr(true), 0x01},
		{"some false", boolPtr(false), 0x02},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := scale.Marshal(c.in)
			require.NoError(t, err)
			assert.Equal(t, []byte{c.want}, out)

			var got *bool
			require.NoError(t, scale.Unmarshal(out, &got))
			if c.in == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *c.in, *got)
		})
	}
}

func TestOptionBoolRejectsInvalidDiscriminant(t *testing.T) {
	var got *bool
	err := scale.Unmarshal([]byte{0x03}, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, scale.ErrUnexpectedValue)
}

func boolPtr(b bool) *bool { return &b }
