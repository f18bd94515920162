package fins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressWordRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"DM1700", "DM1700"},
		{"  dm100  ", "DM100"},
		{"D200", "DM200"},
		{"CIO0", "CIO0"},
		{"CNT5", "TIM5"},
	}
	for _, tc := range cases {
		a, err := ParseAddress(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, a.String(), tc.in)
	}
}

func TestParseAddressBitRoundTrip(t *testing.T) {
	a, err := ParseAddress("CIO100.05")
	require.NoError(t, err)
	require.NotNil(t, a.Bit)
	assert.Equal(t, AreaCIO, a.Area)
	assert.EqualValues(t, 100, a.Word)
	assert.EqualValues(t, 5, *a.Bit)
	assert.Equal(t, "CIO100.05", a.String())
}

func TestParseAddressErrors(t *testing.T) {
	cases := []string{
		"",
		"100",
		"DM",
		"DM70000",
		"CIO1.2.3",
		"CIO1.16",
		"XY100",
	}
	for _, in := range cases {
		_, err := ParseAddress(in)
		assert.Error(t, err, in)
		var invalid *InvalidAddressError
		assert.ErrorAs(t, err, &invalid, in)
	}
}

func TestAddressWireRoundTrip(t *testing.T) {
	bit := uint8(3)
	a := Address{Area: AreaDM, Word: 1700, Bit: &bit}
	wire := a.WireBytes()
	decoded, err := DecodeAddress(wire[:])
	require.NoError(t, err)
	assert.Equal(t, a.Area, decoded.Area)
	assert.Equal(t, a.Word, decoded.Word)
	require.NotNil(t, decoded.Bit)
	assert.Equal(t, *a.Bit, *decoded.Bit)
}

func TestAddressWireRoundTripWordOnly(t *testing.T) {
	a := Address{Area: AreaCIO, Word: 42}
	wire := a.WireBytes()
	assert.Equal(t, [4]byte{byte(AreaCIO), 0x00, 0x2A, 0x00}, wire)
	decoded, err := DecodeAddress(wire[:])
	require.NoError(t, err)
	assert.Nil(t, decoded.Bit)
	assert.Equal(t, a, decoded)
}

func TestAddressArgResolve(t *testing.T) {
	fromText := AddrString("DM100")
	resolved, err := fromText.resolve()
	require.NoError(t, err)
	assert.Equal(t, AreaDM, resolved.Area)

	want, _ := NewAddress(AreaHR, 5)
	fromValue := Addr(want)
	resolved, err = fromValue.resolve()
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}
