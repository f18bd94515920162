package fins

import (
	"testing"

	"github.com/omron-fins/client/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	src := Node{Network: 0, Node: 1, Unit: 0}
	dst := Node{Network: 0, Node: 10, Unit: 0}
	h := newRequestHeader(src, dst, 7, uint16(mapping.CommandMemoryAreaRead))

	encoded := h.encode()
	require.Len(t, encoded, 12)

	decoded, err := decodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
	assert.Equal(t, dst, decoded.destination())
	assert.Equal(t, src, decoded.source())
}

func TestDecodeHeaderShort(t *testing.T) {
	_, err := decodeHeader([]byte{1, 2, 3})
	assert.Error(t, err)
	var re *ReadError
	assert.ErrorAs(t, err, &re)
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	src := Node{Network: 0, Node: 10, Unit: 0}
	dst := Node{Network: 0, Node: 1, Unit: 0}
	h := newRequestHeader(src, dst, 3, uint16(mapping.CommandMemoryAreaRead))
	wire := EncodeResponse(h, mapping.EndCodeNormalCompletion, []byte{0x00, 0x2A})

	f, err := decodeFrame(wire)
	require.NoError(t, err)
	assert.Equal(t, h, f.header)
	assert.True(t, f.endCode.OK())
	assert.Equal(t, []byte{0x00, 0x2A}, f.data)
}

func TestDecodeFrameShort(t *testing.T) {
	_, err := decodeFrame(make([]byte, 13))
	assert.Error(t, err)
}

func TestCheckEndCode(t *testing.T) {
	assert.NoError(t, checkEndCode(mapping.CommandMemoryAreaRead, mapping.EndCodeNormalCompletion))

	err := checkEndCode(mapping.CommandMemoryAreaRead, mapping.EndCodeAddressRangeExceeded)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, mapping.CommandMemoryAreaRead, pe.Command)
}

func TestBuildReadPayload(t *testing.T) {
	addr, err := NewAddress(AreaDM, 1700)
	require.NoError(t, err)
	payload := buildReadPayload(addr, 10)
	assert.Equal(t, []byte{0x82, 0x06, 0xA4, 0x00, 0x00, 0x0A}, payload)
}

func TestEncodeDecodeWords(t *testing.T) {
	words := []uint16{1, 2, 3, 0xFFFF}
	encoded := encodeWords(words)
	decoded, err := decodeWords(encoded, uint16(len(words)))
	require.NoError(t, err)
	assert.Equal(t, words, decoded)
}

func TestDecodeWordsShort(t *testing.T) {
	_, err := decodeWords([]byte{0x00}, 1)
	assert.Error(t, err)
}
