package fins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeValidation(t *testing.T) {
	n, err := NewNode(0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, Node{Network: 0, Node: 10, Unit: 0}, n)

	_, err = NewNode(128, 0, 0)
	assert.Error(t, err)

	_, err = NewNode(0, 255, 0)
	assert.Error(t, err)

	_, err = NewNode(0, 0, 16)
	assert.Error(t, err)
}

func TestPLCAndSupervisorNode(t *testing.T) {
	plc, err := PLCNode(0, 10)
	require.NoError(t, err)
	assert.Equal(t, byte(0), plc.Unit)

	sup, err := SupervisorNode(0, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(0), sup.Unit)
}
