package fins

import (
	"testing"
	"time"

	"github.com/omron-fins/client/internal/finssim"
	"github.com/omron-fins/client/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *finssim.Server) {
	t.Helper()
	sim, err := finssim.New()
	require.NoError(t, err)
	t.Cleanup(sim.Close)

	host, port := sim.HostPort()
	client, err := NewClient(Settings{
		Host:     host,
		Port:     port,
		Protocol: ProtocolTCP,
		Timeout:  2 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, client.Connect())
	t.Cleanup(client.Disconnect)
	return client, sim
}

func TestClientReadWriteWords(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.Write(AddrString("DM1700"), []uint16{10, 20, 30})
	require.NoError(t, err)

	got, err := client.Read(AddrString("DM1700"), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint16{10, 20, 30}, got)
}

func TestClientReadWriteBits(t *testing.T) {
	client, _ := newTestClient(t)

	addr, err := NewBitAddress(AreaCIO, 100, 5)
	require.NoError(t, err)

	require.NoError(t, client.SetBit(Addr(addr)))
	bits, err := client.ReadBits(Addr(addr), 1)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, bits)

	require.NoError(t, client.ResetBit(Addr(addr)))
	bits, err = client.ReadBits(Addr(addr), 1)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, bits)

	require.NoError(t, client.ToggleBit(Addr(addr)))
	bits, err = client.ReadBits(Addr(addr), 1)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, bits)
}

func TestClientReadWriteReal(t *testing.T) {
	client, _ := newTestClient(t)

	require.NoError(t, client.WriteReal(AddrString("DM2000"), 3.14159))
	got, err := client.ReadReal(AddrString("DM2000"))
	require.NoError(t, err)
	assert.InDelta(t, 3.14159, got, 0.0001)
}

func TestClientReadMultiple(t *testing.T) {
	client, _ := newTestClient(t)

	require.NoError(t, client.Write(AddrString("DM10"), []uint16{111}))
	require.NoError(t, client.Write(AddrString("DM20"), []uint16{222}))
	require.NoError(t, client.Write(AddrString("CIO5"), []uint16{333}))

	result, err := client.ReadMultiple([]AddressArg{
		AddrString("DM10"),
		AddrString("DM20"),
		AddrString("CIO5"),
	})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, MultiReadResult{Address: "DM10", Value: 111}, result[0])
	assert.Equal(t, MultiReadResult{Address: "DM20", Value: 222}, result[1])
	assert.Equal(t, MultiReadResult{Address: "CIO5", Value: 333}, result[2])
}

func TestClientGetStatus(t *testing.T) {
	client, _ := newTestClient(t)

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.RunMode)

	require.NoError(t, client.Stop())
	status, err = client.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.RunMode)

	require.NoError(t, client.Run())
	status, err = client.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.RunMode)
}

func TestClientGetCPUUnitData(t *testing.T) {
	client, _ := newTestClient(t)

	data, err := client.GetCPUUnitData()
	require.NoError(t, err)
	assert.NotEmpty(t, data.ControllerModel)
	assert.NotEmpty(t, data.ControllerVersion)
}

func TestClientReadWriteClock(t *testing.T) {
	client, _ := newTestClient(t)

	clock, err := client.ReadClock()
	require.NoError(t, err)
	assert.Equal(t, 2026, clock.Year)

	newClock := Clock{Year: 2030, Month: 1, Day: 15, Hour: 9, Minute: 5, Second: 0, DayOfWeek: 2}
	require.NoError(t, client.WriteClock(newClock))

	clock, err = client.ReadClock()
	require.NoError(t, err)
	assert.Equal(t, 2030, clock.Year)
	assert.Equal(t, 1, clock.Month)
	assert.Equal(t, 15, clock.Day)
}

func TestClientPing(t *testing.T) {
	client, _ := newTestClient(t)
	assert.NoError(t, client.Ping())
}

func TestClientSIDAdvancesAcrossCalls(t *testing.T) {
	client, _ := newTestClient(t)

	var lastSID byte
	for i := 0; i < 5; i++ {
		_, err := client.Read(AddrString("DM0"), 1)
		require.NoError(t, err)
		assert.NotEqual(t, lastSID, client.sid)
		lastSID = client.sid
	}
}

func TestClientProtocolErrorDoesNotCloseTransport(t *testing.T) {
	client, _ := newTestClient(t)

	// Word offset far beyond the simulator's backing array triggers
	// EndCodeAddressRangeExceeded without touching the socket.
	_, err := client.Read(AddrString("DM9000"), 1)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, mapping.EndCodeAddressRangeExceeded, pe.EndCode)

	assert.True(t, client.Connected())

	// The session is still usable after a protocol-level rejection.
	_, err = client.Read(AddrString("DM0"), 1)
	assert.NoError(t, err)
}

func TestClientDisconnectIdempotent(t *testing.T) {
	client, _ := newTestClient(t)
	client.Disconnect()
	client.Disconnect()
	assert.False(t, client.Connected())
}

func TestWithConnection(t *testing.T) {
	sim, err := finssim.New()
	require.NoError(t, err)
	t.Cleanup(sim.Close)

	host, port := sim.HostPort()
	client, err := NewClient(Settings{
		Host:               host,
		Port:               port,
		Protocol:           ProtocolTCP,
		Timeout:            2 * time.Second,
		DisableAutoConnect: true,
	})
	require.NoError(t, err)

	called := false
	err = client.WithConnection(func(c *Client) error {
		called = true
		assert.True(t, c.Connected())
		_, rerr := c.Read(AddrString("DM0"), 1)
		return rerr
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, client.Connected())
}
