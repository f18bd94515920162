package fins

import (
	"net"
	"testing"
	"time"

	"github.com/omron-fins/client/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// udpEcho starts a minimal loop-back UDP responder: it echoes back a
// canned read response for any MEMORY_AREA_READ request it receives,
// regardless of content. Good enough to drive udpTransport without
// standing up the full finssim server over UDP.
func udpEcho(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 2048)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			req, err := DecodeRequest(buf[:n])
			if err != nil {
				continue
			}
			resp := ResponseHeader(req.Header)
			wire := EncodeResponse(resp, mapping.EndCodeNormalCompletion, []byte{0x00, 0x07})
			conn.WriteToUDP(wire, addr)
		}
	}()
	return conn
}

func TestUDPClientReadRoundTrip(t *testing.T) {
	conn := udpEcho(t)
	port := conn.LocalAddr().(*net.UDPAddr).Port

	client, err := NewClient(Settings{
		Host:     "127.0.0.1",
		Port:     port,
		Protocol: ProtocolUDP,
		Timeout:  2 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, client.Connect())
	t.Cleanup(client.Disconnect)

	got, err := client.Read(AddrString("DM100"), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint16{7}, got)
}

func TestUDPClientTimeout(t *testing.T) {
	// A socket that accepts datagrams but never answers stands in for a
	// PLC that is unreachable: the client must surface a TimeoutError
	// and tear the transport down, so the next call dials a fresh one.
	silent, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { silent.Close() })
	port := silent.LocalAddr().(*net.UDPAddr).Port

	client, err := NewClient(Settings{
		Host:     "127.0.0.1",
		Port:     port,
		Protocol: ProtocolUDP,
		Timeout:  100 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, client.Connect())

	_, err = client.Read(AddrString("DM100"), 1)
	require.Error(t, err)
	var timeoutErr *TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
	assert.False(t, client.Connected())
}
