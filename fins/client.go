// Package fins implements a client for OMRON's FINS (Factory Interface
// Network Service) protocol: address parsing, frame framing, UDP/TCP
// transports, and a synchronous session type tying them together.
package fins

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omron-fins/client/mapping"
)

// Settings configures a Client. Host is the only required field; every
// other field has the default noted below.
type Settings struct {
	Host     string        // PLC IPv4 address or hostname. Required.
	Port     int           // FINS port. Default 9600.
	Protocol Protocol      // "udp" or "tcp". Default ProtocolUDP.
	Timeout  time.Duration // per-operation send/recv deadline. Default 5s.

	// DisableAutoConnect turns off lazy connection-on-first-operation.
	// Zero value is false, matching the default of auto-connect enabled;
	// set true to require an explicit Connect call first.
	DisableAutoConnect bool

	ICF byte
	DNA byte
	DA1 byte
	DA2 byte
	SNA byte
	SA1 byte
	SA2 byte

	// Logger receives structured wire traces. Defaults to
	// logrus.StandardLogger() when nil.
	Logger *logrus.Logger
}

// withDefaults fills in zero-value fields with their documented
// defaults. Host is left to the caller to validate.
func (s Settings) withDefaults() Settings {
	if s.Port == 0 {
		s.Port = 9600
	}
	if s.Protocol == "" {
		s.Protocol = ProtocolUDP
	}
	if s.Timeout == 0 {
		s.Timeout = 5 * time.Second
	}
	if s.ICF == 0 {
		s.ICF = DefaultICF
	}
	if s.Logger == nil {
		s.Logger = logrus.StandardLogger()
	}
	return s
}

// Client is a synchronous, blocking FINS session. It owns exactly one
// transport and serializes whole request/response exchanges with a
// mutex: at most one command is ever in flight per Client.
type Client struct {
	mu sync.Mutex

	settings Settings
	src, dst Node
	sid      byte
	tr       transport
	log      *logrus.Entry

	// autoConnectNodes is true once a TCP handshake has assigned node
	// numbers, in which case src/dst track the handshake result rather
	// than the caller-supplied SA1/DA1.
	autoConnectNodes bool
}

// NewClient builds a disconnected Client. Connect (or the first
// operation, unless DisableAutoConnect is set) establishes the transport.
func NewClient(settings Settings) (*Client, error) {
	if settings.Host == "" {
		return nil, fmt.Errorf("fins: Settings.Host is required")
	}
	s := settings.withDefaults()
	if s.Protocol != ProtocolUDP && s.Protocol != ProtocolTCP {
		return nil, fmt.Errorf("fins: unsupported protocol %q", s.Protocol)
	}

	c := &Client{
		settings: s,
		src:      Node{Network: s.SNA, Node: s.SA1, Unit: s.SA2},
		dst:      Node{Network: s.DNA, Node: s.DA1, Unit: s.DA2},
		log:      s.Logger.WithField("component", "fins.client"),
	}
	return c, nil
}

// Connected reports whether the underlying transport is established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr != nil
}

// Connect establishes the transport. Calling Connect while already
// connected is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	if c.tr != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.settings.Timeout)
	defer cancel()

	switch c.settings.Protocol {
	case ProtocolUDP:
		tr, err := dialUDP(c.settings.Host, c.settings.Port)
		if err != nil {
			return err
		}
		c.tr = tr
	case ProtocolTCP:
		tr, err := dialTCP(ctx, c.settings.Host, c.settings.Port)
		if err != nil {
			return err
		}
		c.tr = tr
		// Real FINS/TCP assigns the node numbers during the handshake;
		// a Client addressing that PLC over TCP always adopts them.
		c.src.Node = tr.ClientNode
		c.dst.Node = tr.ServerNode
		c.autoConnectNodes = true
	}

	c.log.WithFields(logrus.Fields{
		"host":     c.settings.Host,
		"port":     c.settings.Port,
		"protocol": c.settings.Protocol,
	}).Debug("fins: connected")
	return nil
}

// Disconnect releases the transport. It is idempotent and never
// returns an error: teardown failures are logged, not surfaced,
// because a caller tearing down a session has nothing useful to do
// with a close error.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tr == nil {
		return
	}
	if err := c.tr.close(); err != nil {
		c.log.WithError(err).Debug("fins: error closing transport during disconnect")
	}
	c.tr = nil
	c.autoConnectNodes = false
}

// Reconnect tears down the current transport (if any) and dials a
// fresh one. There is no automatic background retry -- this is a
// single explicit action the caller drives.
func (c *Client) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tr != nil {
		c.tr.close()
		c.tr = nil
		c.autoConnectNodes = false
	}
	return c.connectLocked()
}

// WithConnection connects (if not already connected), runs fn, and
// disconnects on every exit path including a panic unwinding through
// fn, since Go has no implicit scope-exit hook.
func (c *Client) WithConnection(fn func(*Client) error) error {
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Disconnect()
	return fn(c)
}

func (c *Client) ensureConnectedLocked() error {
	if c.tr != nil {
		return nil
	}
	if c.settings.DisableAutoConnect {
		return &ConnectionError{Op: "ensure connected", Err: fmt.Errorf("not connected and auto-connect disabled")}
	}
	return c.connectLocked()
}

// nextSID advances the 8-bit service-id counter modulo 256, skipping
// zero (some FINS gateways treat SID 0 as "no id").
func (c *Client) nextSID() byte {
	c.sid++
	if c.sid == 0 {
		c.sid = 1
	}
	return c.sid
}

// sendCommand serializes the whole exchange under the session lock:
// build the header, frame the payload, transmit, await exactly one
// reply, validate it, and return its decoded frame. The lock is held
// end-to-end so a timeout can never bleed partial state into the next
// caller's operation.
func (c *Client) sendCommand(command mapping.Command, payload []byte) (frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnectedLocked(); err != nil {
		return frame{}, err
	}

	sid := c.nextSID()
	header := newRequestHeader(c.src, c.dst, sid, uint16(command))
	wire := encodeRequest(header, payload)

	entry := c.log.WithFields(logrus.Fields{"command": command.String(), "sid": sid})
	entry.Debug("fins: sending command")

	ctx, cancel := context.WithTimeout(context.Background(), c.settings.Timeout)
	defer cancel()

	if err := c.tr.send(ctx, wire); err != nil {
		c.closeOnTransportError(err)
		return frame{}, err
	}

	respBytes, err := c.tr.recv(ctx)
	if err != nil {
		c.closeOnTransportError(err)
		return frame{}, err
	}

	resp, err := decodeFrame(respBytes)
	if err != nil {
		return frame{}, err
	}

	entry.WithField("end_code", resp.endCode.String()).Debug("fins: received response")

	if err := checkEndCode(command, resp.endCode); err != nil {
		// A protocol-level rejection does not close the transport; the
		// session remains usable and SID has already advanced.
		return resp, err
	}
	return resp, nil
}

// closeOnTransportError applies the conservative policy: a timeout or
// socket-level error leaves the transport in an unknown state, so this
// closes it. The next operation dials a fresh transport through
// auto-connect; with DisableAutoConnect set it fails with a
// ConnectionError until Connect or Reconnect is called.
func (c *Client) closeOnTransportError(err error) {
	var timeoutErr *TimeoutError
	var connErr *ConnectionError
	if !errors.As(err, &timeoutErr) && !errors.As(err, &connErr) {
		return
	}
	if c.tr != nil {
		c.tr.close()
		c.tr = nil
		c.autoConnectNodes = false
	}
}
