package fins

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// udpRecvBufferSize holds the 14-byte response head plus up to 1017
// words of read data; CONTROLLER_DATA_READ's 40-byte payload fits with
// headroom.
const udpRecvBufferSize = 2048

// udpTransport sends the whole frame as one datagram and reads one
// datagram back.
type udpTransport struct {
	conn net.Conn
}

func dialUDP(host string, port int) (*udpTransport, error) {
	conn, err := net.Dial("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, &ConnectionError{Op: "dial udp", Err: err}
	}
	return &udpTransport{conn: conn}, nil
}

func (t *udpTransport) send(ctx context.Context, frame []byte) error {
	if err := t.conn.SetWriteDeadline(deadlineFromContext(ctx)); err != nil {
		return &ConnectionError{Op: "set write deadline", Err: err}
	}
	if _, err := t.conn.Write(frame); err != nil {
		return classifyNetError("udp send", err)
	}
	return nil
}

func (t *udpTransport) recv(ctx context.Context) ([]byte, error) {
	if err := t.conn.SetReadDeadline(deadlineFromContext(ctx)); err != nil {
		return nil, &ConnectionError{Op: "set read deadline", Err: err}
	}
	buf := make([]byte, udpRecvBufferSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		return nil, classifyNetError("udp recv", err)
	}
	if n < 14 {
		return nil, &ReadError{Reason: "short datagram: no response code"}
	}
	return buf[:n], nil
}

func (t *udpTransport) close() error {
	return t.conn.Close()
}

// classifyNetError maps a net.Error into this package's error taxonomy:
// timeouts become TimeoutError, everything else is a ConnectionError.
func classifyNetError(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Op: op, Timeout: "configured deadline"}
	}
	return &ConnectionError{Op: op, Err: err}
}
