package fins

import (
	"context"
	"time"
)

// transport is the uniform send/recv contract both UDP and TCP
// adapters implement. A transport carries exactly one FINS frame per
// send/recv pair; it knows nothing about SIDs, commands, or retries.
type transport interface {
	// send transmits one complete frame.
	send(ctx context.Context, frame []byte) error
	// recv blocks for one complete response frame.
	recv(ctx context.Context) ([]byte, error)
	// close releases any underlying socket. Idempotent.
	close() error
}

// Protocol selects the transport a Client dials.
type Protocol string

const (
	ProtocolUDP Protocol = "udp"
	ProtocolTCP Protocol = "tcp"
)

// deadlineFromContext derives a time.Time deadline from a context that
// was built with context.WithTimeout, falling back to the zero Time
// (no deadline) when the context carries none.
func deadlineFromContext(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Time{}
}
