package fins

import (
	"fmt"

	"github.com/omron-fins/client/mapping"
)

// Every error returned by a Client operation or by address parsing
// resolves to exactly one of these kinds. Callers branch on kind with
// errors.As, not string matching. Argument validation in NewClient and
// NewNode returns plain errors that match none of these kinds.

// ConnectionError signals the transport could not be established, or
// was lost mid-operation.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fins: connection error during %s", e.Op)
	}
	return fmt.Sprintf("fins: connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError signals a send/recv exceeded the configured deadline.
type TimeoutError struct {
	Op      string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fins: %s timed out after %s", e.Op, e.Timeout)
}

// InvalidAddressError signals a textual address failed to parse, or a
// request exceeded a structural limit (e.g. more than 32 entries in a
// multi-read).
type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("fins: invalid address %q: %s", e.Address, e.Reason)
}

// ReadError signals a read failed for reasons other than a protocol
// end-code or a timeout (insufficient payload bytes, malformed
// response).
type ReadError struct {
	Address string
	Reason  string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("fins: read from %s failed: %s", e.Address, e.Reason)
}

// WriteError is the write-side symmetric counterpart to ReadError.
type WriteError struct {
	Address string
	Reason  string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("fins: write to %s failed: %s", e.Address, e.Reason)
}

// ProtocolError signals the PLC responded but signalled a non-zero
// (MRES, SRES) end code.
type ProtocolError struct {
	Command mapping.Command
	EndCode mapping.EndCode
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("fins: %s rejected by controller: %s", e.Command, e.EndCode)
}
