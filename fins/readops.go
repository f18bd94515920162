package fins

import (
	"errors"
	"strings"

	"github.com/omron-fins/client/mapping"
)

// Read reads count contiguous words starting at addr.
func (c *Client) Read(addr AddressArg, count uint16) ([]uint16, error) {
	a, err := addr.resolve()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &InvalidAddressError{Address: a.String(), Reason: "count must be at least 1"}
	}

	payload := buildReadPayload(a, count)
	resp, err := c.sendCommand(mapping.CommandMemoryAreaRead, payload)
	if err != nil {
		return nil, wrapReadErr(a, err)
	}

	words, err := decodeWords(resp.data, count)
	if err != nil {
		return nil, wrapReadErr(a, err)
	}
	return words, nil
}

// ReadBits reads count consecutive bits starting at the bit offset
// already encoded in addr.
func (c *Client) ReadBits(addr AddressArg, count uint16) ([]bool, error) {
	a, err := addr.resolve()
	if err != nil {
		return nil, err
	}
	if !a.Area.SupportsBit() || a.Bit == nil {
		return nil, &InvalidAddressError{Address: a.String(), Reason: "area/address is not bit-addressable"}
	}

	payload := buildReadPayload(a, count)
	resp, err := c.sendCommand(mapping.CommandMemoryAreaRead, payload)
	if err != nil {
		return nil, wrapReadErr(a, err)
	}
	if len(resp.data) < int(count) {
		return nil, wrapReadErr(a, &ReadError{Reason: "short bit response"})
	}
	out := make([]bool, count)
	for i := range out {
		out[i] = resp.data[i]&0x01 != 0
	}
	return out, nil
}

// MultiReadResult is one entry of a ReadMultiple response: the
// canonicalized textual form of the requested address and the word
// read back for it.
type MultiReadResult struct {
	Address string
	Value   uint16
}

// ReadMultiple reads up to 32 disparate addresses in a single command.
// Results are returned in the same order as addrs (a plain
// map[string]uint16 can't guarantee that, since Go map iteration order
// is unspecified); callers that want a lookup by address should index
// the slice themselves, keyed on the Address field rather than the
// raw argument they passed in, since Address holds the canonicalized
// form.
func (c *Client) ReadMultiple(addrs []AddressArg) ([]MultiReadResult, error) {
	if len(addrs) == 0 {
		return nil, &InvalidAddressError{Reason: "read_multiple requires at least 1 address"}
	}
	if len(addrs) > 32 {
		return nil, &InvalidAddressError{Reason: "read_multiple accepts at most 32 addresses"}
	}

	resolved := make([]Address, len(addrs))
	for i, a := range addrs {
		r, err := a.resolve()
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	payload := buildMultiReadPayload(resolved)
	resp, err := c.sendCommand(mapping.CommandMultipleMemoryAreaRead, payload)
	if err != nil {
		return nil, err
	}

	words, err := decodeWords(resp.data, uint16(len(resolved)))
	if err != nil {
		return nil, &ReadError{Reason: "read_multiple: " + err.Error()}
	}

	out := make([]MultiReadResult, len(resolved))
	for i, a := range resolved {
		out[i] = MultiReadResult{Address: a.String(), Value: words[i]}
	}
	return out, nil
}

// ReadReal reads a 32-bit OMRON REAL (word-swapped IEEE-754 single
// precision) from two consecutive words.
func (c *Client) ReadReal(addr AddressArg) (float32, error) {
	a, err := addr.resolve()
	if err != nil {
		return 0, err
	}
	payload := buildReadPayload(a, 2)
	resp, err := c.sendCommand(mapping.CommandMemoryAreaRead, payload)
	if err != nil {
		return 0, wrapReadErr(a, err)
	}
	if len(resp.data) < 4 {
		return 0, wrapReadErr(a, &ReadError{Reason: "insufficient data for REAL value"})
	}
	var raw [4]byte
	copy(raw[:], resp.data[:4])
	return decodeReal(raw), nil
}

// Status is the controller run/program/error state decoded by GetStatus.
type Status struct {
	RunMode       bool
	ProgramMode   bool
	FatalError    bool
	NonFatalError bool
}

// GetStatus interrogates controller run/program/error state.
func (c *Client) GetStatus() (Status, error) {
	resp, err := c.sendCommand(mapping.CommandControllerStatusRead, nil)
	if err != nil {
		return Status{}, err
	}
	if len(resp.data) < 1 {
		return Status{}, &ReadError{Reason: "controller status response empty"}
	}
	b := resp.data[0]
	return Status{
		RunMode:       b&0x01 != 0,
		ProgramMode:   b&0x02 != 0,
		FatalError:    b&0x40 != 0,
		NonFatalError: b&0x80 != 0,
	}, nil
}

// CPUUnitData holds the model and firmware version strings reported by
// CONTROLLER_DATA_READ.
type CPUUnitData struct {
	ControllerModel   string
	ControllerVersion string
}

func (c *Client) GetCPUUnitData() (CPUUnitData, error) {
	resp, err := c.sendCommand(mapping.CommandControllerDataRead, nil)
	if err != nil {
		return CPUUnitData{}, err
	}
	if len(resp.data) < 40 {
		return CPUUnitData{}, &ReadError{Reason: "controller data response shorter than 40 bytes"}
	}
	return CPUUnitData{
		ControllerModel:   strings.TrimRight(string(resp.data[0:20]), "\x00 "),
		ControllerVersion: strings.TrimRight(string(resp.data[20:40]), "\x00 "),
	}, nil
}

// Clock is the decoded PLC real-time clock.
type Clock struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	DayOfWeek            int
}

// ReadClock reads the PLC's real-time clock: YY MM DD hh mm ss DOW, each
// a raw integer byte (not packed BCD). Year is expanded as 2000+YY when
// YY<50, else 1900+YY.
func (c *Client) ReadClock() (Clock, error) {
	resp, err := c.sendCommand(mapping.CommandClockRead, nil)
	if err != nil {
		return Clock{}, err
	}
	if len(resp.data) < 7 {
		return Clock{}, &ReadError{Reason: "clock response shorter than 7 bytes"}
	}

	fullYear := int(resp.data[0])
	if fullYear < 50 {
		fullYear += 2000
	} else {
		fullYear += 1900
	}

	return Clock{
		Year:      fullYear,
		Month:     int(resp.data[1]),
		Day:       int(resp.data[2]),
		Hour:      int(resp.data[3]),
		Minute:    int(resp.data[4]),
		Second:    int(resp.data[5]),
		DayOfWeek: int(resp.data[6]),
	}, nil
}

func wrapReadErr(a Address, err error) error {
	var re *ReadError
	if errors.As(err, &re) {
		re.Address = a.String()
		return re
	}
	return err
}
