package fins

import (
	"github.com/omron-fins/client/mapping"
)

// Write writes values to count contiguous words starting at addr.
func (c *Client) Write(addr AddressArg, values []uint16) error {
	a, err := addr.resolve()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return &InvalidAddressError{Address: a.String(), Reason: "write requires at least 1 value"}
	}

	payload := buildWritePayload(a, uint16(len(values)), encodeWords(values))
	_, err = c.sendCommand(mapping.CommandMemoryAreaWrite, payload)
	if err != nil {
		return wrapWriteErr(a, err)
	}
	return nil
}

// WriteBits writes a run of bits starting at the bit offset encoded in
// addr.
func (c *Client) WriteBits(addr AddressArg, values []bool) error {
	a, err := addr.resolve()
	if err != nil {
		return err
	}
	if !a.Area.SupportsBit() || a.Bit == nil {
		return &InvalidAddressError{Address: a.String(), Reason: "area/address is not bit-addressable"}
	}
	bytes := make([]byte, len(values))
	for i, v := range values {
		if v {
			bytes[i] = 0x01
		}
	}
	payload := buildWritePayload(a, uint16(len(values)), bytes)
	_, err = c.sendCommand(mapping.CommandMemoryAreaWrite, payload)
	return wrapWriteErr(a, err)
}

// SetBit, ResetBit and ToggleBit are single-bit conveniences over
// WriteBits/ReadBits.
func (c *Client) SetBit(addr AddressArg) error   { return c.writeSingleBit(addr, true) }
func (c *Client) ResetBit(addr AddressArg) error { return c.writeSingleBit(addr, false) }

func (c *Client) ToggleBit(addr AddressArg) error {
	a, err := addr.resolve()
	if err != nil {
		return err
	}
	bits, err := c.ReadBits(Addr(a), 1)
	if err != nil {
		return err
	}
	return c.writeSingleBit(Addr(a), !bits[0])
}

func (c *Client) writeSingleBit(addr AddressArg, value bool) error {
	return c.WriteBits(addr, []bool{value})
}

// WriteReal writes a 32-bit OMRON REAL across two consecutive words.
func (c *Client) WriteReal(addr AddressArg, value float32) error {
	a, err := addr.resolve()
	if err != nil {
		return err
	}
	wire := encodeReal(value)
	payload := buildWritePayload(a, 2, wire[:])
	_, err = c.sendCommand(mapping.CommandMemoryAreaWrite, payload)
	return wrapWriteErr(a, err)
}

// WriteClock sets the PLC's real-time clock. Each field is sent as a
// raw integer byte (not packed BCD), matching ReadClock. DayOfWeek is
// optional per OMRON convention; 0 is accepted as "unspecified/Sunday".
func (c *Client) WriteClock(clock Clock) error {
	payload := []byte{
		byte(yearTo2Digit(clock.Year)),
		byte(clock.Month),
		byte(clock.Day),
		byte(clock.Hour),
		byte(clock.Minute),
		byte(clock.Second),
		byte(clock.DayOfWeek),
	}
	_, err := c.sendCommand(mapping.CommandClockWrite, payload)
	return err
}

func yearTo2Digit(year int) int {
	if year >= 2000 {
		return year - 2000
	}
	return year - 1900
}

// Run sets the PLC to run mode. Zero-payload command; success carries
// no data.
func (c *Client) Run() error {
	_, err := c.sendCommand(mapping.CommandRun, nil)
	return err
}

// Stop sets the PLC to stop (program) mode.
func (c *Client) Stop() error {
	_, err := c.sendCommand(mapping.CommandStop, nil)
	return err
}

func wrapWriteErr(a Address, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *ProtocolError, *TimeoutError, *ConnectionError:
		return err
	default:
		return &WriteError{Address: a.String(), Reason: err.Error()}
	}
}
