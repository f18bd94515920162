package fins

import (
	"encoding/binary"

	"github.com/omron-fins/client/mapping"
)

// frame is a fully decoded FINS response: header, end code, and the
// payload that follows it.
type frame struct {
	header  Header
	endCode mapping.EndCode
	data    []byte
}

// encodeRequest builds the wire bytes for a command frame: the 12-byte
// header followed by the command-specific payload.
func encodeRequest(h Header, payload []byte) []byte {
	out := make([]byte, 0, 12+len(payload))
	out = append(out, h.encode()...)
	out = append(out, payload...)
	return out
}

// decodeFrame parses a FINS response: 12-byte header, 2-byte end code
// (MRES, SRES), then payload. A response shorter than 14 bytes cannot
// have its end code extracted and is a short-frame failure.
func decodeFrame(b []byte) (frame, error) {
	if len(b) < 14 {
		return frame{}, &ReadError{Reason: "short frame: fewer than 14 bytes, no response code"}
	}
	h, err := decodeHeader(b)
	if err != nil {
		return frame{}, err
	}
	return frame{
		header:  h,
		endCode: mapping.EndCode{MRES: b[12], SRES: b[13]},
		data:    b[14:],
	}, nil
}

// checkEndCode turns a non-success end code into a ProtocolError.
func checkEndCode(command mapping.Command, ec mapping.EndCode) error {
	if ec.OK() {
		return nil
	}
	return &ProtocolError{Command: command, EndCode: ec}
}

// --- command-specific payload builders -------------------------------

func buildReadPayload(addr Address, count uint16) []byte {
	wire := addr.WireBytes()
	payload := make([]byte, 0, 6)
	payload = append(payload, wire[:]...)
	payload = append(payload, 0, 0)
	binary.BigEndian.PutUint16(payload[4:6], count)
	return payload
}

func buildWritePayload(addr Address, count uint16, words []byte) []byte {
	payload := buildReadPayload(addr, count)
	payload = append(payload, words...)
	return payload
}

func buildMultiReadPayload(addrs []Address) []byte {
	payload := make([]byte, 0, 1+4*len(addrs))
	payload = append(payload, byte(len(addrs)))
	for _, a := range addrs {
		wire := a.WireBytes()
		payload = append(payload, wire[:]...)
	}
	return payload
}

// encodeWords packs a slice of 16-bit words into big-endian bytes.
func encodeWords(words []uint16) []byte {
	out := make([]byte, 2*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint16(out[i*2:i*2+2], w)
	}
	return out
}

// decodeWords unpacks a flat byte slice into readCount big-endian
// 16-bit words. Returns a ReadError if the payload is short.
func decodeWords(data []byte, readCount uint16) ([]uint16, error) {
	need := int(readCount) * 2
	if len(data) < need {
		return nil, &ReadError{Reason: "response payload shorter than requested word count"}
	}
	out := make([]uint16, readCount)
	for i := 0; i < int(readCount); i++ {
		out[i] = binary.BigEndian.Uint16(data[i*2 : i*2+2])
	}
	return out, nil
}
