package fins

import "github.com/omron-fins/client/mapping"

// The types and functions in this file exist for anything that plays
// the PLC side of the wire -- chiefly the loop-back simulator the test
// suite dials against. Ordinary callers never need them; a client only
// ever builds requests and decodes responses, both handled internally
// by sendCommand.

// Request is a fully decoded FINS command frame, as seen from the
// responding side.
type Request struct {
	Header Header
	Data   []byte
}

// DecodeRequest parses a raw FINS command frame (12-byte header plus
// payload) into a Request.
func DecodeRequest(b []byte) (Request, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return Request{}, err
	}
	return Request{Header: h, Data: b[12:]}, nil
}

// ResponseHeader builds the header for a reply to req: ICF/reserved/
// gateway/SID are echoed, source and destination are swapped.
func ResponseHeader(req Header) Header {
	return Header{
		ICF:     req.ICF,
		RSV:     req.RSV,
		GCT:     req.GCT,
		DNA:     req.SNA,
		DA1:     req.SA1,
		DA2:     req.SA2,
		SNA:     req.DNA,
		SA1:     req.DA1,
		SA2:     req.DA2,
		SID:     req.SID,
		Command: req.Command,
	}
}

// EncodeResponse builds the wire bytes for a FINS response: header,
// end code, payload.
func EncodeResponse(header Header, endCode mapping.EndCode, data []byte) []byte {
	out := make([]byte, 0, 14+len(data))
	out = append(out, header.encode()...)
	out = append(out, endCode.MRES, endCode.SRES)
	out = append(out, data...)
	return out
}
