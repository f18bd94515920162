package fins

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/omron-fins/client/mapping"
)

// Address is a fully-validated PLC memory address: an area, a 16-bit
// word offset within that area, and an optional bit offset.
type Address struct {
	Area MemoryArea
	Word uint16
	Bit  *uint8 // nil for word access
}

// MemoryArea re-exports mapping.MemoryArea so callers of this package
// never need to import mapping directly for address work.
type MemoryArea = mapping.MemoryArea

const (
	AreaCIO = mapping.AreaCIO
	AreaWR  = mapping.AreaWR
	AreaHR  = mapping.AreaHR
	AreaAR  = mapping.AreaAR
	AreaDM  = mapping.AreaDM
	AreaEM  = mapping.AreaEM
	AreaTIM = mapping.AreaTIM
	AreaDR  = mapping.AreaDR
	AreaIR  = mapping.AreaIR
)

// NewAddress builds a word-access Address from an already-validated
// area/word tuple.
func NewAddress(area MemoryArea, word uint16) (Address, error) {
	if !area.Valid() {
		return Address{}, &InvalidAddressError{Reason: "unknown memory area"}
	}
	return Address{Area: area, Word: word}, nil
}

// NewBitAddress builds a bit-access Address.
func NewBitAddress(area MemoryArea, word uint16, bit uint8) (Address, error) {
	if !area.Valid() {
		return Address{}, &InvalidAddressError{Reason: "unknown memory area"}
	}
	if bit > 15 {
		return Address{}, &InvalidAddressError{Reason: "bit offset out of range [0,15]"}
	}
	b := bit
	return Address{Area: area, Word: word, Bit: &b}, nil
}

// ParseAddress parses the canonical textual address syntax:
// "<AREA><DECIMAL>" for word access, "<AREA><DECIMAL>.<2-digit decimal>"
// for bit access. Parsing is case-insensitive and tolerates surrounding
// whitespace. Area prefix is the longest leading alphabetic run; the
// remainder is a decimal word address.
func ParseAddress(s string) (Address, error) {
	raw := s
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "empty address"}
	}

	wordPart := trimmed
	var bitPart string
	hasBit := false
	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 {
		if strings.IndexByte(trimmed[idx+1:], '.') >= 0 {
			return Address{}, &InvalidAddressError{Address: raw, Reason: "more than one '.' separator"}
		}
		wordPart = trimmed[:idx]
		bitPart = trimmed[idx+1:]
		hasBit = true
	}

	splitIdx := len(wordPart)
	for i, r := range wordPart {
		if r >= '0' && r <= '9' {
			splitIdx = i
			break
		}
	}
	areaPrefix := wordPart[:splitIdx]
	digits := wordPart[splitIdx:]

	if areaPrefix == "" {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "missing area prefix"}
	}
	if digits == "" {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "missing word address"}
	}

	area, ok := mapping.ParseMemoryArea(areaPrefix)
	if !ok {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "unknown area " + areaPrefix}
	}

	word, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "word address is not a non-negative integer"}
	}
	if word > 65535 {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "word address exceeds 65535"}
	}

	if !hasBit {
		return Address{Area: area, Word: uint16(word)}, nil
	}

	bit, err := strconv.ParseUint(bitPart, 10, 8)
	if err != nil || bit > 15 {
		return Address{}, &InvalidAddressError{Address: raw, Reason: "bit offset must be an integer in [0,15]"}
	}
	b := uint8(bit)
	return Address{Area: area, Word: uint16(word), Bit: &b}, nil
}

// String re-serializes the address to its canonical textual form.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Area.String())
	sb.WriteString(strconv.FormatUint(uint64(a.Word), 10))
	if a.Bit != nil {
		sb.WriteByte('.')
		if *a.Bit < 10 {
			sb.WriteByte('0')
		}
		sb.WriteString(strconv.FormatUint(uint64(*a.Bit), 10))
	}
	return sb.String()
}

// WireBytes encodes the address to its 4-byte wire form:
// [area_code, word_high, word_low, bit_or_zero].
func (a Address) WireBytes() [4]byte {
	var out [4]byte
	out[0] = byte(a.Area)
	binary.BigEndian.PutUint16(out[1:3], a.Word)
	if a.Bit != nil {
		out[3] = *a.Bit
	}
	return out
}

// DecodeAddress parses the 4-byte wire form back into an Address. Used
// by the loop-back simulator and by anyone decoding a request they
// received rather than one they're about to send.
func DecodeAddress(b []byte) (Address, error) {
	if len(b) < 4 {
		return Address{}, &InvalidAddressError{Reason: "short wire address"}
	}
	area := MemoryArea(b[0])
	word := binary.BigEndian.Uint16(b[1:3])
	if b[3] != 0 {
		bit := b[3]
		return Address{Area: area, Word: word, Bit: &bit}, nil
	}
	return Address{Area: area, Word: word}, nil
}

// AddressArg accepts either a textual address or an already-parsed
// Address at every read/write entry point, per the source's dynamic
// overload of the address parameter.
type AddressArg struct {
	text string
	addr *Address
}

// Addr wraps a pre-parsed Address for use as an AddressArg.
func Addr(a Address) AddressArg { return AddressArg{addr: &a} }

// AddrString wraps a textual address for use as an AddressArg.
func AddrString(s string) AddressArg { return AddressArg{text: s} }

func (a AddressArg) resolve() (Address, error) {
	if a.addr != nil {
		return *a.addr, nil
	}
	return ParseAddress(a.text)
}
