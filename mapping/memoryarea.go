package mapping

import "strings"

// MemoryArea is the 1-byte wire identifier for a PLC memory region.
type MemoryArea byte

const (
	AreaCIO MemoryArea = 0x30
	AreaWR  MemoryArea = 0x31
	AreaHR  MemoryArea = 0x32
	AreaAR  MemoryArea = 0x33
	AreaDM  MemoryArea = 0x82
	AreaEM  MemoryArea = 0x20
	AreaTIM MemoryArea = 0x09
	AreaDR  MemoryArea = 0x2C
	AreaIR  MemoryArea = 0x2D
)

// canonical is the preferred textual tag for each area code, used by
// String and by address re-serialization.
var canonical = map[MemoryArea]string{
	AreaCIO: "CIO",
	AreaWR:  "WR",
	AreaHR:  "HR",
	AreaAR:  "AR",
	AreaDM:  "DM",
	AreaEM:  "EM",
	AreaTIM: "TIM",
	AreaDR:  "DR",
	AreaIR:  "IR",
}

// aliases maps every accepted textual prefix (including the canonical
// tag itself) to its area code.
var aliases = map[string]MemoryArea{
	"CIO": AreaCIO,
	"WR":  AreaWR,
	"HR":  AreaHR,
	"AR":  AreaAR,
	"DM":  AreaDM,
	"D":   AreaDM,
	"EM":  AreaEM,
	"TIM": AreaTIM,
	"CNT": AreaTIM,
	"DR":  AreaDR,
	"IR":  AreaIR,
}

// ParseMemoryArea resolves a textual area prefix, case-insensitively,
// to its wire code. Returns ok=false for anything outside the table.
func ParseMemoryArea(prefix string) (MemoryArea, bool) {
	a, ok := aliases[strings.ToUpper(prefix)]
	return a, ok
}

// String returns the canonical (non-aliased) tag, e.g. "DM" even when
// the area was parsed from the "D" alias.
func (m MemoryArea) String() string {
	if s, ok := canonical[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// Valid reports whether m is a member of the closed area enumeration.
func (m MemoryArea) Valid() bool {
	_, ok := canonical[m]
	return ok
}

// SupportsBit reports whether the area can be addressed at bit
// granularity. CIO/WR/HR/AR/DM are bit-addressable on real OMRON CPUs;
// EM/TIM/DR/IR are modelled here as word-only, since the source
// implementation never exercises bit access on them and OMRON's own
// documentation reserves bit suffixes for the relay/holding/auxiliary/
// data-memory areas.
func (m MemoryArea) SupportsBit() bool {
	switch m {
	case AreaCIO, AreaWR, AreaHR, AreaAR, AreaDM:
		return true
	default:
		return false
	}
}
