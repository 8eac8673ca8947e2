package symbols

import (
	"strconv"
	"strings"
)

// Semantic is a normalized semantic binding: uppercase name plus a
// numeric index. "PoSiTiOn0" normalizes to {POSITION, 0}; a missing
// index defaults to 0.
type Semantic struct {
	Name  string
	Index int
}

// NormalizeSemantic parses a raw semantic annotation.
func NormalizeSemantic(raw string) Semantic {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	cut := len(raw)
	for cut > 0 && raw[cut-1] >= '0' && raw[cut-1] <= '9' {
		cut--
	}
	sem := Semantic{Name: raw}
	if cut < len(raw) {
		if idx, err := strconv.Atoi(raw[cut:]); err == nil {
			sem.Name = raw[:cut]
			sem.Index = idx
		}
	}
	return sem
}

// IsSystemValue reports whether the semantic is an SV_* system value.
func (s Semantic) IsSystemValue() bool {
	return strings.HasPrefix(s.Name, "SV_")
}

func (s Semantic) String() string {
	if s.Index == 0 {
		return s.Name
	}
	return s.Name + strconv.Itoa(s.Index)
}
