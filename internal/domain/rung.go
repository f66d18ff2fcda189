package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LCLabel is the rung label of the signature light cone.
const LCLabel = "LC"

// MaxEidolon is the highest eidolon a character can reach.
const MaxEidolon = 6

// Rung is one point of the upgrade ladder: an eidolon level or the signature light cone.
type Rung struct {
	Eidolon int
	LC      bool
}

// Base is the un-upgraded rung every other rung is normalized against.
var Base = Rung{}

// ParseRung parses "E0".."E<n>" (case-insensitive) and "LC".
func ParseRung(label string) (Rung, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == LCLabel {
		return Rung{LC: true}, nil
	}
	if len(s) < 2 || s[0] != 'E' {
		return Rung{}, fmt.Errorf("invalid rung label %q (want E<n> or LC)", label)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return Rung{}, fmt.Errorf("invalid rung label %q (want E<n> or LC)", label)
	}
	return Rung{Eidolon: n}, nil
}

func (r Rung) String() string {
	if r.LC {
		return LCLabel
	}
	return "E" + strconv.Itoa(r.Eidolon)
}

// Flags returns the upgrade combination the rung stands for. Eidolon rungs are
// cumulative; the light cone rung is the base kit plus the light cone only.
func (r Rung) Flags() Flags {
	if r.LC {
		return Flags{LC: true}
	}
	return Cumulative(r.Eidolon)
}

// Ladder returns the standard rungs E0..E6 followed by LC.
func Ladder() []Rung {
	out := make([]Rung, 0, MaxEidolon+2)
	for i := 0; i <= MaxEidolon; i++ {
		out = append(out, Rung{Eidolon: i})
	}
	return append(out, Rung{LC: true})
}

// CompareRungs orders eidolon rungs by their numeric level and puts LC last.
func CompareRungs(a, b Rung) int {
	if a.LC != b.LC {
		if a.LC {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Eidolon, b.Eidolon)
}

// SortRungs sorts in place by CompareRungs.
func SortRungs(rs []Rung) {
	slices.SortStableFunc(rs, CompareRungs)
}

// PairLabel formats an adjacent-rung key such as "E0-E1" or "E0-LC".
func PairLabel(lower, upper Rung) string {
	return lower.String() + "-" + upper.String()
}
