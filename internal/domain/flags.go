package domain

import (
	"fmt"
	"strings"
)

// Upgrade identifies one investment toggle.
type Upgrade int

const (
	E1 Upgrade = iota + 1
	E2
	E3
	E4
	E5
	E6
	LC
)

// Upgrades lists every toggle in the fixed processing order.
var Upgrades = []Upgrade{E1, E2, E3, E4, E5, E6, LC}

func (u Upgrade) String() string {
	switch {
	case u >= E1 && u <= E6:
		return fmt.Sprintf("E%d", int(u))
	case u == LC:
		return "LC"
	default:
		return fmt.Sprintf("Upgrade(%d)", int(u))
	}
}

// Flags is the set of active upgrades for one damage computation.
// The zero value is the un-upgraded baseline.
type Flags struct {
	E1 bool
	E2 bool
	E3 bool
	E4 bool
	E5 bool
	E6 bool
	LC bool
}

// Cumulative returns the flags for owning eidolons 1..level.
func Cumulative(level int) Flags {
	var f Flags
	for _, u := range Upgrades[:min(max(level, 0), 6)] {
		f = f.With(u)
	}
	return f
}

// Has reports whether u is active.
func (f Flags) Has(u Upgrade) bool {
	switch u {
	case E1:
		return f.E1
	case E2:
		return f.E2
	case E3:
		return f.E3
	case E4:
		return f.E4
	case E5:
		return f.E5
	case E6:
		return f.E6
	case LC:
		return f.LC
	}
	return false
}

// With returns a copy of f with u enabled.
func (f Flags) With(u Upgrade) Flags {
	switch u {
	case E1:
		f.E1 = true
	case E2:
		f.E2 = true
	case E3:
		f.E3 = true
	case E4:
		f.E4 = true
	case E5:
		f.E5 = true
	case E6:
		f.E6 = true
	case LC:
		f.LC = true
	}
	return f
}

func (f Flags) String() string {
	var parts []string
	for _, u := range Upgrades {
		if f.Has(u) {
			parts = append(parts, u.String())
		}
	}
	if len(parts) == 0 {
		return "E0"
	}
	return strings.Join(parts, "+")
}
