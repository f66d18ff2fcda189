// Package character holds the per-character rule sets: base stats, flag-driven
// constant overrides and the damage composition that prices each upgrade.
package character

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

var (
	// ErrUnknown is returned by New for a name that is not registered.
	ErrUnknown = errors.New("unknown character")
	// ErrStaticUpgrade is returned by UpgradeDelta for upgrades that only
	// override constants and have no simulated mechanic.
	ErrStaticUpgrade = errors.New("upgrade has no simulated mechanic")
)

// RuleSet is the common contract every character implements.
//
// FinalDamage must be referentially transparent: the same flags always
// produce the same total and no call observes another call's flags.
type RuleSet interface {
	Name() string
	FinalDamage(f domain.Flags) float64
	// UpgradeDelta returns the buff factor (decimal) a simulator-backed upgrade
	// contributes under the constants resolved for f.
	UpgradeDelta(u domain.Upgrade, f domain.Flags) (float64, error)
}

// CeilingReporter is implemented by rule sets whose simulated terms run a
// threshold-seeking loop. CeilingHits names the loops that stopped at the
// iteration ceiling under f; the totals are still usable.
type CeilingReporter interface {
	CeilingHits(f domain.Flags) []string
}

// Stats are the immutable base stats shared by every character shape.
type Stats struct {
	HP          float64
	ATK         float64
	CritRate    float64
	CritDmg     float64
	UltEnergy   float64
	BreakEffect float64
	Speed       float64
}

// DefaultStats are the reference stats rule sets start from.
func DefaultStats() Stats {
	return Stats{
		HP:          3000,
		ATK:         2000,
		CritRate:    0.5,
		CritDmg:     1.0,
		UltEnergy:   160,
		BreakEffect: 1.0,
		Speed:       100,
	}
}

// Dmg is the ATK- or HP-scaled hit value.
func Dmg(scaling, multiplier float64) float64 {
	return scaling * multiplier
}

// BreakDmg scales base break damage by break effect.
func BreakDmg(base, breakEffect float64) float64 {
	return base * breakEffect
}

// SubHit is one named hit of a multi-hit action.
type SubHit struct {
	Name string
	Mult float64
}

// SumHits sums scaling*mult over hits.
func SumHits(scaling float64, hits []SubHit) float64 {
	total := 0.0
	for _, h := range hits {
		total += Dmg(scaling, h.Mult)
	}
	return total
}

var registry = map[string]func() RuleSet{
	"anaxa":     func() RuleSet { return NewAnaxa() },
	"ruan_mei":  func() RuleSet { return NewRuanMei() },
	"castorice": func() RuleSet { return NewCastorice() },
}

// Names lists the registered rule sets in stable order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Normalize maps user spellings ("Ruan Mei", "ruanmei") to a registry key.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if s == "ruanmei" {
		s = "ruan_mei"
	}
	return s
}

// Factory returns the constructor for name, so callers can build a fresh
// instance per evaluation.
func Factory(name string) (func() RuleSet, error) {
	key := Normalize(name)
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// New builds the rule set registered under name.
func New(name string) (RuleSet, error) {
	f, err := Factory(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Simulated lists the upgrades of rs that are priced by a paired simulation.
func Simulated(rs RuleSet) []domain.Upgrade {
	var out []domain.Upgrade
	for _, u := range domain.Upgrades {
		if _, err := rs.UpgradeDelta(u, domain.Flags{}.With(u)); err == nil {
			out = append(out, u)
		}
	}
	return slices.Clip(out)
}
