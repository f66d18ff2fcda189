// Package ladder is the upgrade-value pipeline: it normalizes per-rung damage
// against the base rung and weighs it by pull cost.
package ladder

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

var (
	ErrEmptyLadder     = errors.New("empty upgrade ladder")
	ErrMissingBaseline = errors.New("missing or zero baseline")
	ErrMissingCost     = errors.New("no cost for rung")
)

// Build turns raw per-rung damage (absolute totals or percentages, any scale)
// into a Report. raw must contain E0 with a non-zero value and every rung in
// raw must have an entry in cost.
func Build(char string, mode domain.Mode, raw domain.Series, cost domain.Series) (domain.Report, error) {
	rep := domain.Report{Character: char, Mode: mode}
	if len(raw) == 0 {
		return rep, fmt.Errorf("%s: %w", char, ErrEmptyLadder)
	}

	rungs, raw, err := parseRungs(raw)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", char, err)
	}

	base, ok := raw.Get(domain.Base.String())
	if !ok {
		return rep, fmt.Errorf("%s: %w: no %s entry", char, ErrMissingBaseline, domain.Base)
	}
	if base == 0 {
		return rep, fmt.Errorf("%s: %w: %s is zero", char, ErrMissingBaseline, domain.Base)
	}

	var errs error
	for _, r := range rungs {
		if _, ok := cost.Get(r.String()); !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w %s", ErrMissingCost, r))
		}
	}
	if errs != nil {
		return rep, fmt.Errorf("%s: %w", char, errs)
	}

	for _, r := range rungs {
		label := r.String()
		v, _ := raw.Get(label)
		pct, err := calc.Div(v*100, base)
		if err != nil {
			return rep, fmt.Errorf("%s %s: damage: %w", char, label, err)
		}
		c, _ := cost.Get(label)
		eff, err := calc.Div(pct, c)
		if err != nil {
			return rep, fmt.Errorf("%s %s: efficiency: %w", char, label, err)
		}
		rep.Damage.Set(label, pct)
		rep.Cost.Set(label, c)
		rep.Efficiency.Set(label, eff)
	}

	rep.Marginal, err = Marginal(rep.Damage, rep.Cost)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", char, err)
	}
	return rep, nil
}

// Marginal returns the damage percentage gained per extra pull between
// numerically adjacent eidolon rungs, plus E0-LC for the light cone.
func Marginal(damage, cost domain.Series) (domain.Series, error) {
	rungs, damage, err := parseRungs(damage)
	if err != nil {
		return nil, err
	}

	var eidolons []domain.Rung
	var lc *domain.Rung
	for _, r := range rungs {
		if r.LC {
			lc = &r
			continue
		}
		eidolons = append(eidolons, r)
	}

	var out domain.Series
	add := func(lower, upper domain.Rung) error {
		d0, _ := damage.Get(lower.String())
		d1, _ := damage.Get(upper.String())
		c0, ok0 := cost.Get(lower.String())
		c1, ok1 := cost.Get(upper.String())
		if !ok0 || !ok1 {
			return fmt.Errorf("%w %s", ErrMissingCost, domain.PairLabel(lower, upper))
		}
		m, err := calc.Div(d1-d0, c1-c0)
		if err != nil {
			return fmt.Errorf("marginal %s: %w", domain.PairLabel(lower, upper), err)
		}
		out.Set(domain.PairLabel(lower, upper), m)
		return nil
	}

	for i := 1; i < len(eidolons); i++ {
		if err := add(eidolons[i-1], eidolons[i]); err != nil {
			return nil, err
		}
	}
	if lc != nil {
		if _, ok := damage.Get(domain.Base.String()); !ok {
			return nil, fmt.Errorf("%w: %s needs %s", ErrMissingBaseline, domain.LCLabel, domain.Base)
		}
		if err := add(domain.Base, *lc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseRungs returns the rungs of s in numeric order, LC last, and s
// re-keyed by canonical labels ("e1" -> "E1").
func parseRungs(s domain.Series) ([]domain.Rung, domain.Series, error) {
	rungs := make([]domain.Rung, 0, len(s))
	canon := make(domain.Series, 0, len(s))
	for _, p := range s {
		r, err := domain.ParseRung(p.Label)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := canon.Get(r.String()); dup {
			return nil, nil, fmt.Errorf("duplicate rung %s", r)
		}
		canon.Set(r.String(), p.Value)
		rungs = append(rungs, r)
	}
	domain.SortRungs(rungs)
	return rungs, canon, nil
}
