package ladder

import (
	"fmt"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

const (
	// PullsPerCopy is the conventional pull cost of one copy of the character.
	PullsPerCopy = 77
	// LightConePulls is the conventional pull cost of the signature light cone.
	LightConePulls = 69
)

// CostTable is the fixed pull cost model. E<n> costs n+1 copies (the base copy
// included); LC costs the light cone on top of the base copy. Only rungs on
// the fixed ladder (E0..E6 and LC) have a cost.
type CostTable struct {
	PerCopy   float64
	LightCone float64
}

func DefaultCosts() CostTable {
	return CostTable{PerCopy: PullsPerCopy, LightCone: LightConePulls}
}

// Of returns the cumulative cost of r, or ErrMissingCost for a rung past
// domain.MaxEidolon.
func (c CostTable) Of(r domain.Rung) (float64, error) {
	if r.LC {
		return c.LightCone + c.PerCopy, nil
	}
	if r.Eidolon < 0 || r.Eidolon > domain.MaxEidolon {
		return 0, fmt.Errorf("%w %s", ErrMissingCost, r)
	}
	return c.PerCopy * float64(r.Eidolon+1), nil
}

// Cumulative returns the cost of each rung, in the given order. Rungs Of
// rejects are left out so Build reports them as missing.
func (c CostTable) Cumulative(rungs []domain.Rung) domain.Series {
	out := make(domain.Series, 0, len(rungs))
	for _, r := range rungs {
		v, err := c.Of(r)
		if err != nil {
			continue
		}
		out.Set(r.String(), v)
	}
	return out
}
