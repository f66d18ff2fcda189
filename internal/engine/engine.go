// Package engine evaluates a character rule set across ladder rungs in
// simulation mode.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

// ErrDegenerate is returned when a rung evaluates to a negative or non-finite total.
var ErrDegenerate = errors.New("degenerate damage total")

type Options struct {
	// Parallel evaluates rungs concurrently, one fresh rule set per rung.
	Parallel bool
	// Limit bounds concurrent rungs; <= 0 uses GOMAXPROCS.
	Limit  int
	Logger *zap.Logger
}

// Evaluate computes FinalDamage for every rung and returns the absolute totals
// in rung order. Each rung gets its own rule set from factory.
func Evaluate(ctx context.Context, factory func() character.RuleSet, rungs []domain.Rung, opts Options) (domain.Series, error) {
	if len(rungs) == 0 {
		return nil, errors.New("no rungs to evaluate")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	totals := make([]float64, len(rungs))
	eval := func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rs := factory()
		r := rungs[i]
		v := rs.FinalDamage(r.Flags())
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s %s: %v: %w", rs.Name(), r, v, ErrDegenerate)
		}
		totals[i] = v
		if cr, ok := rs.(character.CeilingReporter); ok {
			for _, loop := range cr.CeilingHits(r.Flags()) {
				log.Warn("threshold loop hit the iteration ceiling",
					zap.String("character", rs.Name()),
					zap.Stringer("rung", r),
					zap.String("loop", loop),
				)
			}
		}
		log.Debug("rung evaluated",
			zap.String("character", rs.Name()),
			zap.Stringer("rung", r),
			zap.Float64("damage", v),
		)
		return nil
	}

	if opts.Parallel {
		limit := opts.Limit
		if limit <= 0 {
			limit = runtime.GOMAXPROCS(0)
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		ctx = gctx
		for i := range rungs {
			g.Go(func() error { return eval(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range rungs {
			if err := eval(i); err != nil {
				return nil, err
			}
		}
	}

	out := make(domain.Series, 0, len(rungs))
	for i, r := range rungs {
		out.Set(r.String(), totals[i])
	}
	return out, nil
}
