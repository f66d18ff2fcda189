package engine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

type fixedRules struct {
	byRung map[string]float64
}

func (f *fixedRules) Name() string { return "fixed" }

func (f *fixedRules) FinalDamage(flags domain.Flags) float64 {
	return f.byRung[flags.String()]
}

func (f *fixedRules) UpgradeDelta(domain.Upgrade, domain.Flags) (float64, error) {
	return 0, character.ErrStaticUpgrade
}

type stalledRules struct {
	fixedRules
}

func (s *stalledRules) CeilingHits(f domain.Flags) []string {
	if f.E1 {
		return []string{"stalled"}
	}
	return nil
}

func TestEvaluate_LogsCeilingHits(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	factory := func() character.RuleSet {
		return &stalledRules{fixedRules{byRung: map[string]float64{"E0": 100, "E1": 120}}}
	}
	rungs := []domain.Rung{{Eidolon: 0}, {Eidolon: 1}}

	got, err := Evaluate(context.Background(), factory, rungs, Options{Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, []string{"E0", "E1"}, got.Labels())

	entries := logs.FilterMessage("threshold loop hit the iteration ceiling").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "E1", fields["rung"])
	assert.Equal(t, "stalled", fields["loop"])
}

func TestEvaluate_SequentialMatchesParallel(t *testing.T) {
	factory, err := character.Factory("anaxa")
	require.NoError(t, err)

	seq, err := Evaluate(context.Background(), factory, domain.Ladder(), Options{})
	require.NoError(t, err)
	par, err := Evaluate(context.Background(), factory, domain.Ladder(), Options{Parallel: true, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	assert.Equal(t, []string{"E0", "E1", "E2", "E3", "E4", "E5", "E6", "LC"}, seq.Labels())
}

func TestEvaluate_FreshInstancePerRung(t *testing.T) {
	var built atomic.Int32
	factory := func() character.RuleSet {
		built.Add(1)
		return character.NewRuanMei()
	}
	_, err := Evaluate(context.Background(), factory, domain.Ladder(), Options{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, int32(len(domain.Ladder())), built.Load())
}

func TestEvaluate_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func() character.RuleSet {
				return &fixedRules{byRung: map[string]float64{"E0": 100, "E1": tt.value}}
			}
			rungs := []domain.Rung{{Eidolon: 0}, {Eidolon: 1}}
			_, err := Evaluate(context.Background(), factory, rungs, Options{})
			if !errors.Is(err, ErrDegenerate) {
				t.Fatalf("err = %v, want ErrDegenerate", err)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	factory := func() character.RuleSet { return character.NewAnaxa() }

	_, err := Evaluate(context.Background(), factory, nil, Options{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, factory, domain.Ladder(), Options{})
	require.ErrorIs(t, err, context.Canceled)
}
