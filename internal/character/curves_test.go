package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

func TestCastoriceResolve_DoesNotMutateDefaults(t *testing.T) {
	c := NewCastorice()
	k, err := c.resolve(domain.Flags{E2: true})
	require.NoError(t, err)
	assert.Len(t, k.Enhanced, 4)
	assert.Len(t, castoriceBase.Enhanced, 2)

	k.Breath[0].Mult = 99
	assert.Equal(t, 0.24, castoriceBase.Breath[0].Mult)
}

func TestCastoriceE1Fight_Ceiling(t *testing.T) {
	c := NewCastorice()

	d, hit := c.e1Fight(castoriceEnemyHPPerHit)
	assert.False(t, hit)
	assert.InDelta(t, 0.32, d, 1e-12)
	assert.Empty(t, c.CeilingHits(domain.Flags{E1: true}))
	assert.Empty(t, c.CeilingHits(domain.Flags{}))

	// An enemy that never loses HP stops at the ceiling in both halves.
	d, hit = c.e1Fight(0)
	assert.True(t, hit)
	assert.InDelta(t, 0.0, d, 1e-12)
}

func TestNewbudPoolReference(t *testing.T) {
	res := NewbudPoolReference()
	assert.False(t, res.CeilingHit)
	assert.Equal(t, 37, res.Turns)
	assert.Equal(t, 18, res.TopUps)
}

func TestNewbudCurve(t *testing.T) {
	rows := NewbudCurve()
	require.Len(t, rows, 19)

	first, last := rows[0], rows[len(rows)-1]
	assert.Equal(t, 15000.0, first.TeamHP)
	assert.Equal(t, 2000.0, first.AllyHP)
	assert.Equal(t, 16, first.Skills)
	assert.Equal(t, 15, first.Heals)
	assert.Equal(t, 31, first.Actions)
	assert.Equal(t, 6, last.Skills)
	assert.Equal(t, 5, last.Heals)

	for _, r := range rows {
		if r.CeilingHit {
			t.Fatalf("hp=%v: ceiling hit", r.TeamHP)
		}
		if r.Heals != r.Skills-1 {
			t.Fatalf("hp=%v: heals=%d skills=%d", r.TeamHP, r.Heals, r.Skills)
		}
	}
}

func TestNewbudBandStats(t *testing.T) {
	got := NewbudBandStats(NewbudCurve())
	require.Len(t, got, 3)

	low, opt, high := got[0], got[1], got[2]
	assert.Equal(t, "low", low.Band.Name)
	assert.Equal(t, 5, low.Rows)
	assert.Equal(t, 25, low.MinActions)
	assert.Equal(t, 31, low.MaxActions)
	assert.InDelta(t, 28.2, low.AvgActions, 1e-9)
	assert.InDelta(t, 8000.0/3, low.AvgAllyHP, 1e-9)
	assert.True(t, low.VsLowBandOK)
	assert.Equal(t, 0.0, low.VsLowBand)

	assert.Equal(t, 17, opt.MinActions)
	assert.Equal(t, 25, opt.MaxActions)
	assert.InDelta(t, 21.0, opt.AvgActions, 1e-9)
	assert.InDelta(t, 21.0/28.2-1, opt.VsLowBand, 1e-9)

	assert.Equal(t, 11, high.MinActions)
	assert.Equal(t, 17, high.MaxActions)
	assert.InDelta(t, 7000.0, high.AvgAllyHP, 1e-9)
}

func TestA6(t *testing.T) {
	tests := []struct {
		be   float64
		want float64
	}{
		{1.0, 0},
		{1.2, 0},
		{1.3, 0.06},
		{1.5, 0.18},
		{1.8, 0.36},
		{2.0, 0.36},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, A6Bonus(tt.be), 1e-9, "be=%v", tt.be)
	}

	rows := A6Curve()
	require.Len(t, rows, 101)
	assert.Equal(t, 1.0, rows[0].BreakEffect)
	assert.Equal(t, 2.0, rows[100].BreakEffect)
	assert.InDelta(t, 0.32+0.36, rows[100].Total, 1e-9)
}

func TestHyacineCurve(t *testing.T) {
	rows := HyacineCurve()
	require.Len(t, rows, 291)
	assert.Equal(t, 110, rows[0].Speed)
	assert.Equal(t, 0.0, HyacineHealing(200))
	assert.InDelta(t, 0.5, HyacineHealing(250), 1e-9)
	assert.InDelta(t, 2.0, rows[len(rows)-1].HealingBoost, 1e-9)
}
