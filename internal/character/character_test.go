package character_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

func TestBaselinePositiveAndFinite(t *testing.T) {
	for _, name := range character.Names() {
		rs, err := character.New(name)
		require.NoError(t, err)
		got := rs.FinalDamage(domain.Flags{})
		if !(got > 0) || math.IsInf(got, 0) {
			t.Fatalf("%s: baseline damage = %v, want finite and > 0", name, got)
		}
	}
}

func TestLadderIsMonotonic(t *testing.T) {
	for _, name := range character.Names() {
		rs, err := character.New(name)
		require.NoError(t, err)
		prev := rs.FinalDamage(domain.Flags{})
		for level := 1; level <= domain.MaxEidolon; level++ {
			got := rs.FinalDamage(domain.Cumulative(level))
			if got < prev {
				t.Fatalf("%s: E%d = %v < E%d = %v", name, level, got, level-1, prev)
			}
			prev = got
		}
	}
}

func TestFinalDamage_NoLeakAcrossCalls(t *testing.T) {
	for _, name := range character.Names() {
		rs, err := character.New(name)
		require.NoError(t, err)

		base := rs.FinalDamage(domain.Flags{})
		full := rs.FinalDamage(domain.Cumulative(domain.MaxEidolon))
		again := rs.FinalDamage(domain.Flags{})
		assert.Equal(t, base, again, "%s: E6 call changed the baseline", name)

		// E5 overrides must apply to every term of the same call, whatever
		// order the flags are checked in.
		assert.Equal(t, full, rs.FinalDamage(domain.Cumulative(domain.MaxEidolon)), name)
	}
}

func TestAnaxa_ReferenceValues(t *testing.T) {
	a := character.NewAnaxa()
	// (0.7 + 1.6) * 2000 ATK * (1 + 0.3 qualitative disclosure)
	assert.InDelta(t, 5980.0, a.FinalDamage(domain.Flags{}), 1e-9)

	// E3 only swaps the ultimate multiplier.
	e3 := a.FinalDamage(domain.Flags{E3: true})
	assert.InDelta(t, (0.7+1.76)*2000*1.3, e3, 1e-9)
}

func TestAnaxa_E5OverrideReachesSimulatedTerm(t *testing.T) {
	a := character.NewAnaxa()
	without, err := a.UpgradeDelta(domain.E4, domain.Flags{E4: true})
	require.NoError(t, err)
	with, err := a.UpgradeDelta(domain.E4, domain.Flags{E4: true, E5: true})
	require.NoError(t, err)
	assert.NotEqual(t, without, with)
}

func TestCastorice_SimulatedDeltas(t *testing.T) {
	c := character.NewCastorice()

	e1, err := c.UpgradeDelta(domain.E1, domain.Flags{})
	require.NoError(t, err)
	// Rounds at 80, 60, 40, 20 and 0 enemy HP: 1.2+1.2+1.4+1.4+1.4 over 5.
	assert.InDelta(t, 0.32, e1, 1e-12)

	e2, err := c.UpgradeDelta(domain.E2, domain.Flags{})
	require.NoError(t, err)
	// 0.24+0.28+0.34+0.34 against the same plus two more 0.34 hits.
	assert.InDelta(t, 0.68/1.2, e2, 1e-12)

	base := c.FinalDamage(domain.Flags{})
	assert.Equal(t, base, c.FinalDamage(domain.Flags{E3: true, E4: true, E5: true, E6: true, LC: true}))
}

func TestRuanMei_UltDurationUsesResolvedPen(t *testing.T) {
	r := character.NewRuanMei()
	base, err := r.UpgradeDelta(domain.E6, domain.Flags{E6: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.25/4.75, base, 1e-12)

	e3, err := r.UpgradeDelta(domain.E6, domain.Flags{E3: true, E6: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.27/4.81, e3, 1e-12)
}

func TestRuanMei_LightConeGains(t *testing.T) {
	r := character.NewRuanMei()
	assert.Greater(t, r.FinalDamage(domain.Flags{LC: true}), r.FinalDamage(domain.Flags{}))
	lc, err := r.UpgradeDelta(domain.LC, domain.Flags{LC: true})
	require.NoError(t, err)
	assert.Greater(t, lc, 0.0)
}

func TestUpgradeDelta_Static(t *testing.T) {
	tests := []struct {
		name string
		u    domain.Upgrade
	}{
		{"anaxa", domain.E3},
		{"anaxa", domain.E5},
		{"ruan_mei", domain.E1},
		{"castorice", domain.E6},
	}
	for _, tt := range tests {
		rs, err := character.New(tt.name)
		require.NoError(t, err)
		if _, err := rs.UpgradeDelta(tt.u, domain.Flags{}.With(tt.u)); !errors.Is(err, character.ErrStaticUpgrade) {
			t.Fatalf("%s %s: err = %v, want ErrStaticUpgrade", tt.name, tt.u, err)
		}
	}
}

func TestSimulated(t *testing.T) {
	a := character.NewAnaxa()
	assert.Equal(t, []domain.Upgrade{domain.E1, domain.E2, domain.E4, domain.E6, domain.LC}, character.Simulated(a))
	assert.Equal(t, []domain.Upgrade{domain.E1, domain.E2}, character.Simulated(character.NewCastorice()))
	assert.Equal(t, []domain.Upgrade{domain.E6, domain.LC}, character.Simulated(character.NewRuanMei()))
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"anaxa", "castorice", "ruan_mei"}, character.Names())

	for _, in := range []string{"Ruan Mei", "ruanmei", "ruan-mei", " RUAN_MEI "} {
		rs, err := character.New(in)
		require.NoError(t, err, in)
		assert.Equal(t, "ruan_mei", rs.Name())
	}

	_, err := character.New("kafka")
	require.ErrorIs(t, err, character.ErrUnknown)

	f, err := character.Factory("anaxa")
	require.NoError(t, err)
	assert.NotSame(t, f(), f())
}

func TestSimulatedDeltas_Pinned(t *testing.T) {
	tests := []struct {
		name  string
		u     domain.Upgrade
		flags domain.Flags
		want  float64
	}{
		{"anaxa", domain.E1, domain.Flags{E1: true}, 0.0006662225183211193},
		{"anaxa", domain.E2, domain.Flags{E2: true}, 0.04554959541776525},
		{"anaxa", domain.E4, domain.Flags{E4: true}, 0.1766741202777451},
		{"anaxa", domain.E4, domain.Flags{E4: true, E5: true}, 0.16971868395176148},
		{"anaxa", domain.E6, domain.Flags{E6: true}, 1.0425531914893618},
		{"anaxa", domain.LC, domain.Flags{LC: true}, 0.7512864493996569},
		{"castorice", domain.E1, domain.Flags{E1: true}, 0.32},
		{"castorice", domain.E2, domain.Flags{E2: true}, 0.68 / 1.2},
		{"ruan_mei", domain.E6, domain.Flags{E6: true}, 0.25 / 4.75},
		// 8.394% from skill points and 5.470% from energy regen, compounded.
		{"ruan_mei", domain.LC, domain.Flags{LC: true}, 0.14323670259712906},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.u.String(), func(t *testing.T) {
			rs, err := character.New(tt.name)
			require.NoError(t, err)

			first, err := rs.UpgradeDelta(tt.u, tt.flags)
			require.NoError(t, err)
			second, err := rs.UpgradeDelta(tt.u, tt.flags)
			require.NoError(t, err)

			if first != second {
				t.Fatalf("delta not deterministic: %v then %v", first, second)
			}
			assert.InDelta(t, tt.want, first, 1e-10)
		})
	}
}

func TestLadderPercentages_Pinned(t *testing.T) {
	tests := []struct {
		name string
		want []float64 // E0..E6 then LC, as a percentage of E0
	}{
		{"anaxa", []float64{100, 116.077282, 145.637466, 155.768768, 183.289078, 190.849866, 896.588306, 175.128645}},
		{"castorice", []float64{100, 128.774194, 163.033871, 163.033871, 163.033871, 163.033871, 163.033871, 100}},
		{"ruan_mei", []float64{100, 120, 144.416185, 150.955283, 223.25841, 225.684308, 381.325364, 195.4965}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := character.New(tt.name)
			require.NoError(t, err)

			base := rs.FinalDamage(domain.Flags{})
			rungs := domain.Ladder()
			require.Len(t, tt.want, len(rungs))
			for i, r := range rungs {
				got := rs.FinalDamage(r.Flags()) / base * 100
				assert.InDelta(t, tt.want[i], got, 1e-5, r.String())
			}
		})
	}
}
