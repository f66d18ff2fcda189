package character

import (
	"fmt"
	"math"

	"github.com/tiendc/go-deepcopy"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/sim"
)

const (
	castoriceHP            = 9000
	castoriceSkillMult     = 0.5
	castoriceClawMult      = 0.4
	castoriceWingsMult     = 0.4
	castoriceWingsHits     = 6
	castoriceBreathHits    = 4
	castoriceE2BreathHits  = 6
	castoriceEnemyHP       = 100.0
	castoriceEnemyHPPerHit = 20.0
)

// castoriceConsts are the sub-hit tables the damage terms read. Tables are
// copied per call so an E2 append never reaches the package defaults.
type castoriceConsts struct {
	Enhanced []SubHit
	Breath   []SubHit
}

var castoriceBase = castoriceConsts{
	Enhanced: []SubHit{
		{Name: "netherwing", Mult: 0.3},
		{Name: "castorice", Mult: 0.5},
	},
	Breath: []SubHit{
		{Name: "1st", Mult: 0.24},
		{Name: "2nd", Mult: 0.28},
		{Name: "3rd", Mult: 0.34},
	},
}

// Castorice scales off max HP. E1 (bonus against low-HP enemies) and E2 (extra
// breath hits) are simulated; E2 also repeats the enhanced skill. Later
// upgrades are not modelled.
type Castorice struct {
	Stats Stats
}

func NewCastorice() *Castorice {
	s := DefaultStats()
	s.HP = castoriceHP
	return &Castorice{Stats: s}
}

func (c *Castorice) Name() string { return "castorice" }

func (c *Castorice) resolve(f domain.Flags) (castoriceConsts, error) {
	var out castoriceConsts
	if err := deepcopy.Copy(&out, &castoriceBase); err != nil {
		return out, fmt.Errorf("castorice: copy constants: %w", err)
	}
	if f.E2 {
		out.Enhanced = append(out.Enhanced, castoriceBase.Enhanced...)
	}
	return out, nil
}

// FinalDamage returns NaN if the constant tables cannot be copied; the engine
// reports that as a degenerate total.
func (c *Castorice) FinalDamage(f domain.Flags) float64 {
	k, err := c.resolve(f)
	if err != nil {
		return math.NaN()
	}
	hp := c.Stats.HP

	var e1, e2 float64
	if f.E1 {
		e1, _ = c.e1Delta()
	}
	if f.E2 {
		e2 = c.e2Delta()
	}

	skill := Dmg(hp, castoriceSkillMult)
	breath := SumHits(hp, k.Breath) * calc.Buff(e2)
	main := SumHits(hp, k.Enhanced) +
		breath +
		Dmg(hp, castoriceClawMult) +
		Dmg(hp, castoriceWingsMult)*castoriceWingsHits

	return skill + main*calc.Buff(e1)
}

func (c *Castorice) UpgradeDelta(u domain.Upgrade, _ domain.Flags) (float64, error) {
	switch u {
	case domain.E1:
		d, _ := c.e1Delta()
		return d, nil
	case domain.E2:
		return c.e2Delta(), nil
	}
	return 0, ErrStaticUpgrade
}

// rotation is one enhanced-skill round at the base tables.
func (c *Castorice) rotation() float64 {
	hp := c.Stats.HP
	return SumHits(hp, castoriceBase.Enhanced) +
		SumHits(hp, castoriceBase.Breath) +
		Dmg(hp, castoriceClawMult) +
		Dmg(hp, castoriceWingsMult)*castoriceWingsHits
}

// CeilingHits reports the E1 enemy-HP fight when it stopped at the ceiling.
func (c *Castorice) CeilingHits(f domain.Flags) []string {
	if !f.E1 {
		return nil
	}
	if _, hit := c.e1Delta(); hit {
		return []string{"e1_enemy_hp"}
	}
	return nil
}

// e1Delta fights one enemy down from full HP, 20% per round, with the E1 band
// bonus applied to each round once the enemy is low enough.
func (c *Castorice) e1Delta() (float64, bool) {
	return c.e1Fight(castoriceEnemyHPPerHit)
}

// e1Fight reports whether either half of the pair stopped at the ceiling.
func (c *Castorice) e1Fight(perRound float64) (float64, bool) {
	round := c.rotation()
	ceilingHit := false
	d := sim.PairedDelta(func(upgraded bool) float64 {
		enemy := castoriceEnemyHP
		total := 0.0
		res := sim.Seek(sim.DefaultCeiling, func(int) bool {
			enemy -= perRound
			dmg := round
			if upgraded {
				dmg *= calc.Buff(castoriceE1Bonus(enemy))
			}
			total += dmg
			return enemy <= 0
		}, nil)
		ceilingHit = ceilingHit || res.CeilingHit
		return total
	})
	return d, ceilingHit
}

// castoriceE1Bonus is the E1 bonus at the enemy's remaining HP percentage.
func castoriceE1Bonus(enemyHP float64) float64 {
	switch {
	case enemyHP <= 50:
		return 0.4
	case enemyHP <= 80:
		return 0.2
	}
	return 0
}

// e2Delta: the breath sequence runs 6 hits instead of 4; hits past the
// second reuse the last multiplier.
func (c *Castorice) e2Delta() float64 {
	hp := c.Stats.HP
	return sim.PairedDelta(func(upgraded bool) float64 {
		hits := castoriceBreathHits
		if upgraded {
			hits = castoriceE2BreathHits
		}
		breath := castoriceBase.Breath
		total := 0.0
		for i := range hits {
			total += Dmg(hp, breath[min(i, len(breath)-1)].Mult)
		}
		return total
	})
}
