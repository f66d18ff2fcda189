package character

import (
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/sim"
)

// Anaxa simulation constants. The skill/basic values used by the skill-point
// experiments are abstract units; only the ratios matter.
const (
	anaxaSimSkillHit = 1000.0
	anaxaSimBasicHit = 500.0
	anaxaStartSP     = 3

	anaxaE1DefReduce = 0.16
	anaxaE2ResPen    = 0.20
	anaxaE6Mult      = 1.3

	anaxaBaseWeakness    = 3
	anaxaMaxWeakness     = 5
	anaxaE2WeaknessAdd   = 1
	anaxaMaxWeaknessMult = 1.3

	anaxaE4AtkBuff   = 0.3
	anaxaE4Duration  = 2
	anaxaE4MaxStacks = 2

	anaxaE6CritDmg  = 1.4
	anaxaE6AllyDmg  = 0.5
	anaxaLCEnergy   = 10.0
	anaxaLCDmg      = 0.6
	anaxaLCDefShred = 0.12
	anaxaEnergyGain = 30.0
)

type anaxaConsts struct {
	SkillMult             float64
	UltMult               float64
	QualitativeDisclosure float64
}

var anaxaBase = anaxaConsts{
	SkillMult:             0.7,
	UltMult:               1.6,
	QualitativeDisclosure: 0.3,
}

// Anaxa prices E1 (extra skill point), E2 (extra weakness), E4 (ATK stacks on
// skill), E6 (both A4 effects at once) and the signature light cone with paired
// simulations; E3 and E5 are multiplier overrides.
type Anaxa struct {
	Stats Stats
}

func NewAnaxa() *Anaxa {
	return &Anaxa{Stats: DefaultStats()}
}

func (a *Anaxa) Name() string { return "anaxa" }

func (a *Anaxa) resolve(f domain.Flags) anaxaConsts {
	c := anaxaBase
	if f.E3 {
		c.UltMult = 1.76
	}
	if f.E5 {
		c.SkillMult = 0.77
		c.QualitativeDisclosure = 0.324
	}
	return c
}

func (a *Anaxa) FinalDamage(f domain.Flags) float64 {
	c := a.resolve(f)

	var defReduce, resPen, e6Mult float64
	var e1, e2, e4, a4, lc float64
	if f.E1 {
		defReduce = anaxaE1DefReduce
		e1 = a.e1Delta()
	}
	if f.E2 {
		resPen = anaxaE2ResPen
		e2 = a.e2Delta()
	}
	if f.E4 {
		e4 = a.e4Delta(c)
	}
	if f.E6 {
		e6Mult = anaxaE6Mult
		a4 = a.e6Delta()
	}
	if f.LC {
		lc = a.lcDelta()
	}

	chain := calc.Buff(defReduce) * calc.Buff(resPen) * calc.Buff(c.QualitativeDisclosure)
	skill := Dmg(a.Stats.ATK, c.SkillMult) * chain
	ult := Dmg(a.Stats.ATK, c.UltMult) * chain

	return (skill + ult) *
		calc.Buff(e1) *
		calc.Buff(e2) *
		calc.Buff(e4) *
		calc.Buff(e6Mult) *
		calc.Buff(a4) *
		calc.Buff(lc)
}

func (a *Anaxa) UpgradeDelta(u domain.Upgrade, f domain.Flags) (float64, error) {
	switch u {
	case domain.E1:
		return a.e1Delta(), nil
	case domain.E2:
		return a.e2Delta(), nil
	case domain.E4:
		return a.e4Delta(a.resolve(f)), nil
	case domain.E6:
		return a.e6Delta(), nil
	case domain.LC:
		return a.lcDelta(), nil
	}
	return 0, ErrStaticUpgrade
}

// e1Delta: one extra skill point at the start of the fight.
func (a *Anaxa) e1Delta() float64 {
	return sim.PairedDelta(func(upgraded bool) float64 {
		start := anaxaStartSP
		if upgraded {
			start++
		}
		return sim.SkillCycle{Start: start, SkillHit: anaxaSimSkillHit, BasicHit: anaxaSimBasicHit}.Run()
	})
}

// e2Delta: each new enemy starts with one extra weakness, so the max-weakness
// hit comes around sooner.
func (a *Anaxa) e2Delta() float64 {
	return sim.PairedDelta(func(upgraded bool) float64 {
		weakness := anaxaBaseWeakness
		newEnemy := true
		return sim.Run(sim.DefaultTurns, func(int) float64 {
			if upgraded && newEnemy {
				weakness += anaxaE2WeaknessAdd
			}
			newEnemy = false

			var dmg float64
			if weakness >= anaxaMaxWeakness {
				dmg = anaxaSimSkillHit * anaxaMaxWeaknessMult
				weakness = anaxaBaseWeakness
				newEnemy = true
			} else {
				dmg = anaxaSimSkillHit
				weakness++
			}
			weakness = min(weakness, anaxaMaxWeakness)
			return dmg
		})
	})
}

// e4Delta: using the skill grants a 2-turn ATK stack, up to 2 stacks.
func (a *Anaxa) e4Delta(c anaxaConsts) float64 {
	return sim.PairedDelta(func(upgraded bool) float64 {
		sp := sim.SkillPoints{Points: anaxaStartSP}
		stacks := sim.Stacks{Max: anaxaE4MaxStacks, Duration: anaxaE4Duration}
		return sim.Run(sim.DefaultTurns, func(int) float64 {
			atk := a.Stats.ATK
			if upgraded {
				atk *= 1 + float64(stacks.Active())*anaxaE4AtkBuff
			}

			var dmg float64
			if sp.Act() {
				dmg = Dmg(atk, c.SkillMult)
				if upgraded {
					stacks.Gain()
				}
			} else {
				dmg = Dmg(atk, 1.0)
			}
			stacks.Tick()
			return dmg
		})
	})
}

// e6Delta compares E6 (both A4 effects always on) against the average of the
// two pre-E6 team shapes: one Erudition character (crit half) and two or more
// (damage half).
func (a *Anaxa) e6Delta() float64 {
	run := func(eruditionCount int, hasE6 bool) float64 {
		critRate := a.Stats.CritRate
		critDmg := a.Stats.CritDmg
		skill := anaxaSimSkillHit
		basic := anaxaSimBasicHit

		critHalf := hasE6 || eruditionCount == 1
		dmgHalf := hasE6 || eruditionCount >= 2
		if critHalf {
			critDmg += anaxaE6CritDmg * 2
			critRate = 1.0
		}
		if dmgHalf {
			skill *= 1 + anaxaE6AllyDmg
			basic *= 1 + anaxaE6AllyDmg
		}

		crit := 1 + critRate*critDmg
		return sim.SkillCycle{Start: anaxaStartSP, SkillHit: skill * crit, BasicHit: basic * crit}.Run()
	}

	p := sim.Pair{
		Base:     (run(1, false) + run(2, false)) / 2,
		Upgraded: run(1, true),
	}
	return p.Delta()
}

// lcDelta: the light cone adds energy every turn plus a damage bonus and DEF
// shred on every skill.
func (a *Anaxa) lcDelta() float64 {
	return sim.PairedDelta(func(upgraded bool) float64 {
		energy := sim.Counter{Name: "ult_energy", Threshold: a.Stats.UltEnergy}
		var extraEnergy, dmgBonus, defShred float64
		if upgraded {
			extraEnergy = anaxaLCEnergy
			dmgBonus = anaxaLCDmg
			defShred = anaxaLCDefShred
		}

		return sim.Run(sim.DefaultTurns, func(int) float64 {
			dmg := 0.0
			energy.Add(extraEnergy)
			if energy.Fire() {
				dmg += anaxaSimSkillHit
			}
			dmg += anaxaSimSkillHit * calc.Buff(defShred) * calc.Buff(dmgBonus)
			energy.Add(anaxaEnergyGain)
			if energy.Fire() {
				dmg += anaxaSimSkillHit
			}
			return dmg
		})
	})
}
