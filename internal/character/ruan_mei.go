package character

import (
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/sim"
)

const (
	ruanMeiUltEnergy      = 130
	ruanMeiSkillMult      = 2.0
	ruanMeiUltMult        = 1.6
	ruanMeiSkillBE        = 0.5
	ruanMeiTalentSpd      = 0.1
	ruanMeiUltBreakMult   = 0.5
	ruanMeiBaseBreakDmg   = 2000.0
	ruanMeiE1DefIgnore    = 0.2
	ruanMeiE2AtkBuff      = 0.4
	ruanMeiE4BreakEffect  = 1.0
	ruanMeiE6TalentAdd    = 2.0
	ruanMeiLCBreakEffect  = 0.6
	ruanMeiLCDmg          = 0.24
	ruanMeiStartSP        = 3
	ruanMeiLCBonusSPEvery = 4
	ruanMeiEnergyRegen    = 30.0
	ruanMeiLCEnergyRegen  = 32.0 // +10 per 5-turn wave
	ruanMeiNonUltDmg      = 200.0

	ruanMeiUltTurns   = 3
	ruanMeiE6UltTurns = 4

	// A6: every 10% break effect above 120% adds 6% damage, capped at 36%.
	ruanMeiA6Threshold = 1.2
	ruanMeiA6PerStep   = 0.06
	ruanMeiA6Step      = 0.1
	ruanMeiA6Cap       = 0.36
)

type ruanMeiConsts struct {
	SkillDmgBonus   float64
	ResPenFromUlt   float64
	TalentBreakMult float64
}

var ruanMeiBase = ruanMeiConsts{
	SkillDmgBonus:   0.32,
	ResPenFromUlt:   0.25,
	TalentBreakMult: 1.2,
}

// RuanMei is a break-effect support. E6 (longer ultimate field) and the light
// cone (skill points and energy) are simulated; the rest are constant overrides
// or flat stat gains.
type RuanMei struct {
	Stats Stats
}

func NewRuanMei() *RuanMei {
	s := DefaultStats()
	s.UltEnergy = ruanMeiUltEnergy
	return &RuanMei{Stats: s}
}

func (r *RuanMei) Name() string { return "ruan_mei" }

func (r *RuanMei) resolve(f domain.Flags) ruanMeiConsts {
	c := ruanMeiBase
	if f.E3 {
		c.ResPenFromUlt = 0.27
		c.TalentBreakMult = 1.32
	}
	if f.E5 {
		c.SkillDmgBonus = 0.352
	}
	if f.E6 {
		c.TalentBreakMult = 1.32 + ruanMeiE6TalentAdd
	}
	return c
}

// A6Bonus is the extra damage granted by the A6 trace at break effect be.
func A6Bonus(be float64) float64 {
	if be <= ruanMeiA6Threshold {
		return 0
	}
	return min(ruanMeiA6Cap, (be-ruanMeiA6Threshold)/ruanMeiA6Step*ruanMeiA6PerStep)
}

// BreakEffect is the total break effect under f.
func (r *RuanMei) BreakEffect(f domain.Flags) float64 {
	be := r.Stats.BreakEffect + ruanMeiSkillBE
	if f.E4 {
		be += ruanMeiE4BreakEffect
	}
	if f.LC {
		be += ruanMeiLCBreakEffect
	}
	return be
}

func (r *RuanMei) FinalDamage(f domain.Flags) float64 {
	c := r.resolve(f)
	be := r.BreakEffect(f)

	var defIgnore, atkInc, ultDur float64
	var lcDmg, sp, energy float64
	if f.E1 {
		defIgnore = ruanMeiE1DefIgnore
	}
	if f.E2 {
		atkInc = ruanMeiE2AtkBuff
	}
	if f.E6 {
		ultDur = r.ultDurationDelta(c)
	}
	if f.LC {
		lcDmg = ruanMeiLCDmg
		sp = r.skillPointDelta()
		energy = r.energyRegenDelta()
	}

	chain := calc.Buff(A6Bonus(be)) *
		calc.Buff(c.ResPenFromUlt) *
		calc.Buff(defIgnore) *
		calc.Buff(ruanMeiTalentSpd) *
		calc.Buff(lcDmg) *
		calc.Buff(sp) *
		calc.Buff(energy) *
		calc.Buff(ultDur)

	skill := Dmg(r.Stats.ATK*calc.Buff(atkInc), ruanMeiSkillMult) * calc.Buff(c.SkillDmgBonus) * chain
	breakBase := BreakDmg(ruanMeiBaseBreakDmg, be)
	talentBreak := breakBase * c.TalentBreakMult * chain
	ultBreak := breakBase * ruanMeiUltBreakMult * chain

	return skill + talentBreak + ultBreak
}

func (r *RuanMei) UpgradeDelta(u domain.Upgrade, f domain.Flags) (float64, error) {
	switch u {
	case domain.E6:
		return r.ultDurationDelta(r.resolve(f)), nil
	case domain.LC:
		return calc.Buff(r.skillPointDelta())*calc.Buff(r.energyRegenDelta()) - 1, nil
	}
	return 0, ErrStaticUpgrade
}

// skillPointDelta: one extra starting point plus one every 4 turns.
func (r *RuanMei) skillPointDelta() float64 {
	skill := Dmg(r.Stats.ATK, ruanMeiSkillMult)
	basic := Dmg(r.Stats.ATK, 1.0)
	return sim.PairedDelta(func(upgraded bool) float64 {
		cycle := sim.SkillCycle{Start: ruanMeiStartSP, SkillHit: skill, BasicHit: basic}
		if upgraded {
			cycle.Start++
			cycle.BonusEvery = ruanMeiLCBonusSPEvery
		}
		return cycle.Run()
	})
}

// energyRegenDelta: faster ultimate energy means more ultimates over the horizon.
func (r *RuanMei) energyRegenDelta() float64 {
	ult := Dmg(r.Stats.ATK, ruanMeiUltMult)
	return sim.PairedDelta(func(upgraded bool) float64 {
		regen := ruanMeiEnergyRegen
		if upgraded {
			regen = ruanMeiLCEnergyRegen
		}
		energy := sim.Counter{Name: "ult_energy", Threshold: r.Stats.UltEnergy}
		return sim.Run(sim.DefaultTurns, func(int) float64 {
			dmg := ruanMeiNonUltDmg
			energy.Add(regen)
			for energy.FireCarry() {
				dmg += ult
			}
			return dmg
		})
	})
}

// ultDurationDelta: the ultimate's RES PEN field lasts one turn longer.
func (r *RuanMei) ultDurationDelta(c ruanMeiConsts) float64 {
	hit := Dmg(r.Stats.ATK, ruanMeiSkillMult)
	buffed := hit * calc.Buff(c.ResPenFromUlt)
	p := sim.Pair{
		Base:     buffed*ruanMeiUltTurns + hit,
		Upgraded: buffed * ruanMeiE6UltTurns,
	}
	return p.Delta()
}
