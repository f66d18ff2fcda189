package character

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/sim"
)

// Newbud economy used by Castorice's team-HP curve.
const (
	NewbudThreshold = 34000.0
	NewbudRate      = 0.30
	NewbudHeal      = 1600.0
	NewbudMinTeamHP = 15000
	NewbudMaxTeamHP = 33000
	NewbudHPStep    = 1000
)

// NewbudRow is one team-HP point of the Newbud curve.
type NewbudRow struct {
	TeamHP          float64
	AllyHP          float64
	Skills          int
	Heals           int
	Actions         int
	EnergyPerAction float64
	CeilingHit      bool
}

// NewbudCurve runs the rotational-heal team model for every combined HP from
// 15,000 to 33,000: Castorice at her own HP plus three equal allies.
func NewbudCurve() []NewbudRow {
	var rows []NewbudRow
	for hp := NewbudMinTeamHP; hp <= NewbudMaxTeamHP; hp += NewbudHPStep {
		rows = append(rows, NewbudAt(float64(hp)))
	}
	return rows
}

// NewbudAt evaluates a single combined team HP.
func NewbudAt(teamHP float64) NewbudRow {
	ally := (teamHP - castoriceHP) / 3
	res := sim.NewbudTeam{
		Members:   []float64{castoriceHP, ally, ally, ally},
		Rate:      NewbudRate,
		Heal:      NewbudHeal,
		Threshold: NewbudThreshold,
		Ceiling:   sim.DefaultCeiling,
	}.Run()

	actions := res.Turns + res.TopUps
	return NewbudRow{
		TeamHP:          teamHP,
		AllyHP:          ally,
		Skills:          res.Turns,
		Heals:           res.TopUps,
		Actions:         actions,
		EnergyPerAction: res.Energy / float64(actions),
		CeilingHit:      res.CeilingHit,
	}
}

// Single-pool Newbud reference: the whole team as one HP pool, topped up by
// one heal every other turn.
const (
	NewbudPoolStart      = 8000.0
	NewbudPoolTopUpEvery = 2
)

// NewbudPoolReference runs the single-pool economy at NewbudPoolStart.
func NewbudPoolReference() sim.NewbudResult {
	return sim.NewbudPool{
		Pool:       NewbudPoolStart,
		Rate:       NewbudRate,
		TopUp:      NewbudHeal,
		TopUpEvery: NewbudPoolTopUpEvery,
		Threshold:  NewbudThreshold,
		Ceiling:    sim.DefaultCeiling,
	}.Run()
}

// HPBand is a named range of combined team HP.
type HPBand struct {
	Name string
	Min  float64
	Max  float64
}

var NewbudBands = []HPBand{
	{Name: "low", Min: 15000, Max: 19000},
	{Name: "optimal", Min: 20000, Max: 26000},
	{Name: "high", Min: 27000, Max: 33000},
}

// BandStats summarizes the curve rows inside one band.
type BandStats struct {
	Band        HPBand
	Rows        int
	MinActions  int
	MaxActions  int
	AvgActions  float64
	AvgAllyHP   float64
	VsLowBand   float64 // relative change in average actions against the first band
	VsLowBandOK bool
}

// NewbudBandStats groups rows into NewbudBands. Bands with no rows are
// omitted. VsLowBand is only set when the first band has rows.
func NewbudBandStats(rows []NewbudRow) []BandStats {
	var out []BandStats
	var lowAvg float64
	for i, b := range NewbudBands {
		var actions, allies []float64
		s := BandStats{Band: b}
		for _, r := range rows {
			if r.TeamHP < b.Min || r.TeamHP > b.Max {
				continue
			}
			if s.Rows == 0 || r.Actions < s.MinActions {
				s.MinActions = r.Actions
			}
			s.MaxActions = max(s.MaxActions, r.Actions)
			s.Rows++
			actions = append(actions, float64(r.Actions))
			allies = append(allies, r.AllyHP)
		}
		if s.Rows == 0 {
			continue
		}
		s.AvgActions = stats.Mean(actions)
		s.AvgAllyHP = stats.Mean(allies)
		if i == 0 {
			lowAvg = s.AvgActions
		}
		if v, err := calc.CheckedPercentChange(lowAvg, s.AvgActions); err == nil {
			s.VsLowBand = v
			s.VsLowBandOK = true
		}
		out = append(out, s)
	}
	return out
}

// A6Row is one point of Ruan Mei's A6 break-effect curve.
type A6Row struct {
	BreakEffect float64
	Percent     float64
	SkillBonus  float64
	A6Bonus     float64
	Total       float64
}

// A6Curve walks break effect from 100% to 200% in 1% steps.
func A6Curve() []A6Row {
	var rows []A6Row
	for pct := 100; pct <= 200; pct++ {
		be := float64(pct) / 100
		bonus := A6Bonus(be)
		rows = append(rows, A6Row{
			BreakEffect: be,
			Percent:     float64(pct),
			SkillBonus:  ruanMeiBase.SkillDmgBonus,
			A6Bonus:     bonus,
			Total:       ruanMeiBase.SkillDmgBonus + bonus,
		})
	}
	return rows
}

const (
	hyacineMinSpeed       = 110
	hyacineMaxSpeed       = 400
	hyacineSpeedCondition = 200
	hyacineHealPerSpeed   = 0.01
)

// SpeedRow is one point of Hyacine's speed-to-healing curve.
type SpeedRow struct {
	Speed        int
	HealingBoost float64
}

// HyacineHealing is the outgoing healing bonus at spd.
func HyacineHealing(spd int) float64 {
	if spd <= hyacineSpeedCondition {
		return 0
	}
	return float64(spd-hyacineSpeedCondition) * hyacineHealPerSpeed
}

// HyacineCurve walks speed from 110 to 400.
func HyacineCurve() []SpeedRow {
	rows := make([]SpeedRow, 0, hyacineMaxSpeed-hyacineMinSpeed+1)
	for spd := hyacineMinSpeed; spd <= hyacineMaxSpeed; spd++ {
		rows = append(rows, SpeedRow{Speed: spd, HealingBoost: HyacineHealing(spd)})
	}
	return rows
}
