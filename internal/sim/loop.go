// Package sim is the turn-based resource-economy simulator the character rule
// sets use to price upgrades whose effect depends on turn-by-turn behavior.
//
// Runs are pure and bounded: either a fixed horizon of turns or a
// threshold-seeking loop capped by a ceiling.
package sim

import "github.com/genshinsim/gcsim/apps/eidolon_value/internal/calc"

const (
	// DefaultTurns is the horizon used by fixed-length runs.
	DefaultTurns = 1000
	// DefaultCeiling caps threshold-seeking loops.
	DefaultCeiling = 50
)

// Run advances turns 0..turns-1 and sums what step emits each turn.
func Run(turns int, step func(turn int) float64) float64 {
	total := 0.0
	for turn := 0; turn < turns; turn++ {
		total += step(turn)
	}
	return total
}

// Pair holds the two halves of a paired experiment.
type Pair struct {
	Base     float64
	Upgraded float64
}

// Delta is the relative gain of the upgraded run as a decimal.
func (p Pair) Delta() float64 {
	return calc.PercentChange(p.Base, p.Upgraded)
}

// Paired runs model once with the mechanic disabled and once enabled. The model
// must let only that single mechanic depend on the flag.
func Paired(model func(upgraded bool) float64) Pair {
	return Pair{Base: model(false), Upgraded: model(true)}
}

// PairedDelta is Paired(model).Delta().
func PairedDelta(model func(upgraded bool) float64) float64 {
	return Paired(model).Delta()
}

// SeekResult reports how a threshold-seeking loop ended.
type SeekResult struct {
	Turns int
	// CeilingHit is set when the loop stopped at the ceiling before the goal
	// was reached. The configuration is probably degenerate.
	CeilingHit bool
}

// Seek calls step with turn = 1, 2, ... until it reports the goal reached or
// the ceiling is hit. between, when non-nil, runs after every turn that ended
// neither way (top-ups, heals). A non-positive ceiling uses DefaultCeiling.
func Seek(ceiling int, step func(turn int) (done bool), between func(turn int)) SeekResult {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	for turn := 1; ; turn++ {
		if step(turn) {
			return SeekResult{Turns: turn}
		}
		if turn >= ceiling {
			return SeekResult{Turns: turn, CeilingHit: true}
		}
		if between != nil {
			between(turn)
		}
	}
}
