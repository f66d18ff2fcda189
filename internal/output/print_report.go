package output

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/sim"
)

var printer = message.NewPrinter(language.English)

// PrintReport writes the per-rung and per-transition tables of rep.
func PrintReport(w io.Writer, rep domain.Report) {
	if len(rep.Damage) == 0 {
		printer.Fprintf(w, "%s: no results\n", rep.Character)
		return
	}

	printer.Fprintf(w, "%s (%s):\n", rep.Character, rep.Mode)
	for _, p := range rep.Damage {
		pulls, _ := rep.Cost.Get(p.Label)
		eff, _ := rep.Efficiency.Get(p.Label)
		printer.Fprintf(w, "- %-3s pulls=%v damage=%.2f%% per_pull=%.4f\n", p.Label, pulls, p.Value, eff)
	}
	if len(rep.Marginal) > 0 {
		printer.Fprintf(w, "Marginal value (damage %% per extra pull):\n")
		for _, p := range rep.Marginal {
			printer.Fprintf(w, "- %-5s %.4f\n", p.Label, p.Value)
		}
	}
}

// PrintNewbud writes the Newbud team-HP curve and its band summary.
func PrintNewbud(w io.Writer, rows []character.NewbudRow, bands []character.BandStats) {
	printer.Fprintf(w, "Newbud actions by combined team HP:\n")
	for _, r := range rows {
		flag := ""
		if r.CeilingHit {
			flag = " (ceiling)"
		}
		printer.Fprintf(w, "- hp=%v skills=%d heals=%d actions=%d energy/action=%.1f%s\n",
			r.TeamHP, r.Skills, r.Heals, r.Actions, r.EnergyPerAction, flag)
	}
	for _, b := range bands {
		printer.Fprintf(w, "- %s band %v-%v: actions %d..%d avg=%.2f ally_hp=%.0f vs_low=%+.1f%%\n",
			b.Band.Name, b.Band.Min, b.Band.Max, b.MinActions, b.MaxActions, b.AvgActions, b.AvgAllyHP, b.VsLowBand*100)
	}
}

// PrintNewbudPool writes the single-pool Newbud reference run.
func PrintNewbudPool(w io.Writer, pool float64, res sim.NewbudResult) {
	flag := ""
	if res.CeilingHit {
		flag = " (ceiling)"
	}
	printer.Fprintf(w, "Newbud single pool %v: turns=%d top_ups=%d energy=%.0f%s\n",
		pool, res.Turns, res.TopUps, res.Energy, flag)
}
