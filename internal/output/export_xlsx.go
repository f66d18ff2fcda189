package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

const (
	ValueSheet       = "Value"
	TransitionsSheet = "Transitions"

	numFmtPercent = 10 // 0.00%
	numFmtDecimal = 4  // #,##0.00
)

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

// sheetWriter fills one sheet row by row and styles whole columns at the end.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	rows  int
}

func (s *sheetWriter) row(values ...any) error {
	s.rows++
	return s.f.SetSheetRow(s.sheet, cell(1, s.rows), &values)
}

func (s *sheetWriter) styleColumn(col int, styleID int) error {
	if s.rows < 2 {
		return nil
	}
	return s.f.SetCellStyle(s.sheet, cell(col, 2), cell(col, s.rows), styleID)
}

type styles struct {
	header  int
	percent int
	decimal int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: numFmtPercent}); err != nil {
		return st, err
	}
	if st.decimal, err = f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal}); err != nil {
		return st, err
	}
	return st, nil
}

func newSheet(f *excelize.File, name string, st styles, header ...any) (*sheetWriter, error) {
	if idx, _ := f.GetSheetIndex(name); idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	w := &sheetWriter{f: f, sheet: name}
	if err := w.row(header...); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, cell(1, 1), cell(len(header), 1), st.header); err != nil {
		return nil, err
	}
	return w, nil
}

// ExportReportXLSX writes rep to <dir>/<yyyymmdd>_eidolon_value_<character>.xlsx
// and returns the file path. Damage is stored as a fraction of the base rung
// (1.0 = 100%) so the percent format renders it.
func ExportReportXLSX(dir string, rep domain.Report, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return "", err
	}
	if err := f.SetSheetName("Sheet1", ValueSheet); err != nil {
		return "", err
	}

	value, err := newSheet(f, ValueSheet, st, "Rung", "Pulls", "Damage", "Damage % per pull")
	if err != nil {
		return "", err
	}
	for _, p := range rep.Damage {
		pulls, _ := rep.Cost.Get(p.Label)
		eff, _ := rep.Efficiency.Get(p.Label)
		if err := value.row(p.Label, pulls, p.Value/100, eff); err != nil {
			return "", err
		}
	}
	if err := value.styleColumn(3, st.percent); err != nil {
		return "", err
	}
	if err := value.styleColumn(4, st.decimal); err != nil {
		return "", err
	}

	trans, err := newSheet(f, TransitionsSheet, st, "Transition", "Marginal (damage % per pull)")
	if err != nil {
		return "", err
	}
	for _, p := range rep.Marginal {
		if err := trans.row(p.Label, p.Value); err != nil {
			return "", err
		}
	}
	if err := trans.styleColumn(2, st.decimal); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_eidolon_value_%s.xlsx", now.Format("20060102"), rep.Character)
	return save(f, dir, name)
}

// Curve sheet names.
const (
	NewbudSheet      = "Newbud"
	NewbudBandsSheet = "Newbud Bands"
	A6Sheet          = "Ruan Mei A6"
	HyacineSheet     = "Hyacine SPD"
)

// ExportCurvesXLSX writes the data curves to one workbook.
func ExportCurvesXLSX(dir string, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return "", err
	}
	if err := f.SetSheetName("Sheet1", NewbudSheet); err != nil {
		return "", err
	}

	rows := character.NewbudCurve()
	newbud, err := newSheet(f, NewbudSheet, st, "Team HP", "Ally HP", "Skills", "Heals", "Actions", "Energy per action", "Ceiling hit")
	if err != nil {
		return "", err
	}
	for _, r := range rows {
		if err := newbud.row(r.TeamHP, r.AllyHP, r.Skills, r.Heals, r.Actions, r.EnergyPerAction, r.CeilingHit); err != nil {
			return "", err
		}
	}
	if err := newbud.styleColumn(6, st.decimal); err != nil {
		return "", err
	}

	bands, err := newSheet(f, NewbudBandsSheet, st, "Band", "Min HP", "Max HP", "Min actions", "Max actions", "Avg actions", "Avg ally HP", "Vs low band")
	if err != nil {
		return "", err
	}
	for _, b := range character.NewbudBandStats(rows) {
		if err := bands.row(b.Band.Name, b.Band.Min, b.Band.Max, b.MinActions, b.MaxActions, b.AvgActions, b.AvgAllyHP, b.VsLowBand); err != nil {
			return "", err
		}
	}
	if err := bands.styleColumn(6, st.decimal); err != nil {
		return "", err
	}
	if err := bands.styleColumn(8, st.percent); err != nil {
		return "", err
	}

	a6, err := newSheet(f, A6Sheet, st, "Break effect", "Skill bonus", "A6 bonus", "Total")
	if err != nil {
		return "", err
	}
	for _, r := range character.A6Curve() {
		if err := a6.row(r.BreakEffect, r.SkillBonus, r.A6Bonus, r.Total); err != nil {
			return "", err
		}
	}
	for col := 1; col <= 4; col++ {
		if err := a6.styleColumn(col, st.percent); err != nil {
			return "", err
		}
	}

	spd, err := newSheet(f, HyacineSheet, st, "Speed", "Outgoing healing")
	if err != nil {
		return "", err
	}
	for _, r := range character.HyacineCurve() {
		if err := spd.row(r.Speed, r.HealingBoost); err != nil {
			return "", err
		}
	}
	if err := spd.styleColumn(2, st.percent); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_eidolon_value_curves.xlsx", now.Format("20060102"))
	return save(f, dir, name)
}

func save(f *excelize.File, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, name)
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}
