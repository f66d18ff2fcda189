package empirical

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet LoadXLSX reads; the first sheet is used when absent.
const SheetName = "Scenarios"

// LoadXLSX reads a sheet whose header row is "Scenario", E0, E1, ... with one
// scenario per following row. Blank cells are skipped.
func LoadXLSX(path string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, fmt.Errorf("xlsx %q: no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read %s in %q: %w", sheet, path, err)
	}
	t, err := parseRows(rows)
	if err != nil {
		return Table{}, fmt.Errorf("xlsx %q sheet %s: %w", path, sheet, err)
	}
	t.Source = path
	return t, nil
}

func parseRows(rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, errors.New("empty sheet")
	}
	header := rows[0]
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "scenario") {
		return Table{}, errors.New(`header must start with "Scenario" followed by rung labels`)
	}
	labels := make([]string, len(header))
	seen := map[string]bool{}
	for i := 1; i < len(header); i++ {
		label, err := canonicalLabel(header[i])
		if err != nil {
			return Table{}, fmt.Errorf("header column %d: %w", i+1, err)
		}
		if seen[label] {
			return Table{}, fmt.Errorf("header column %d: %w %s", i+1, ErrDuplicateRung, label)
		}
		seen[label] = true
		labels[i] = label
	}

	var t Table
	for r, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		sc := Scenario{Name: strings.TrimSpace(row[0])}
		for i := 1; i < len(row) && i < len(labels); i++ {
			v, ok := parseFloatCell(row[i])
			if !ok {
				if strings.TrimSpace(row[i]) != "" {
					return Table{}, fmt.Errorf("row %d column %s: %q is not a number", r+2, labels[i], row[i])
				}
				continue
			}
			sc.Values.Set(labels[i], v)
		}
		t.Scenarios = append(t.Scenarios, sc)
	}
	return t, nil
}

// parseFloatCell accepts plain numbers, comma decimals and percent-formatted
// cells ("120.00%" -> 1.2).
func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	isPct := strings.HasSuffix(s, "%")
	if isPct {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if isPct {
		v /= 100.0
	}
	return v, true
}
