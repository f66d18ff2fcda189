// Package empirical reads externally measured per-scenario damage tables and
// averages them into one rung -> damage series.
package empirical

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

var (
	// ErrNoScenarios is returned when a table holds no usable scenario.
	ErrNoScenarios = errors.New("no scenarios")
	// ErrDuplicateRung is returned when two keys of one scenario name the
	// same rung, e.g. "E1" and "e1".
	ErrDuplicateRung = errors.New("duplicate rung")
)

// nestedKey is the per-scenario key holding the rung values in nested documents.
const nestedKey = "dmg-percent"

// Scenario is one external measurement: rung label -> damage percentage.
type Scenario struct {
	Name   string
	Values domain.Series
}

// add canonicalizes label and stores v under it.
func (sc *Scenario) add(label string, v float64) error {
	canon, err := canonicalLabel(label)
	if err != nil {
		return err
	}
	if _, dup := sc.Values.Get(canon); dup {
		return fmt.Errorf("%w %s (key %q)", ErrDuplicateRung, canon, label)
	}
	sc.Values.Set(canon, v)
	return nil
}

// Table is every scenario of one source, in document order.
type Table struct {
	Source    string
	Scenarios []Scenario
}

// Load picks the reader from the file extension.
func Load(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return Table{}, fmt.Errorf("empirical %q: unsupported extension (want .json, .yaml, .yml or .xlsx)", path)
	}
}

// Average folds the scenarios into one series. Each rung is averaged over the
// scenarios that report it; labels keep their first-seen order.
func Average(t Table) (domain.Series, error) {
	if len(t.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: %w", t.Source, ErrNoScenarios)
	}

	var order []string
	values := map[string][]float64{}
	for _, sc := range t.Scenarios {
		for _, p := range sc.Values {
			if _, ok := values[p.Label]; !ok {
				order = append(order, p.Label)
			}
			values[p.Label] = append(values[p.Label], p.Value)
		}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%s: %w: scenarios carry no rung values", t.Source, ErrNoScenarios)
	}

	out := make(domain.Series, 0, len(order))
	for _, label := range order {
		out.Set(label, stats.Mean(values[label]))
	}
	return out, nil
}

// canonicalLabel validates a rung label and returns its canonical spelling.
func canonicalLabel(label string) (string, error) {
	r, err := domain.ParseRung(label)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
