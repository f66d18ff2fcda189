package empirical

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadJSON reads {scenario: {"dmg-percent": {E0: .., E1: ..}}} or the flat
// {scenario: {E0: .., E1: ..}} form. Key order is preserved.
func LoadJSON(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read empirical %q: %w", path, err)
	}
	t, err := ParseJSON(b)
	if err != nil {
		return Table{}, fmt.Errorf("empirical %q: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// ParseJSON is LoadJSON on an in-memory document.
func ParseJSON(b []byte) (Table, error) {
	if !gjson.ValidBytes(b) {
		return Table{}, errors.New("invalid json")
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return Table{}, errors.New("top level must be an object of scenarios")
	}

	var t Table
	var perr error
	root.ForEach(func(name, body gjson.Result) bool {
		values := body
		if nested := body.Get(nestedKey); nested.Exists() {
			values = nested
		}
		if !values.IsObject() {
			perr = fmt.Errorf("scenario %q: want an object of rung values", name.String())
			return false
		}

		sc := Scenario{Name: name.String()}
		values.ForEach(func(k, v gjson.Result) bool {
			if v.Type != gjson.Number {
				perr = fmt.Errorf("scenario %q %s: not a number", sc.Name, k.String())
				return false
			}
			if err := sc.add(k.String(), v.Float()); err != nil {
				perr = fmt.Errorf("scenario %q: %w", sc.Name, err)
				return false
			}
			return true
		})
		if perr != nil {
			return false
		}
		t.Scenarios = append(t.Scenarios, sc)
		return true
	})
	if perr != nil {
		return Table{}, perr
	}
	return t, nil
}
