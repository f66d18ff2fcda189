package empirical

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads the same shapes as LoadJSON from YAML, keeping key order.
func LoadYAML(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read empirical %q: %w", path, err)
	}
	t, err := ParseYAML(b)
	if err != nil {
		return Table{}, fmt.Errorf("empirical %q: %w", path, err)
	}
	t.Source = path
	return t, nil
}

func ParseYAML(b []byte) (Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Table{}, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Table{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Table{}, errors.New("top level must be a mapping of scenarios")
	}

	var t Table
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i].Value, root.Content[i+1]
		values := body
		if nested := mappingValue(body, nestedKey); nested != nil {
			values = nested
		}
		if values.Kind != yaml.MappingNode {
			return Table{}, fmt.Errorf("scenario %q: want a mapping of rung values", name)
		}

		sc := Scenario{Name: name}
		for j := 0; j+1 < len(values.Content); j += 2 {
			k, v := values.Content[j].Value, values.Content[j+1]
			f, err := strconv.ParseFloat(v.Value, 64)
			if v.Kind != yaml.ScalarNode || err != nil {
				return Table{}, fmt.Errorf("scenario %q %s: not a number (line %d)", name, k, v.Line)
			}
			if err := sc.add(k, f); err != nil {
				return Table{}, fmt.Errorf("scenario %q: %w", name, err)
			}
		}
		t.Scenarios = append(t.Scenarios, sc)
	}
	return t, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
