package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeSimulation Mode = "simulation"
	ModeEmpirical  Mode = "empirical"
)

type Config struct {
	// Characters limits the run to these rule sets. Empty means every registered character.
	Characters []string `yaml:"characters"`
	Mode       Mode     `yaml:"mode"`
	// Empirical points each character at a table of externally measured damage
	// percentages. Only read when mode is "empirical".
	Empirical []EmpiricalSource `yaml:"empirical"`
	Pulls     PullsConfig       `yaml:"pulls"`
	Output    OutputConfig      `yaml:"output"`
	// Curves additionally exports the per-character data curves (Newbud actions,
	// A6 break effect, speed vs healing).
	Curves   bool   `yaml:"curves"`
	LogLevel string `yaml:"log_level"`
	Parallel *bool  `yaml:"parallel"`
}

type EmpiricalSource struct {
	Char string `yaml:"char"`
	Path string `yaml:"path"`
}

type PullsConfig struct {
	PerCopy   float64 `yaml:"per_copy"`
	LightCone float64 `yaml:"light_cone"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`
	XLSX *bool  `yaml:"xlsx"`
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		allowed := map[string]struct{}{
			"characters": {},
			"mode":       {},
			"empirical":  {},
			"pulls":      {},
			"output":     {},
			"curves":     {},
			"log_level":  {},
			"parallel":   {},
		}

		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := allowed[k.Value]; !ok {
				return fmt.Errorf("config: unsupported key %q", k.Value)
			}
		}
	}

	type raw Config
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// ParallelEnabled defaults to true when the key is absent.
func (c Config) ParallelEnabled() bool {
	return c.Parallel == nil || *c.Parallel
}

// XLSXEnabled defaults to true when the key is absent.
func (c Config) XLSXEnabled() bool {
	return c.Output.XLSX == nil || *c.Output.XLSX
}

// Report is the pipeline output for one character, consumed by the console
// printer and the workbook exporter.
type Report struct {
	Character  string
	Mode       Mode
	Damage     Series // rung -> damage percentage (base rung = 100)
	Cost       Series // rung -> cumulative pulls
	Efficiency Series // rung -> damage percentage per pull
	Marginal   Series // "E0-E1" -> damage percentage gained per additional pull
}
