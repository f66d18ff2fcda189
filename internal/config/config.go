// Package config loads eidolon_config.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
)

const (
	FileName         = "eidolon_config.yaml"
	DefaultOutputDir = "output/eidolon_value"
	DefaultLogLevel  = "info"
	DefaultPerCopy   = 77
	DefaultLightCone = 69
)

// Overrides are the environment variables that replace file values when set.
type Overrides struct {
	LogLevel  string  `env:"EIDOLON_VALUE_LOG_LEVEL"`
	PerCopy   float64 `env:"EIDOLON_VALUE_PULLS_PER_COPY"`
	LightCone float64 `env:"EIDOLON_VALUE_LC_PULLS"`
	OutputDir string  `env:"EIDOLON_VALUE_OUTPUT_DIR"`
	Mode      string  `env:"EIDOLON_VALUE_MODE"`
}

// Load reads path, fills defaults, applies the environment and validates.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("read %s (%s): %w", FileName, path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", FileName, err)
	}
	return cfg, nil
}

// Parse decodes the YAML document and fills defaults for absent keys.
func Parse(b []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return domain.Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *domain.Config) {
	if cfg.Mode == "" {
		cfg.Mode = domain.ModeSimulation
	}
	if cfg.Pulls.PerCopy == 0 {
		cfg.Pulls.PerCopy = DefaultPerCopy
	}
	if cfg.Pulls.LightCone == 0 {
		cfg.Pulls.LightCone = DefaultLightCone
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// ApplyEnv overlays the EIDOLON_VALUE_* variables on cfg. Unset variables keep
// the file value.
func ApplyEnv(cfg *domain.Config) error {
	o := Overrides{
		LogLevel:  cfg.LogLevel,
		PerCopy:   cfg.Pulls.PerCopy,
		LightCone: cfg.Pulls.LightCone,
		OutputDir: cfg.Output.Dir,
		Mode:      string(cfg.Mode),
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = o.LogLevel
	cfg.Pulls.PerCopy = o.PerCopy
	cfg.Pulls.LightCone = o.LightCone
	cfg.Output.Dir = o.OutputDir
	cfg.Mode = domain.Mode(strings.ToLower(strings.TrimSpace(o.Mode)))
	return nil
}

// Validate reports every problem in cfg at once.
func Validate(cfg domain.Config) error {
	var errs error
	switch cfg.Mode {
	case domain.ModeSimulation, domain.ModeEmpirical:
	default:
		errs = multierr.Append(errs, fmt.Errorf("mode: unknown %q (want %q or %q)", cfg.Mode, domain.ModeSimulation, domain.ModeEmpirical))
	}
	if cfg.Pulls.PerCopy <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("pulls.per_copy must be positive, got %v", cfg.Pulls.PerCopy))
	}
	if cfg.Pulls.LightCone <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("pulls.light_cone must be positive, got %v", cfg.Pulls.LightCone))
	}
	for i, e := range cfg.Empirical {
		if strings.TrimSpace(e.Char) == "" {
			errs = multierr.Append(errs, fmt.Errorf("empirical[%d]: char is required", i))
		}
		if strings.TrimSpace(e.Path) == "" {
			errs = multierr.Append(errs, fmt.Errorf("empirical[%d]: path is required", i))
		}
	}
	if cfg.Mode == domain.ModeEmpirical && len(cfg.Empirical) == 0 {
		errs = multierr.Append(errs, errors.New("mode empirical needs at least one empirical entry"))
	}
	return errs
}
