// Package app wires configuration, the rule sets and the pipeline into the
// eidolon_value command.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/character"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/config"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/domain"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/empirical"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/engine"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/ladder"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/logging"
	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/output"
)

type Options struct {
	UseExamples bool
	// ConfigPath overrides the config location. Relative empirical paths and
	// the output dir are still resolved against the app root.
	ConfigPath string
	// Root skips FindRoot when set.
	Root   string
	Stdout io.Writer
	Now    func() time.Time
}

// Run executes the eidolon value flow and returns the desired process exit code.
func Run() int {
	return RunWithOptions(Options{})
}

// RunWithOptions executes the eidolon value flow and returns the desired process exit code.
func RunWithOptions(opts Options) int {
	appRoot := opts.Root
	if appRoot == "" {
		root, err := FindRoot()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		appRoot = root
	}

	if err := run(context.Background(), appRoot, opts); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	return ExitOK
}

func run(ctx context.Context, appRoot string, opts Options) error {
	totalStart := time.Now()
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	configPath := filepath.Join(appRoot, config.FileName)
	if opts.UseExamples {
		configPath = examplesConfigPath(appRoot)
	}
	if opts.ConfigPath != "" {
		configPath = opts.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	chars, err := selectCharacters(cfg)
	if err != nil {
		return err
	}
	log.Info("starting",
		zap.String("config", configPath),
		zap.String("mode", string(cfg.Mode)),
		zap.Strings("characters", chars),
	)

	costs := ladder.CostTable{PerCopy: cfg.Pulls.PerCopy, LightCone: cfg.Pulls.LightCone}.
		Cumulative(domain.Ladder())
	outDir := resolvePath(appRoot, cfg.Output.Dir)

	var errs error
	reported := 0
	for i, char := range chars {
		fmt.Fprintf(stdout, "Progress: %d/%d %s\n", i+1, len(chars), char)

		raw, err := rawSeries(ctx, appRoot, cfg, char, log)
		if err != nil {
			log.Error("character failed", zap.String("character", char), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		rep, err := ladder.Build(char, cfg.Mode, raw, costs)
		if err != nil {
			log.Error("pipeline failed", zap.String("character", char), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		output.PrintReport(stdout, rep)
		reported++

		if cfg.XLSXEnabled() {
			path, err := output.ExportReportXLSX(outDir, rep, now())
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: export xlsx: %w", char, err))
				continue
			}
			fmt.Fprintf(stdout, "Exported results to %s\n", path)
		}
	}

	if cfg.Curves {
		if err := exportCurves(stdout, outDir, cfg, now(), log); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	log.Info("done", zap.Duration("elapsed", time.Since(totalStart).Round(time.Millisecond)))
	if errs != nil {
		if reported > 0 {
			return ExitWithError(ExitPartial, errs)
		}
		return ExitWithError(ExitFailure, errs)
	}
	return nil
}

// selectCharacters returns the configured characters, or every registered rule
// set in simulation mode and every empirical source in empirical mode.
func selectCharacters(cfg domain.Config) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		key := character.Normalize(name)
		if key != "" && !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}

	switch {
	case len(cfg.Characters) > 0:
		for _, c := range cfg.Characters {
			add(c)
		}
	case cfg.Mode == domain.ModeEmpirical:
		for _, e := range cfg.Empirical {
			add(e.Char)
		}
	default:
		for _, c := range character.Names() {
			add(c)
		}
	}

	if cfg.Mode == domain.ModeSimulation {
		var errs error
		for _, c := range out {
			if _, err := character.Factory(c); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if errs != nil {
			return nil, errs
		}
	}
	return out, nil
}

func rawSeries(ctx context.Context, appRoot string, cfg domain.Config, char string, log *zap.Logger) (domain.Series, error) {
	switch cfg.Mode {
	case domain.ModeEmpirical:
		var tables []empirical.Table
		for _, src := range cfg.Empirical {
			if character.Normalize(src.Char) != char {
				continue
			}
			t, err := empirical.Load(resolvePath(appRoot, src.Path))
			if err != nil {
				return nil, err
			}
			log.Debug("empirical table loaded", zap.String("character", char), zap.String("path", t.Source), zap.Int("scenarios", len(t.Scenarios)))
			tables = append(tables, t)
		}
		if len(tables) == 0 {
			return nil, fmt.Errorf("%s: no empirical source configured: %w", char, empirical.ErrNoScenarios)
		}
		merged := empirical.Table{Source: char}
		for _, t := range tables {
			merged.Scenarios = append(merged.Scenarios, t.Scenarios...)
		}
		return empirical.Average(merged)
	default:
		factory, err := character.Factory(char)
		if err != nil {
			return nil, err
		}
		return engine.Evaluate(ctx, factory, domain.Ladder(), engine.Options{
			Parallel: cfg.ParallelEnabled(),
			Logger:   log,
		})
	}
}

func exportCurves(stdout io.Writer, outDir string, cfg domain.Config, now time.Time, log *zap.Logger) error {
	rows := character.NewbudCurve()
	for _, r := range rows {
		if r.CeilingHit {
			log.Warn("newbud loop hit the iteration ceiling",
				zap.Float64("team_hp", r.TeamHP),
				zap.Int("skills", r.Skills),
			)
		}
	}
	output.PrintNewbud(stdout, rows, character.NewbudBandStats(rows))

	pool := character.NewbudPoolReference()
	if pool.CeilingHit {
		log.Warn("newbud pool hit the iteration ceiling",
			zap.Float64("pool", character.NewbudPoolStart),
			zap.Int("turns", pool.Turns),
		)
	}
	output.PrintNewbudPool(stdout, character.NewbudPoolStart, pool)

	if !cfg.XLSXEnabled() {
		return nil
	}
	path, err := output.ExportCurvesXLSX(outDir, now)
	if err != nil {
		return fmt.Errorf("export curves: %w", err)
	}
	fmt.Fprintf(stdout, "Exported curves to %s\n", path)
	return nil
}

func resolvePath(root, p string) string {
	p = strings.TrimSpace(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
