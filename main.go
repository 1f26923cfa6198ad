package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/game"
	"github.com/pthm-cable/swamp/telemetry"
)

// errUsage marks bad positional arguments.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("swamp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: swamp [flags] <snails> <simulationDuration>\n")
		fs.PrintDefaults()
	}

	// CLI flags
	configPath := fs.String("config", config.DefaultPath, "Path to the JSON config file")
	seed := fs.Int64("seed", 0, "Base RNG seed (0 = time-based)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	results := fs.String("results", "", "Results CSV, appended to (empty = use config)")
	positions := fs.String("positions", "", "Per-snail position CSV (empty = use config)")
	trajectory := fs.String("trajectory", "", "Per-tick region CSV (empty = use config, disabled if unset)")
	store := fs.String("store", "", "Result store: csv or sqlite (empty = use config)")
	sqlitePath := fs.String("sqlite", "", "SQLite database for -store sqlite (empty = use config)")
	reproRange := fs.String("repro", "", "Reproduction probability range start:end, end exclusive")
	predRange := fs.String("pred", "", "Predation probability range start:end, end exclusive")
	workers := fs.Int("workers", 1, "Concurrent runs; above 1 computes combinations in parallel, output order unchanged")
	snapshot := fs.String("config-snapshot", "", "Write the effective config as YAML to this path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	snails, duration, err := parseArgs(fs.Args())
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Bad log level %q.\n", *logLevel)
		return 1
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		return 1
	}
	cfg := config.Cfg()

	if err := applyOverrides(cfg, overrides{
		results:    *results,
		positions:  *positions,
		trajectory: *trajectory,
		store:      *store,
		sqlitePath: *sqlitePath,
		repro:      *reproRange,
		pred:       *predRange,
	}); err != nil {
		slog.Error("invalid flags", "error", err)
		return 1
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	ctx := context.Background()

	paths := telemetry.OutputPaths{Results: cfg.Output.Results, Trajectory: cfg.Output.Trajectory}
	if cfg.Output.WritePositions {
		paths.Positions = cfg.Output.Positions
	}
	om, err := telemetry.NewOutputManager(paths)
	if err != nil {
		slog.Error("failed to open output files", "error", err)
		return 1
	}

	rs, err := telemetry.NewStore(ctx, cfg.Output.Store, om, cfg.Output.SQLitePath)
	if err != nil {
		om.Close()
		slog.Error("failed to open result store", "error", err)
		return 1
	}
	defer rs.Close()

	if err := om.WriteConfig(cfg, *snapshot); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		return 1
	}

	report, err := game.Sweep(ctx, cfg, game.SweepOptions{
		Snails:   snails,
		Duration: duration,
		BaseSeed: baseSeed,
		Workers:  *workers,
	}, rs, om)
	if err != nil {
		slog.Error("sweep failed", "run_id", report.RunID, "runs", report.Runs, "error", err)
		return 1
	}

	out := []string{om.ResultsPath()}
	if paths.Positions != "" {
		out = append(out, paths.Positions)
	}
	if paths.Trajectory != "" {
		out = append(out, paths.Trajectory)
	}
	slog.Info("output written", "files", out, "run_id", report.RunID, "perf", report.Perf)
	return 0
}

// parseArgs validates the two positional arguments.
func parseArgs(args []string) (snails, duration int, err error) {
	if len(args) < 2 {
		return 0, 0, errUsage
	}
	snails, err = strconv.Atoi(args[0])
	if err != nil || !game.CheckSnails(snails) {
		return 0, 0, fmt.Errorf("bad choice for number of snails: %q must be in (%d, %d)", args[0], game.MinSnails, game.MaxSnails)
	}
	duration, err = strconv.Atoi(args[1])
	if err != nil || !game.CheckDuration(duration) {
		return 0, 0, fmt.Errorf("bad choice for duration: %q must be in (%d, %d)", args[1], game.MinDuration, game.MaxDuration)
	}
	return snails, duration, nil
}

// overrides holds flag values that replace config fields when set.
type overrides struct {
	results, positions, trajectory string
	store, sqlitePath              string
	repro, pred                    string
}

func applyOverrides(cfg *config.Config, o overrides) error {
	if o.results != "" {
		cfg.Output.Results = o.results
	}
	if o.positions != "" {
		cfg.Output.Positions = o.positions
		cfg.Output.WritePositions = true
	}
	if o.trajectory != "" {
		cfg.Output.Trajectory = o.trajectory
	}
	if o.store != "" {
		cfg.Output.Store = o.store
	}
	if o.sqlitePath != "" {
		cfg.Output.SQLitePath = o.sqlitePath
	}
	if o.repro != "" {
		start, end, err := parseRange(o.repro)
		if err != nil {
			return fmt.Errorf("-repro: %w", err)
		}
		cfg.Sweep.ReproStart, cfg.Sweep.ReproEnd = start, end
	}
	if o.pred != "" {
		start, end, err := parseRange(o.pred)
		if err != nil {
			return fmt.Errorf("-pred: %w", err)
		}
		cfg.Sweep.PredStart, cfg.Sweep.PredEnd = start, end
	}
	return cfg.Validate()
}

// parseRange parses "start:end".
func parseRange(s string) (start, end int, err error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("range %q is not start:end", s)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return 0, 0, fmt.Errorf("range start: %w", err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return 0, 0, fmt.Errorf("range end: %w", err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("range %q is empty", s)
	}
	return start, end, nil
}
