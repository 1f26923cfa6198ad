package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
)

// SweepOptions configures a parameter sweep.
type SweepOptions struct {
	Snails   int
	Duration int
	BaseSeed int64  // Mixed with each combination to seed its run
	RunID    string // Generated when empty
	Workers  int    // Concurrent runs; 1 or less runs the sweep serially
}

// SweepReport summarises a finished sweep.
type SweepReport struct {
	RunID   string
	Runs    int
	Best    telemetry.ResultRow // Combination with the largest peak; first wins ties
	Elapsed time.Duration
	Perf    telemetry.PerfStats
}

// sweepJobs lists the combinations with reproduction probability outermost.
func sweepJobs(s config.SweepConfig) []sweepJob {
	jobs := make([]sweepJob, 0, s.Combinations())
	if s.Step <= 0 {
		return jobs
	}
	for repro := s.ReproStart; repro < s.ReproEnd; repro += s.Step {
		for pred := s.PredStart; pred < s.PredEnd; pred += s.Step {
			jobs = append(jobs, sweepJob{index: len(jobs), reproProb: repro, predProb: pred})
		}
	}
	return jobs
}

// Sweep runs one independent simulation per combination of cfg.Sweep and
// writes each peak to store. Position and trajectory files are written through
// om when it has them open. The sweep stops at the first failing combination;
// no row is written for it.
func Sweep(ctx context.Context, cfg *config.Config, opts SweepOptions, store telemetry.ResultStore, om *telemetry.OutputManager) (SweepReport, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	report := SweepReport{RunID: opts.RunID}

	jobs := sweepJobs(cfg.Sweep)
	if len(jobs) == 0 {
		return report, fmt.Errorf("%w: sweep has no combinations", ErrBadParams)
	}

	log := slog.With("run_id", opts.RunID)
	log.Info("sweep starting",
		"combinations", len(jobs),
		"snails", opts.Snails,
		"duration", opts.Duration,
		"seed", opts.BaseSeed,
	)

	perf := telemetry.NewPerfCollector(50)
	start := time.Now()
	track := om.WantsPositions()

	compute := func(job sweepJob) (*Result, error) {
		p := Params{
			Snails:         opts.Snails,
			Duration:       opts.Duration,
			ReproProb:      job.reproProb,
			PredProb:       job.predProb,
			Seed:           systems.RunSeed(opts.BaseSeed, job.reproProb, job.predProb),
			TrackPositions: track,
		}
		t0 := time.Now()
		res, err := RunOnce(cfg, p)
		if err != nil {
			return nil, fmt.Errorf("repro %d pred %d: %w", job.reproProb, job.predProb, err)
		}
		res.elapsed = time.Since(t0)
		return res, nil
	}

	apply := func(job sweepJob, res *Result) error {
		t0 := time.Now()
		row := res.Row()
		rec := telemetry.ResultRecord{
			RunID:    opts.RunID,
			Seed:     res.Params.Seed,
			Ticks:    len(res.Snapshots),
			Row:      row,
			Summary:  res.Summary,
			Counters: res.Counters,
		}
		// The results row goes last so a failed combination leaves none behind.
		if err := om.WritePositions(res.Positions); err != nil {
			return err
		}
		if om.WantsTrajectory() {
			if err := om.WriteTrajectory(telemetry.Trajectory(job.predProb, job.reproProb, res.Snapshots)); err != nil {
				return err
			}
		}
		if err := store.SaveResult(ctx, rec); err != nil {
			return fmt.Errorf("saving result for repro %d pred %d: %w", job.reproProb, job.predProb, err)
		}

		exported := time.Since(t0)
		perf.Record(telemetry.PerfSample{
			RunDuration: res.elapsed + exported,
			Phases: map[string]time.Duration{
				telemetry.PhaseSimulate: res.elapsed,
				telemetry.PhaseExport:   exported,
			},
		})

		report.Runs++
		if report.Runs == 1 || row.Snails > report.Best.Snails {
			report.Best = row
		}

		log.Info("combination done",
			"repro_prob", job.reproProb,
			"pred_prob", job.predProb,
			"peak_tick", row.Time,
			"peak_pop", row.Snails,
			"elapsed", res.elapsed,
			"remaining", len(jobs)-report.Runs,
		)
		if report.Runs%100 == 0 {
			stats := perf.Stats()
			log.Info("sweep progress",
				"done", report.Runs,
				"perf", stats,
				"eta", stats.ETA(len(jobs)-report.Runs),
			)
		}
		log.Debug("combination stats", "summary", res.Summary, "counters", res.Counters, "kills", res.Kills)
		return nil
	}

	err := runParallel(ctx, jobs, opts.Workers, compute, apply)
	report.Elapsed = time.Since(start)
	report.Perf = perf.Stats()
	if err != nil {
		return report, err
	}

	log.Info("sweep finished",
		"runs", report.Runs,
		"best_repro_prob", report.Best.ReproProb,
		"best_pred_prob", report.Best.PredProb,
		"best_peak", report.Best.Snails,
		"elapsed", report.Elapsed,
	)
	return report, nil
}
