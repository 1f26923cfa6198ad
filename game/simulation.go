package game

import (
	"time"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/engine"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
)

// Result is the outcome of one run.
type Result struct {
	Params    Params
	Snapshots []telemetry.TickSnapshot
	Positions []telemetry.PositionRecord
	Summary   telemetry.Summary
	Counters  telemetry.Counters
	Kills     int

	elapsed time.Duration
}

// Row returns the results file line for the run: the tick and size of the
// population peak.
func (r *Result) Row() telemetry.ResultRow {
	return telemetry.ResultRow{
		PredProb:  r.Params.PredProb,
		ReproProb: r.Params.ReproProb,
		Time:      r.Summary.PeakTick,
		Snails:    r.Summary.PeakPop,
	}
}

// RunOnce runs one independent simulation with a fresh clock, scheduler and
// configurator. A configuration failure returns before any tick runs.
func RunOnce(cfg *config.Config, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	clock := engine.NewClock(0, p.Duration)
	conf := NewConfigurator(cfg, p, systems.NewRand(p.Seed))
	sched := engine.NewScheduler(clock, conf)
	if err := sched.Run(); err != nil {
		return nil, err
	}

	h := conf.Habitat()
	h.log.Debug("run finished", "habitat", h)

	col := conf.Collector()
	res := &Result{
		Params:    p,
		Snapshots: col.Snapshots(),
		Positions: col.Positions(),
		Summary:   telemetry.Summarize(col.Snapshots()),
		Counters:  h.Counters(),
		Kills:     conf.Predator().State().Kills,
	}
	return res, nil
}
