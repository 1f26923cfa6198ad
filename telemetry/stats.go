package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds population statistics for a single run.
type Summary struct {
	PeakTick  int
	PeakPop   int
	MeanPop   float64
	StdPop    float64
	FinalPop  int
	ExtinctAt int // First tick with no live snails, -1 if the population survived
}

// populations extracts the total population series.
func populations(snaps []TickSnapshot) []float64 {
	pops := make([]float64, len(snaps))
	for i, s := range snaps {
		pops[i] = float64(s.TotalPop)
	}
	return pops
}

// Peak returns the tick and size of the largest population. Ties go to the
// earliest tick; ok is false when there are no snapshots.
func Peak(snaps []TickSnapshot) (tick, pop int, ok bool) {
	if len(snaps) == 0 {
		return 0, 0, false
	}
	i := floats.MaxIdx(populations(snaps))
	return snaps[i].Tick, snaps[i].TotalPop, true
}

// Summarize computes population statistics over a run.
func Summarize(snaps []TickSnapshot) Summary {
	s := Summary{ExtinctAt: -1}
	if len(snaps) == 0 {
		return s
	}

	s.PeakTick, s.PeakPop, _ = Peak(snaps)

	pops := populations(snaps)
	if len(pops) > 1 {
		s.MeanPop, s.StdPop = stat.MeanStdDev(pops, nil)
	} else {
		s.MeanPop = pops[0]
	}

	s.FinalPop = snaps[len(snaps)-1].TotalPop
	for _, snap := range snaps {
		if snap.TotalPop == 0 {
			s.ExtinctAt = snap.Tick
			break
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("peak_tick", s.PeakTick),
		slog.Int("peak_pop", s.PeakPop),
		slog.Float64("mean_pop", s.MeanPop),
		slog.Float64("std_pop", s.StdPop),
		slog.Int("final_pop", s.FinalPop),
		slog.Int("extinct_at", s.ExtinctAt),
	)
}
