package telemetry

import (
	"math"
	"testing"
)

func snapsOf(pops ...int) []TickSnapshot {
	snaps := make([]TickSnapshot, len(pops))
	for i, p := range pops {
		snaps[i] = TickSnapshot{Tick: i, TotalPop: p}
	}
	return snaps
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name     string
		pops     []int
		wantTick int
		wantPop  int
	}{
		{"single", []int{5}, 0, 5},
		{"rising", []int{1, 2, 3}, 2, 3},
		{"first of ties", []int{1, 4, 2, 4}, 1, 4},
		{"all zero", []int{0, 0, 0}, 0, 0},
		{"early peak", []int{9, 3, 1, 0}, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick, pop, ok := Peak(snapsOf(tt.pops...))
			if !ok {
				t.Fatal("Peak reported no data")
			}
			if tick != tt.wantTick || pop != tt.wantPop {
				t.Errorf("Peak(%v) = (%d, %d), want (%d, %d)", tt.pops, tick, pop, tt.wantTick, tt.wantPop)
			}
		})
	}

	if _, _, ok := Peak(nil); ok {
		t.Error("Peak(nil) should report no data")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(snapsOf(2, 4, 6, 0, 0))

	if s.PeakTick != 2 || s.PeakPop != 6 {
		t.Errorf("peak = (%d, %d), want (2, 6)", s.PeakTick, s.PeakPop)
	}
	if math.Abs(s.MeanPop-2.4) > 1e-9 {
		t.Errorf("MeanPop = %v, want 2.4", s.MeanPop)
	}
	// Sample standard deviation of {2,4,6,0,0}
	if math.Abs(s.StdPop-math.Sqrt(6.8)) > 1e-9 {
		t.Errorf("StdPop = %v, want %v", s.StdPop, math.Sqrt(6.8))
	}
	if s.FinalPop != 0 || s.ExtinctAt != 3 {
		t.Errorf("FinalPop=%d ExtinctAt=%d, want 0 and 3", s.FinalPop, s.ExtinctAt)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s.ExtinctAt != -1 || s.PeakPop != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}

	s := Summarize(snapsOf(7))
	if s.MeanPop != 7 || s.StdPop != 0 || s.ExtinctAt != -1 {
		t.Errorf("single snapshot summary = %+v", s)
	}
}

func TestCounters(t *testing.T) {
	var c Counters
	c.RecordBirth(3)
	c.RecordDeath("old_age")
	c.RecordDeath("starved")
	c.RecordDeath("eaten")
	c.RecordDeath("eaten")
	c.RecordDeath("mystery")
	c.RecordStrike()

	if c.Births != 3 || c.Deaths() != 4 || c.DeathsEaten != 2 || c.Strikes != 1 {
		t.Errorf("counters = %+v", c)
	}
}
