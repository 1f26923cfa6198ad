package telemetry

// RegionSample is one region's state at the end of a tick.
type RegionSample struct {
	Food   int
	Snails int
}

// TickSnapshot is the collector's view of one tick.
// Sum of Regions[i].Snails plus Unlocated equals TotalPop.
type TickSnapshot struct {
	Tick      int
	TotalPop  int
	Unlocated int // Live snails whose position matched no region
	Regions   []RegionSample
}

// PositionRecord is one entry of the per-snail position log.
type PositionRecord struct {
	PredProb  int    `csv:"PredProb"`
	ReproProb int    `csv:"ReproProb"`
	Name      string `csv:"Name"`
	Tick      int    `csv:"Time"`
	X         int    `csv:"X"`
	Y         int    `csv:"Y"`
}

// ResultRow is the per-combination line of the results file.
type ResultRow struct {
	PredProb  int `csv:"PredProb"`
	ReproProb int `csv:"ReproProb"`
	Time      int `csv:"Time"`
	Snails    int `csv:"Number Of Snails"`
}

// TrajectoryRow flattens one region of one snapshot for CSV export.
type TrajectoryRow struct {
	PredProb  int `csv:"pred_prob"`
	ReproProb int `csv:"repro_prob"`
	Tick      int `csv:"tick"`
	Region    int `csv:"region"`
	Food      int `csv:"food"`
	Snails    int `csv:"snails"`
	TotalPop  int `csv:"total_pop"`
}

// Trajectory flattens snapshots into one row per tick per region.
func Trajectory(predProb, reproProb int, snaps []TickSnapshot) []TrajectoryRow {
	rows := make([]TrajectoryRow, 0, len(snaps)*4)
	for _, s := range snaps {
		for i, r := range s.Regions {
			rows = append(rows, TrajectoryRow{
				PredProb:  predProb,
				ReproProb: reproProb,
				Tick:      s.Tick,
				Region:    i,
				Food:      r.Food,
				Snails:    r.Snails,
				TotalPop:  s.TotalPop,
			})
		}
	}
	return rows
}
