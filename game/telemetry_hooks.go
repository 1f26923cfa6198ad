package game

import (
	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/engine"
	"github.com/pthm-cable/swamp/telemetry"
)

// Collector records one snapshot per tick. The snapshot is taken in
// PostUpdate, after every entity of the tick has updated, so snails that die
// anywhere in the pass are already excluded.
type Collector struct {
	sched   *engine.Scheduler
	regions int

	trackPositions bool
	predProb       int
	reproProb      int

	snapshots []telemetry.TickSnapshot
	positions []telemetry.PositionRecord
}

// NewCollector creates a collector for a swamp with the given region count.
// The position log is opt-in: records are kept only when trackPositions is
// set. predProb and reproProb tag those records.
func NewCollector(sched *engine.Scheduler, regions int, trackPositions bool, predProb, reproProb int) *Collector {
	return &Collector{
		sched:          sched,
		regions:        regions,
		trackPositions: trackPositions,
		predProb:       predProb,
		reproProb:      reproProb,
	}
}

// Update does nothing; see PostUpdate.
func (c *Collector) Update() {}

// PostUpdate scans the entities of the current tick once and appends a
// snapshot. Offspring born this tick are left for the next snapshot.
func (c *Collector) PostUpdate() {
	tick := c.sched.Clock().Ticks()
	snap := telemetry.TickSnapshot{
		Tick:    tick,
		Regions: make([]telemetry.RegionSample, c.regions),
	}

	for _, obj := range c.sched.Active() {
		switch v := obj.(type) {
		case FoodSource:
			if i := v.RegionIndex(); i >= 0 && i < c.regions {
				snap.Regions[i].Food = v.FoodLevel()
			}
		case Forager:
			if !v.Alive() {
				continue
			}
			snap.TotalPop++
			if i := v.RegionIndex(); i == components.NoRegion || i >= c.regions {
				snap.Unlocated++
			} else {
				snap.Regions[i].Snails++
			}
			if c.trackPositions {
				pos := v.Position()
				c.positions = append(c.positions, telemetry.PositionRecord{
					PredProb:  c.predProb,
					ReproProb: c.reproProb,
					Name:      v.Name(),
					Tick:      tick,
					X:         pos.X,
					Y:         pos.Y,
				})
			}
		}
	}

	c.snapshots = append(c.snapshots, snap)
}

// Collide implements engine.Entity.
func (c *Collector) Collide() {}

// Snapshots returns every snapshot recorded so far.
func (c *Collector) Snapshots() []telemetry.TickSnapshot {
	return c.snapshots
}

// Positions returns the position log. It is empty unless tracking was enabled.
func (c *Collector) Positions() []telemetry.PositionRecord {
	return c.positions
}
