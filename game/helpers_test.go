package game

import (
	"testing"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/engine"
	"github.com/pthm-cable/swamp/systems"
)

const testConfigJSON = `{
	"foodRegen": 100,
	"maxFood": 5000,
	"initialFood": 2000,
	"swampWidth": 250,
	"swampLength": 250,
	"maturityAge": 20,
	"maxAge": 100,
	"minOffspring": 1,
	"maxOffspring": 3
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfigJSON))
	if err != nil {
		t.Fatalf("parsing test config: %v", err)
	}
	return cfg
}

// world is a hand-built swamp driven one Step at a time.
type world struct {
	sched     *engine.Scheduler
	habitat   *Habitat
	collector *Collector
}

// newWorld builds a 250x250 swamp. populate registers entities between the
// habitat's creation and the collector, which is always registered last.
func newWorld(t *testing.T, seed int64, populate func(h *Habitat)) *world {
	t.Helper()
	sched := engine.NewScheduler(engine.NewClock(0, 1<<30), nil)
	h := NewHabitat(systems.Bounds{HalfWidth: 250, HalfLength: 250}, systems.NewRand(seed), sched, 3)
	populate(h)
	col := NewCollector(sched, h.RegionCount(), true, 1, 1)
	sched.AddObject(col)
	return &world{sched: sched, habitat: h, collector: col}
}

func (w *world) step(n int) {
	for i := 0; i < n; i++ {
		w.sched.Step()
	}
}

func (w *world) lastSnapshot(t *testing.T) int {
	t.Helper()
	snaps := w.collector.Snapshots()
	if len(snaps) == 0 {
		t.Fatal("no snapshots recorded")
	}
	return snaps[len(snaps)-1].TotalPop
}

// wholeSwamp is one region covering the entire swamp.
func wholeSwamp(food, growth int) components.Region {
	return components.Region{HalfLength: 1000, Food: food, Growth: growth, MaxFood: food + growth*1000}
}

func snailTraits() components.Traits {
	return components.Traits{
		ReproProb:       1000,
		PredProb:        1,
		MaturityAge:     1000,
		MaxAge:          1000,
		MinOffspring:    1,
		MaxOffspring:    2,
		MaxHealth:       5,
		StarvationLimit: 10,
		MealCap:         20,
		MealDivisor:     10,
	}
}

func vitals(age, health int) components.Vitals {
	return components.Vitals{Age: age, Health: health, Region: components.NoRegion}
}
