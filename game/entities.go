package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/systems"
)

// Role views over the registry. Scanners pick entities by capability rather
// than by concrete type.
type (
	// FoodSource reports a region's food for the collector.
	FoodSource interface {
		RegionIndex() int
		FoodLevel() int
	}

	// Forager is a snail as seen by the collector.
	Forager interface {
		Alive() bool
		Name() string
		Position() components.Position
		RegionIndex() int
	}

	// Prey is a snail as seen by the predator.
	Prey interface {
		Forager
		MarkEaten()
	}
)

var (
	_ FoodSource = (*RegionEntity)(nil)
	_ Prey       = (*SnailEntity)(nil)
)

// RegionEntity is a registry handle to a region in the arena.
type RegionEntity struct {
	h     *Habitat
	e     ecs.Entity
	index int
}

// RegionIndex returns the region's position in the swamp's region list.
func (r *RegionEntity) RegionIndex() int {
	return r.index
}

// FoodLevel returns the food currently held.
func (r *RegionEntity) FoodLevel() int {
	return r.h.regionMap.Get(r.e).Food
}

// Update regrows food.
func (r *RegionEntity) Update() {
	systems.Regrow(r.h.regionMap.Get(r.e))
}

// Collide implements engine.Entity.
func (r *RegionEntity) Collide() {}

// PredatorEntity is a registry handle to the stationary predator.
type PredatorEntity struct {
	h    *Habitat
	e    ecs.Entity
	name string
}

// Name returns the predator's name.
func (p *PredatorEntity) Name() string {
	return p.name
}

// State returns a copy of the predator's state.
func (p *PredatorEntity) State() components.Predator {
	return *p.h.predMap.Get(p.e)
}

// Update scans the registry and strikes at live prey within reach. Reach is
// measured with the half-length of the region the prey stands in now; prey
// outside every region is safe.
func (p *PredatorEntity) Update() {
	h := p.h
	pred := h.predMap.Get(p.e)

	for _, obj := range h.sched.Objects() {
		prey, ok := obj.(Prey)
		if !ok || !prey.Alive() {
			continue
		}
		pos := prey.Position()
		idx := h.Locate(pos)
		if idx == components.NoRegion {
			continue
		}
		if !systems.InReach(pred, pos, h.areas[idx]) {
			continue
		}
		if systems.Strike(h.rng, pred) {
			prey.MarkEaten()
			h.counters.RecordStrike()
		}
	}
}

// Collide implements engine.Entity.
func (p *PredatorEntity) Collide() {}
