// Package game wires the simulation rules into schedulable entities backed by
// an ECS arena.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/engine"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
)

// Habitat is the swamp plus the arena that owns every entity of one run.
// Registry entries are thin handles into the arena; a dead snail's arena
// entity is removed and its registry slot stays behind as a tombstone.
type Habitat struct {
	world *ecs.World
	rng   *rand.Rand
	sched *engine.Scheduler

	// Swamp geometry
	bounds  systems.Bounds
	areas   []systems.Area
	regions []ecs.Entity // Arena handle per region, by swamp index

	snailMapper *ecs.Map4[
		components.Identity,
		components.Position,
		components.Vitals,
		components.Traits,
	]
	identMap  *ecs.Map1[components.Identity]
	posMap    *ecs.Map1[components.Position]
	vitalsMap *ecs.Map1[components.Vitals]
	traitsMap *ecs.Map1[components.Traits]
	regionMap *ecs.Map1[components.Region]
	predMap   *ecs.Map1[components.Predator]

	newbornHealth int
	counters      telemetry.Counters
	log           *slog.Logger
}

// NewHabitat creates an empty swamp with the given bounds. Entities spawned
// into it are registered with sched.
func NewHabitat(bounds systems.Bounds, rng *rand.Rand, sched *engine.Scheduler, newbornHealth int) *Habitat {
	world := ecs.NewWorld()

	return &Habitat{
		world:  world,
		rng:    rng,
		sched:  sched,
		bounds: bounds,
		snailMapper: ecs.NewMap4[
			components.Identity,
			components.Position,
			components.Vitals,
			components.Traits,
		](world),
		identMap:      ecs.NewMap1[components.Identity](world),
		posMap:        ecs.NewMap1[components.Position](world),
		vitalsMap:     ecs.NewMap1[components.Vitals](world),
		traitsMap:     ecs.NewMap1[components.Traits](world),
		regionMap:     ecs.NewMap1[components.Region](world),
		predMap:       ecs.NewMap1[components.Predator](world),
		newbornHealth: newbornHealth,
		log:           slog.Default(),
	}
}

// Bounds returns the swamp's world rectangle.
func (h *Habitat) Bounds() systems.Bounds {
	return h.bounds
}

// Counters returns the lifecycle counters accumulated so far.
func (h *Habitat) Counters() telemetry.Counters {
	return h.counters
}

// RegionCount returns the number of regions in the swamp.
func (h *Habitat) RegionCount() int {
	return len(h.areas)
}

// Locate returns the swamp index of the first region containing p, or
// components.NoRegion.
func (h *Habitat) Locate(p components.Position) int {
	return systems.Locate(h.areas, p)
}

// region returns the arena record of the region at swamp index i.
// The pointer is only valid until the next entity is created or removed.
func (h *Habitat) region(i int) *components.Region {
	return h.regionMap.Get(h.regions[i])
}

// AddRegion places r in the arena, appends it to the swamp's region list and
// registers it for ticking.
func (h *Habitat) AddRegion(r components.Region) *RegionEntity {
	r.Index = len(h.regions)
	e := h.regionMap.NewEntity(&r)
	h.regions = append(h.regions, e)
	h.areas = append(h.areas, systems.AreaOf(&r))

	re := &RegionEntity{h: h, e: e, index: r.Index}
	h.sched.AddObject(re)
	return re
}

// AddPredator places the predator in the arena and registers it.
func (h *Habitat) AddPredator(name string, p components.Predator) *PredatorEntity {
	e := h.predMap.NewEntity(&p)
	pe := &PredatorEntity{h: h, e: e, name: name}
	h.sched.AddObject(pe)
	return pe
}

// SpawnSnail places a snail in the arena and registers it. Snails spawned
// during a tick are first updated on the next tick.
func (h *Habitat) SpawnSnail(name string, pos components.Position, v components.Vitals, t components.Traits) *SnailEntity {
	id := components.Identity{Name: name}
	pos = h.bounds.Clamp(pos)
	e := h.snailMapper.NewEntity(&id, &pos, &v, &t)

	s := &SnailEntity{h: h, e: e}
	h.sched.AddObject(s)
	return s
}

// kill removes a snail from the arena. Its registry slot remains and is
// skipped by every scan from now on.
func (h *Habitat) kill(e ecs.Entity, name string, age int, fate systems.Fate) {
	h.counters.RecordDeath(fate.String())
	h.logDeath(name, age, fate)
	h.world.RemoveEntity(e)
}
