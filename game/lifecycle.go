package game

import (
	"strconv"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/systems"
)

// SnailEntity is a registry handle to a snail in the arena.
type SnailEntity struct {
	h *Habitat
	e ecs.Entity
}

// Alive reports whether the snail is still in the arena.
func (s *SnailEntity) Alive() bool {
	return s.h.world.Alive(s.e)
}

// Name returns the snail's name, or "" once dead.
func (s *SnailEntity) Name() string {
	if !s.Alive() {
		return ""
	}
	return s.h.identMap.Get(s.e).Name
}

// Position returns the snail's current position.
func (s *SnailEntity) Position() components.Position {
	if !s.Alive() {
		return components.Position{}
	}
	return *s.h.posMap.Get(s.e)
}

// RegionIndex returns the region resolved at the start of the snail's last
// update, or components.NoRegion.
func (s *SnailEntity) RegionIndex() int {
	if !s.Alive() {
		return components.NoRegion
	}
	return s.h.vitalsMap.Get(s.e).Region
}

// Vitals returns a copy of the snail's lifecycle state.
func (s *SnailEntity) Vitals() (components.Vitals, bool) {
	if !s.Alive() {
		return components.Vitals{}, false
	}
	return *s.h.vitalsMap.Get(s.e), true
}

// MarkEaten latches the eaten flag. The snail dies on its next update.
func (s *SnailEntity) MarkEaten() {
	if !s.Alive() {
		return
	}
	s.h.vitalsMap.Get(s.e).Eaten = true
}

// Collide implements engine.Entity. Snails do not react to contact.
func (s *SnailEntity) Collide() {}

// Update runs one tick of the snail's lifecycle:
// locate, move, age, feed, eaten check, reproduce.
func (s *SnailEntity) Update() {
	h := s.h
	if !h.world.Alive(s.e) {
		return
	}

	name := h.identMap.Get(s.e).Name
	pos := h.posMap.Get(s.e)
	v := h.vitalsMap.Get(s.e)
	t := h.traitsMap.Get(s.e)

	region := h.Locate(*pos)
	v.Region = region

	*pos = systems.Wander(h.rng, *pos, h.bounds)

	meal, fate := systems.Age(v, t)
	if fate != systems.Living {
		h.kill(s.e, name, v.Age, fate)
		return
	}

	if region == components.NoRegion {
		h.log.Debug("snail outside all regions, skipping feed", "name", name, "x", pos.X, "y", pos.Y)
	} else {
		got := systems.Consume(h.region(region), meal)
		if fate = systems.Feed(v, t, got); fate != systems.Living {
			h.kill(s.e, name, v.Age, fate)
			return
		}
	}

	if fate = systems.CheckEaten(v); fate != systems.Living {
		h.kill(s.e, name, v.Age, fate)
		return
	}

	if !systems.ShouldReproduce(h.rng, v, t) {
		return
	}

	// Spawning changes the arena layout, so copy everything first.
	n := systems.OffspringCount(h.rng, v.Health, t)
	at, traits := *pos, *t
	for i := 0; i < n; i++ {
		h.SpawnSnail(name+" o"+strconv.Itoa(i), at, systems.Newborn(h.newbornHealth), traits)
	}
	h.counters.RecordBirth(n)
	h.logBirth(name, n)
}
