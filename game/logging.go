package game

import (
	"log/slog"

	"github.com/pthm-cable/swamp/systems"
)

// SetLogger replaces the habitat's logger.
func (h *Habitat) SetLogger(l *slog.Logger) {
	if l != nil {
		h.log = l
	}
}

func (h *Habitat) logDeath(name string, age int, fate systems.Fate) {
	h.log.Debug("snail died",
		"name", name,
		"age", age,
		"cause", fate.String(),
		"tick", h.sched.Clock().Ticks(),
	)
}

func (h *Habitat) logBirth(parent string, offspring int) {
	h.log.Debug("snail reproduced",
		"name", parent,
		"offspring", offspring,
		"tick", h.sched.Clock().Ticks(),
	)
}

// LiveSnails counts snails still in the arena.
func (h *Habitat) LiveSnails() int {
	n := 0
	for _, obj := range h.sched.Objects() {
		if f, ok := obj.(Forager); ok && f.Alive() {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer with a compact world summary.
func (h *Habitat) LogValue() slog.Value {
	food := make([]int, len(h.regions))
	for i := range h.regions {
		food[i] = h.region(i).Food
	}
	return slog.GroupValue(
		slog.Int("tick", h.sched.Clock().Ticks()),
		slog.Int("registry", h.sched.Len()),
		slog.Int("live_snails", h.LiveSnails()),
		slog.Any("region_food", food),
		slog.Any("counters", h.counters),
	)
}
