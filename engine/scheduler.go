package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoClock is returned by Run when the scheduler has no clock.
	ErrNoClock = errors.New("scheduler has no clock")
	// ErrNoConfigurator is returned by Run when the scheduler has no configurator.
	ErrNoConfigurator = errors.New("scheduler has no configurator")
	// ErrAlreadyRun is returned by a second call to Run.
	ErrAlreadyRun = errors.New("scheduler already ran")
)

// Entity is anything the scheduler ticks.
type Entity interface {
	// Update advances the entity by one tick.
	Update()
	// Collide is the pairwise-contact hook. No current entity reacts to it.
	Collide()
}

// PostUpdater is implemented by entities that also run once every entity of
// the tick has updated, before the clock advances.
type PostUpdater interface {
	PostUpdate()
}

// Configurator populates a scheduler's registry before the first tick.
type Configurator interface {
	Configure(s *Scheduler) error
}

// Scheduler owns the ordered, append-only entity registry and runs the tick loop.
type Scheduler struct {
	objects []Entity
	clock   *Clock
	config  Configurator
	ran     bool

	// Registry length frozen for the tick in progress, -1 between ticks
	pass int
}

// NewScheduler creates a scheduler bound to a clock and a configurator.
func NewScheduler(clock *Clock, config Configurator) *Scheduler {
	return &Scheduler{clock: clock, config: config, pass: -1}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() *Clock {
	return s.clock
}

// AddObject appends e to the registry and returns its slot index.
// Entities added during a tick are first updated on the next tick.
func (s *Scheduler) AddObject(e Entity) int {
	s.objects = append(s.objects, e)
	return len(s.objects) - 1
}

// Objects returns the full registry, dead entities included.
// Callers must not modify the returned slice.
func (s *Scheduler) Objects() []Entity {
	return s.objects
}

// Active returns the entities taking part in the current tick, which is the
// registry as it stood when the tick began. Between ticks it is the full
// registry.
func (s *Scheduler) Active() []Entity {
	if s.pass < 0 {
		return s.objects
	}
	return s.objects[:s.pass]
}

// Len returns the number of registered entities.
func (s *Scheduler) Len() int {
	return len(s.objects)
}

// Run configures the registry once, then ticks every entity in registration
// order until the clock stops. A configuration error aborts before any tick.
func (s *Scheduler) Run() error {
	if s.ran {
		return ErrAlreadyRun
	}
	if s.clock == nil {
		return ErrNoClock
	}
	if s.config == nil {
		return ErrNoConfigurator
	}
	s.ran = true

	if err := s.config.Configure(s); err != nil {
		return fmt.Errorf("configuring simulation: %w", err)
	}

	for s.clock.Running() {
		s.Step()
	}
	return nil
}

// Step runs a single tick. The registry length is fixed at the start of the
// pass so entities spawned mid-tick wait for the next one. PostUpdaters among
// those entities then run in registration order over the finished pass.
func (s *Scheduler) Step() {
	n := len(s.objects)
	s.pass = n
	for i := 0; i < n; i++ {
		obj := s.objects[i]
		if obj == nil {
			continue
		}
		obj.Update()
	}
	for i := 0; i < n; i++ {
		if pu, ok := s.objects[i].(PostUpdater); ok {
			pu.PostUpdate()
		}
	}
	s.pass = -1
	s.clock.Advance()
}
