package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/engine"
	"github.com/pthm-cable/swamp/systems"
)

// Configurator populates a scheduler with one swamp: regions first, then the
// predator, the initial snails and finally the collector.
type Configurator struct {
	cfg    *config.Config
	params Params
	rng    *rand.Rand

	habitat   *Habitat
	predator  *PredatorEntity
	collector *Collector
}

// NewConfigurator creates a configurator for one run. rng is the run's only
// random stream.
func NewConfigurator(cfg *config.Config, params Params, rng *rand.Rand) *Configurator {
	return &Configurator{cfg: cfg, params: params, rng: rng}
}

// Configure implements engine.Configurator.
func (c *Configurator) Configure(s *engine.Scheduler) error {
	if c.cfg == nil {
		return fmt.Errorf("%w: no config", ErrBadParams)
	}
	if err := c.params.Validate(); err != nil {
		return err
	}
	if c.habitat != nil {
		return fmt.Errorf("%w: configurator already used", ErrBadParams)
	}
	cfg := c.cfg

	bounds := systems.Bounds{HalfWidth: cfg.SwampWidth, HalfLength: cfg.SwampLength}
	c.habitat = NewHabitat(bounds, c.rng, s, cfg.Snail.InitialHealth)
	c.habitat.SetLogger(slog.With(
		"repro_prob", c.params.ReproProb,
		"pred_prob", c.params.PredProb,
		"seed", c.params.Seed,
	))

	for _, rc := range cfg.Regions {
		r := systems.NewRegion(0,
			components.Position{X: rc.CenterX, Y: rc.CenterY},
			rc.HalfLength, rc.FoodShare,
			cfg.InitialFood, cfg.FoodRegen, cfg.MaxFood,
		)
		c.habitat.AddRegion(r)
	}

	c.predator = c.habitat.AddPredator(cfg.Predator.Name, components.Predator{
		Position: components.Position{X: cfg.Predator.X, Y: cfg.Predator.Y},
		PredProb: c.params.PredProb,
		MaxAge:   cfg.Predator.MaxAge,
	})

	traits := c.traits()
	for i := 0; i < c.params.Snails; i++ {
		pos := components.Position{
			X: c.rng.Intn(2*bounds.HalfWidth+1) - bounds.HalfWidth,
			Y: c.rng.Intn(2*bounds.HalfLength+1) - bounds.HalfLength,
		}
		v := components.Vitals{
			Age:    c.rng.Intn(cfg.MaxAge),
			Health: cfg.Snail.InitialHealth,
			Region: components.NoRegion,
		}
		c.habitat.SpawnSnail(fmt.Sprintf("Snail%d", i), pos, v, traits)
	}

	c.collector = NewCollector(s, c.habitat.RegionCount(), c.params.TrackPositions, c.params.PredProb, c.params.ReproProb)
	s.AddObject(c.collector)
	return nil
}

// traits builds the heritable parameters of the initial snails.
func (c *Configurator) traits() components.Traits {
	cfg := c.cfg
	return components.Traits{
		ReproProb:       c.params.ReproProb,
		PredProb:        c.params.PredProb,
		MaturityAge:     cfg.MaturityAge,
		MaxAge:          cfg.MaxAge,
		MinOffspring:    cfg.MinOffspring,
		MaxOffspring:    cfg.MaxOffspring,
		MaxHealth:       cfg.Snail.MaxHealth,
		StarvationLimit: cfg.Snail.StarvationLimit,
		MealCap:         cfg.Snail.MealCap,
		MealDivisor:     cfg.Snail.MealDivisor,
	}
}

// Habitat returns the swamp built by Configure, or nil before it ran.
func (c *Configurator) Habitat() *Habitat {
	return c.habitat
}

// Predator returns the predator built by Configure.
func (c *Configurator) Predator() *PredatorEntity {
	return c.predator
}

// Collector returns the collector built by Configure.
func (c *Configurator) Collector() *Collector {
	return c.collector
}
