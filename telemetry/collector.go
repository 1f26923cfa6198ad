package telemetry

import "log/slog"

// Counters accumulates lifecycle events over one run.
type Counters struct {
	Births        int
	DeathsOldAge  int
	DeathsStarved int
	DeathsEaten   int
	Strikes       int // Predator hits, including repeat hits on an already flagged snail
}

// RecordBirth records hatched offspring.
func (c *Counters) RecordBirth(n int) {
	c.Births += n
}

// RecordStrike records a successful predator draw.
func (c *Counters) RecordStrike() {
	c.Strikes++
}

// RecordDeath records a death by cause. Unknown causes are ignored.
func (c *Counters) RecordDeath(cause string) {
	switch cause {
	case "old_age":
		c.DeathsOldAge++
	case "starved":
		c.DeathsStarved++
	case "eaten":
		c.DeathsEaten++
	}
}

// Deaths returns the total number of deaths.
func (c *Counters) Deaths() int {
	return c.DeathsOldAge + c.DeathsStarved + c.DeathsEaten
}

// LogValue implements slog.LogValuer for structured logging.
func (c Counters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("births", c.Births),
		slog.Int("deaths_old_age", c.DeathsOldAge),
		slog.Int("deaths_starved", c.DeathsStarved),
		slog.Int("deaths_eaten", c.DeathsEaten),
		slog.Int("strikes", c.Strikes),
	)
}
