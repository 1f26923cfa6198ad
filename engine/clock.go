// Package engine drives a registry of entities one tick at a time.
package engine

// Clock counts ticks and latches a stop once the limit is reached.
type Clock struct {
	ticks   int
	limit   int
	running bool
}

// NewClock creates a running clock starting at start that stops at limit.
func NewClock(start, limit int) *Clock {
	return &Clock{ticks: start, limit: limit, running: true}
}

// Advance increments the tick counter. Once the counter reaches the limit the
// clock stops and never runs again.
func (c *Clock) Advance() {
	c.ticks++
	if c.ticks >= c.limit {
		c.running = false
	}
}

// Running reports whether another tick should run.
func (c *Clock) Running() bool {
	return c.running
}

// Ticks returns the current tick counter.
func (c *Clock) Ticks() int {
	return c.ticks
}

// Limit returns the configured tick limit.
func (c *Clock) Limit() int {
	return c.limit
}
