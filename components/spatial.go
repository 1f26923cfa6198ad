// Package components defines ECS components for the simulation.
package components

// Position is an integer point in world coordinates. The swamp is centred on
// the origin.
type Position struct {
	X, Y int
}

// Region is a square food zone: Center ± HalfLength on both axes.
type Region struct {
	Index      int // Position in the swamp's region list
	Center     Position
	HalfLength int
	Food       int // Always within [0, MaxFood]
	Growth     int // Food added each tick
	MaxFood    int
}
