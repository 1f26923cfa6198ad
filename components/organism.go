package components

// Identity names an entity for logs and the position log.
type Identity struct {
	Name string
}

// Vitals holds a snail's mutable lifecycle state.
// Dead snails have no Vitals: their arena entity is removed.
type Vitals struct {
	Age         int
	Health      int  // Index in [1, Traits.MaxHealth]
	DaysStarved int  // Consecutive ticks without a meal
	Eaten       bool // Latched by the predator, applied on the snail's next update
	Region      int  // Region index resolved at the start of the last update; NoRegion if none
}

// NoRegion marks a position outside every region.
const NoRegion = -1

// Traits holds the heritable snail parameters passed unchanged to offspring.
type Traits struct {
	ReproProb       int // Reproduces when a draw in [0, ReproProb) is 0
	PredProb        int // Predation vulnerability, inherited for parity with the predator's draw
	MaturityAge     int
	MaxAge          int
	MinOffspring    int
	MaxOffspring    int
	MaxHealth       int
	StarvationLimit int
	MealCap         int
	MealDivisor     int
}

// Predator holds the single predator's state. It never moves.
type Predator struct {
	Position Position
	PredProb int // Strikes when a draw in [0, PredProb) is 0
	MaxAge   int // Not used by any behavior
	Hungry   bool
	Kills    int
}
