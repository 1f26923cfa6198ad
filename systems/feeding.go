package systems

import "github.com/pthm-cable/swamp/components"

// InReach reports whether prey at p is close enough for the predator to strike.
// The threshold is the half-length of the prey's own region, not the predator's.
func InReach(pred *components.Predator, p components.Position, preyArea Area) bool {
	return Within(pred.Position, p, preyArea.HalfLength)
}

// Strike draws once in [0, PredProb); 0 is a kill.
func Strike(rng RNG, pred *components.Predator) bool {
	if rng.Intn(pred.PredProb) != 0 {
		return false
	}
	pred.Hungry = true
	pred.Kills++
	return true
}
