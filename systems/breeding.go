package systems

import "github.com/pthm-cable/swamp/components"

// ShouldReproduce reports whether a snail breeds this tick. Only snails past
// maturity draw; a draw of 0 in [0, ReproProb) breeds.
func ShouldReproduce(rng RNG, v *components.Vitals, t *components.Traits) bool {
	if v.Age <= t.MaturityAge {
		return false
	}
	return rng.Intn(t.ReproProb) == 0
}

// OffspringCount draws a litter size in
// [MinOffspring, MinOffspring + health*(MaxOffspring-MinOffspring)].
// Healthier parents get a wider range.
func OffspringCount(rng RNG, health int, t *components.Traits) int {
	span := health*t.MaxOffspring - health*t.MinOffspring
	return t.MinOffspring + rng.Intn(span+1)
}

// Newborn returns the vitals of a freshly hatched snail.
func Newborn(health int) components.Vitals {
	return components.Vitals{Health: health, Region: components.NoRegion}
}
