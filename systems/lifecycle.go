package systems

import "github.com/pthm-cable/swamp/components"

// RNG is the interface for random number generation.
type RNG interface {
	Intn(n int) int
}

// Fate is the outcome of one lifecycle step.
type Fate uint8

const (
	Living Fate = iota
	DiedOfAge
	Starved
	Eaten
)

// String returns the display name for a Fate.
func (f Fate) String() string {
	switch f {
	case Living:
		return "living"
	case DiedOfAge:
		return "old_age"
	case Starved:
		return "starved"
	case Eaten:
		return "eaten"
	default:
		return "unknown"
	}
}

// Wander moves p by an independent step in {-1, 0, +1} on each axis and
// clamps the result to b.
func Wander(rng RNG, p components.Position, b Bounds) components.Position {
	p.X += rng.Intn(3) - 1
	p.Y += rng.Intn(3) - 1
	return b.Clamp(p)
}

// MealSize is how much food a snail of the given age tries to eat.
func MealSize(age int, t *components.Traits) int {
	return min(t.MealCap, age/t.MealDivisor)
}

// Age advances a snail by one tick and returns the meal it wants this tick.
// Crossing MaxAge is fatal.
func Age(v *components.Vitals, t *components.Traits) (meal int, fate Fate) {
	v.Age++
	meal = MealSize(v.Age, t)
	if v.Age > t.MaxAge {
		return meal, DiedOfAge
	}
	return meal, Living
}

// Feed applies the result of a consume attempt. got is either 0 or the full
// meal, since Consume never withdraws part of a meal.
func Feed(v *components.Vitals, t *components.Traits, got int) Fate {
	if got == 0 {
		v.DaysStarved++
		v.Health = max(v.Health-1, 1)
		if v.DaysStarved > t.StarvationLimit {
			return Starved
		}
		return Living
	}
	v.DaysStarved = 0
	v.Health = min(v.Health+1, t.MaxHealth)
	return Living
}

// CheckEaten turns a latched predator strike into death.
func CheckEaten(v *components.Vitals) Fate {
	if v.Eaten {
		return Eaten
	}
	return Living
}
