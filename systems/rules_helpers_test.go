package systems

import "github.com/pthm-cable/swamp/components"

// scriptedRNG replays fixed draws, clamped to the requested range.
type scriptedRNG struct {
	draws []int
	calls []int
}

func (r *scriptedRNG) Intn(n int) int {
	r.calls = append(r.calls, n)
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[0]
	r.draws = r.draws[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func testTraits() components.Traits {
	return components.Traits{
		ReproProb:       1,
		PredProb:        1,
		MaturityAge:     20,
		MaxAge:          100,
		MinOffspring:    1,
		MaxOffspring:    2,
		MaxHealth:       5,
		StarvationLimit: 10,
		MealCap:         20,
		MealDivisor:     10,
	}
}
