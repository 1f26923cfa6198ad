package systems

import "github.com/pthm-cable/swamp/components"

// Regrow adds one tick of growth to a region, saturating at its cap.
func Regrow(r *components.Region) {
	r.Food = min(r.Food+r.Growth, r.MaxFood)
}

// Consume withdraws amount from the region if it holds at least that much.
// It is all-or-nothing: a short region is left untouched and 0 is returned.
func Consume(r *components.Region, amount int) int {
	if r.Food >= amount {
		r.Food -= amount
		return amount
	}
	return 0
}

// NewRegion builds a region holding pct percent of the swamp-wide food figures.
func NewRegion(index int, center components.Position, halfLength, pct, initialFood, growth, maxFood int) components.Region {
	return components.Region{
		Index:      index,
		Center:     center,
		HalfLength: halfLength,
		Food:       initialFood * pct / 100,
		Growth:     growth * pct / 100,
		MaxFood:    maxFood * pct / 100,
	}
}
