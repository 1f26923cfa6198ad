// Package systems holds the simulation rules that operate on components.
package systems

import "github.com/pthm-cable/swamp/components"

// Bounds is the swamp's rectangle: [-HalfWidth, HalfWidth] × [-HalfLength, HalfLength].
type Bounds struct {
	HalfWidth  int
	HalfLength int
}

// Clamp moves p onto the nearest point inside b, axis by axis.
func (b Bounds) Clamp(p components.Position) components.Position {
	p.X = max(-b.HalfWidth, min(p.X, b.HalfWidth))
	p.Y = max(-b.HalfLength, min(p.Y, b.HalfLength))
	return p
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p components.Position) bool {
	return p.X >= -b.HalfWidth && p.X <= b.HalfWidth && p.Y >= -b.HalfLength && p.Y <= b.HalfLength
}

// Within reports whether a and b differ by at most half on both axes.
func Within(a, b components.Position, half int) bool {
	return abs(a.X-b.X) <= half && abs(a.Y-b.Y) <= half
}

// Area is a region's fixed square footprint.
type Area struct {
	Center     components.Position
	HalfLength int
}

// AreaOf returns the footprint of r.
func AreaOf(r *components.Region) Area {
	return Area{Center: r.Center, HalfLength: r.HalfLength}
}

// Contains reports whether p lies in the square, edges included.
func (a Area) Contains(p components.Position) bool {
	return Within(a.Center, p, a.HalfLength)
}

// Locate returns the index of the first area containing p, or
// components.NoRegion when p is outside all of them.
func Locate(areas []Area, p components.Position) int {
	for i, a := range areas {
		if a.Contains(p) {
			return i
		}
	}
	return components.NoRegion
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
