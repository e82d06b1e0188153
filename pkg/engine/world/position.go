package world

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Position identifies a cell by its column (X) and row (Y)
type Position struct {
	X int
	Y int
}

// PositionSet is a set of positions
type PositionSet = mapset.Set[Position]

// NewPositionSet creates an empty position set
func NewPositionSet() PositionSet {
	return mapset.New[Position]()
}

// Step returns the neighbouring position in the given direction
func (p Position) Step(dir Direction) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns the position as "x,y"
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Less orders positions row-major (top to bottom, then left to right)
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// SortedPositions returns the members of a set in row-major order
func SortedPositions(s PositionSet) []Position {
	out := make([]Position, 0, s.Size())
	s.Each(func(p Position) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
