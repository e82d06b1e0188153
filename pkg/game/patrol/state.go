// Package patrol simulates the guard walking the grid until it either
// leaves the map or repeats a (position, facing) state.
package patrol

import (
	"fmt"

	"guardpatrol/pkg/engine/world"
)

// State is the guard's position and facing at a given tick
type State struct {
	Pos    world.Position
	Facing world.Direction
}

// StartState returns the initial state for a guard standing at pos.
// Guards always start facing up.
func StartState(pos world.Position) State {
	return State{Pos: pos, Facing: world.Up}
}

// String returns the state as "x,y Facing"
func (s State) String() string {
	return fmt.Sprintf("%v %v", s.Pos, s.Facing)
}

// StepKind classifies what happened during one tick
type StepKind int

// Step kinds
const (
	StepMoved StepKind = iota
	StepTurned
	StepExited
)

// String returns the string representation of a step kind
func (k StepKind) String() string {
	switch k {
	case StepMoved:
		return "Moved"
	case StepTurned:
		return "Turned"
	case StepExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// Advance applies one tick of the movement rule. If the cell ahead is off
// the map the guard exits and the returned state is unchanged. If it is an
// obstacle the guard turns right in place. Otherwise the guard steps forward.
func (s State) Advance(g *world.Grid) (State, StepKind) {
	ahead := s.Pos.Step(s.Facing)

	tile, ok := g.Get(ahead)
	if !ok {
		return s, StepExited
	}

	if tile == world.Obstacle {
		return State{Pos: s.Pos, Facing: s.Facing.RotateClockwise()}, StepTurned
	}

	return State{Pos: ahead, Facing: s.Facing}, StepMoved
}
