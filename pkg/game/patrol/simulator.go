package patrol

import (
	"fmt"

	"guardpatrol/pkg/engine/world"
)

// Status is the terminal classification of a patrol
type Status int

// Patrol statuses
const (
	Exited Status = iota
	Looping
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Exited:
		return "Exited"
	case Looping:
		return "Looping"
	default:
		return "Unknown"
	}
}

// Outcome is the result of running a patrol to termination
type Outcome struct {
	Status Status

	// Visited holds every distinct cell the guard stood on, including the
	// start. Only set when Status is Exited.
	Visited world.PositionSet

	// Steps is the number of ticks taken, including the terminal one
	Steps int

	// LoopEntry is the first state the guard re-entered. Only meaningful
	// when Status is Looping.
	LoopEntry State
}

// Exited reports whether the guard left the grid
func (o Outcome) Exited() bool {
	return o.Status == Exited
}

// Looping reports whether the guard is trapped in a cycle
func (o Outcome) Looping() bool {
	return o.Status == Looping
}

// VisitedCount returns the number of distinct cells visited, or 0 for a loop
func (o Outcome) VisitedCount() int {
	if o.Status != Exited {
		return 0
	}
	return o.Visited.Size()
}

// MaxSteps is the upper bound on ticks for any patrol on g: one per
// (cell, facing) state.
func MaxSteps(g *world.Grid) int {
	return 4 * g.Width() * g.Height()
}

// stateIndex maps a state onto a dense index in [0, MaxSteps(g))
func stateIndex(g *world.Grid, s State) int {
	return (s.Pos.Y*g.Width()+s.Pos.X)*4 + int(s.Facing)
}

// Simulate runs the guard from start until it exits the grid or re-enters a
// state it already occupied. The grid is only read. A start off the grid or
// with an invalid facing has already left: the outcome is Exited with no
// visited cells and no steps.
func Simulate(g *world.Grid, start State) Outcome {
	visited := world.NewPositionSet()
	if !g.IsValidPosition(start.Pos) || !start.Facing.IsValid() {
		return Outcome{Status: Exited, Visited: visited}
	}
	visited.Put(start.Pos)

	seen := make([]bool, MaxSteps(g))
	seen[stateIndex(g, start)] = true

	current := start
	for steps := 1; ; steps++ {
		next, kind := current.Advance(g)

		if kind == StepExited {
			return Outcome{Status: Exited, Visited: visited, Steps: steps}
		}

		idx := stateIndex(g, next)
		if seen[idx] {
			return Outcome{Status: Looping, Steps: steps, LoopEntry: next}
		}
		seen[idx] = true

		if kind == StepMoved {
			visited.Put(next.Pos)
		}
		current = next
	}
}

// Run simulates a patrol from the grid's start marker
func Run(g *world.Grid) (Outcome, error) {
	start, ok := g.FindStart()
	if !ok {
		return Outcome{}, world.ErrNoStart
	}
	if tile, _ := g.Get(start); tile == world.Obstacle {
		return Outcome{}, fmt.Errorf("%w: %v", world.ErrStartBlocked, start)
	}
	return Simulate(g, StartState(start)), nil
}
