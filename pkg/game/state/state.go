package state

import (
	"context"

	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/patrol"
	"guardpatrol/pkg/game/search"
)

// Map overlay glyphs
const (
	GlyphVisited   = 'X'
	GlyphPlacement = 'O'
)

// Session holds one map and everything computed about it
type Session struct {
	Grid  *world.Grid
	Start world.Position

	Baseline patrol.Outcome
	Search   search.Result

	// placements indexes Search.Placements for overlay lookups
	placements world.PositionSet

	Messages []string
}

// NewSession creates a session for a parsed grid
func NewSession(g *world.Grid) *Session {
	start, _ := g.FindStart()
	return &Session{
		Grid:       g,
		Start:      start,
		placements: world.NewPositionSet(),
		Messages:   make([]string, 0),
	}
}

// Simulate runs the baseline patrol and, if the guard exits, the obstacle
// search. Results and messages from an earlier call are discarded.
func (s *Session) Simulate(ctx context.Context, opts search.Options) error {
	s.Search = search.Result{}
	s.placements = world.NewPositionSet()
	s.ClearMessages()

	baseline, err := patrol.Run(s.Grid)
	if err != nil {
		return err
	}
	s.Baseline = baseline

	if baseline.Looping() {
		s.AddMessage("BASELINE_LOOPS")
		return nil
	}

	res, err := search.CountLoopsFrom(ctx, s.Grid, baseline, opts)
	if err != nil {
		return err
	}
	s.Search = res

	for _, p := range res.Placements {
		s.placements.Put(p)
	}

	return nil
}

// VisitedCount returns the number of distinct cells on the baseline patrol
func (s *Session) VisitedCount() int {
	return s.Baseline.VisitedCount()
}

// LoopCount returns the number of loop-inducing obstacle placements
func (s *Session) LoopCount() int {
	return s.Search.Loops
}

// IsPlacement reports whether an obstacle at pos traps the guard
func (s *Session) IsPlacement(pos world.Position) bool {
	return s.placements.Has(pos)
}

// Overlay returns the glyph for a cell with the patrol drawn on top:
// start, loop-inducing placement, visited floor, then the plain tile.
func (s *Session) Overlay(pos world.Position) rune {
	tile, ok := s.Grid.Get(pos)
	if !ok {
		return ' '
	}

	switch {
	case pos == s.Start:
		return world.GlyphStart
	case s.IsPlacement(pos):
		return GlyphPlacement
	case s.Baseline.Exited() && s.Baseline.Visited.Has(pos):
		return GlyphVisited
	default:
		return tile.Rune()
	}
}

// AddMessage adds a message key to the session's message log
func (s *Session) AddMessage(msg string) {
	const maxMessages = 5
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}
