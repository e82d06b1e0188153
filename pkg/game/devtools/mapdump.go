// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/patrol"
	"guardpatrol/pkg/game/state"
)

const mapDumpFilename = "patrol-dump.txt"

// writeMapGrid writes the grid to w, with the patrol overlaid if overlay is
// true. A looping patrol marks its loop entry with the guard's facing there.
func writeMapGrid(w io.Writer, s *state.Session, overlay bool) {
	last := s.Grid.Width() - 1
	s.Grid.ForEachCell(func(pos world.Position, tile world.Tile) {
		switch {
		case overlay && s.Baseline.Looping() && pos == s.Baseline.LoopEntry.Pos:
			fmt.Fprintf(w, "%c", s.Baseline.LoopEntry.Facing.Rune())
		case overlay:
			fmt.Fprintf(w, "%c", s.Overlay(pos))
		case pos == s.Start:
			fmt.Fprintf(w, "%c", world.GlyphStart)
		default:
			fmt.Fprintf(w, "%c", tile.Rune())
		}
		if pos.X == last {
			fmt.Fprintln(w)
		}
	})
}

// WriteDump writes the debug dump for a simulated session: metadata, legend,
// the plain map, the overlaid map and the list of loop-inducing placements.
func WriteDump(w io.Writer, s *state.Session) error {
	if s.Grid == nil {
		return fmt.Errorf("no grid")
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== PATROL DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "grid_width: %d\n", s.Grid.Width())
	fmt.Fprintf(w, "grid_height: %d\n", s.Grid.Height())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=column, y=row)\n")
	fmt.Fprintf(w, "start: %v\n", s.Start)
	fmt.Fprintf(w, "obstacles: %d\n", s.Grid.CountTiles(world.Obstacle))
	fmt.Fprintf(w, "max_steps: %d\n", patrol.MaxSteps(s.Grid))
	fmt.Fprintf(w, "baseline_status: %v\n", s.Baseline.Status)
	fmt.Fprintf(w, "baseline_steps: %d\n", s.Baseline.Steps)
	if s.Baseline.Looping() {
		fmt.Fprintf(w, "baseline_loop_entry: %v\n", s.Baseline.LoopEntry)
	} else {
		fmt.Fprintf(w, "visited_cells: %d\n", s.VisitedCount())
		fmt.Fprintf(w, "candidates: %d\n", s.Search.Candidates)
		fmt.Fprintf(w, "loop_placements: %d\n", s.LoopCount())
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintf(w, "%c start  %c obstacle  %c floor  %c visited  %c loop-inducing placement  %c%c%c%c loop entry\n",
		world.GlyphStart, world.GlyphObstacle, world.GlyphEmpty, state.GlyphVisited, state.GlyphPlacement,
		world.Up.Rune(), world.Right.Rune(), world.Down.Rune(), world.Left.Rune())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, s, false)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Patrol ---")
	writeMapGrid(w, s, true)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Placements ---")
	if len(s.Search.Placements) == 0 {
		fmt.Fprintln(w, "(none)")
	}
	for _, p := range s.Search.Placements {
		fmt.Fprintf(w, "%v\n", p)
	}

	return nil
}

// DumpToFile writes the debug dump to path, or to patrol-dump.txt in the
// working directory if path is empty. Returns the absolute path written.
func DumpToFile(s *state.Session, path string) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, s); err != nil {
		return "", err
	}

	return absPath, nil
}
