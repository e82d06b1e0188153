package devtools

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/search"
	"guardpatrol/pkg/game/state"
)

const sampleMap = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

func simulatedSample(t *testing.T) *state.Session {
	t.Helper()
	g, err := world.ParseString(sampleMap)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s := state.NewSession(g)
	if err := s.Simulate(context.Background(), search.Options{}); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return s
}

func TestWriteDump_Sections(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDump(&buf, simulatedSample(t)); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"start: 4,6",
		"visited_cells: 41",
		"candidates: 40",
		"loop_placements: 6",
		"--- Map ---\n" + sampleMap,
		"--- Placements ---\n3,6\n6,7\n7,7\n1,8\n3,8\n7,9\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump missing %q:\n%s", want, got)
		}
	}
}

func TestWriteDump_NoGrid(t *testing.T) {
	if err := WriteDump(&bytes.Buffer{}, &state.Session{}); err == nil {
		t.Error("WriteDump with nil grid returned nil error")
	}
}

func TestDumpToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	written, err := DumpToFile(simulatedSample(t), path)
	if err != nil {
		t.Fatalf("DumpToFile: %v", err)
	}
	if written != path {
		t.Errorf("DumpToFile path = %q, want %q", written, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "=== PATROL DUMP ===") {
		t.Errorf("dump file has unexpected header:\n%s", data)
	}
}

func TestWriteDump_LoopEntryFacing(t *testing.T) {
	g, err := world.ParseString(sampleMap)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	// Blocking the cell left of the start traps the patrol
	g.Set(world.Position{X: 3, Y: 6}, world.Obstacle)
	s := state.NewSession(g)
	if err := s.Simulate(context.Background(), search.Options{}); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !s.Baseline.Looping() {
		t.Fatalf("Baseline.Status = %v, want Looping", s.Baseline.Status)
	}

	var buf bytes.Buffer
	if err := WriteDump(&buf, s); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}

	_, section, found := strings.Cut(buf.String(), "--- Patrol ---\n")
	if !found {
		t.Fatalf("dump has no patrol section:\n%s", buf.String())
	}
	rows := strings.Split(section, "\n")
	entry := s.Baseline.LoopEntry
	if got, want := rune(rows[entry.Pos.Y][entry.Pos.X]), entry.Facing.Rune(); got != want {
		t.Errorf("loop entry %v drawn as %q, want %q", entry, got, want)
	}
}
