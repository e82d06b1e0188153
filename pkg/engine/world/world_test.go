package world

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
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

func TestDirection_RotateClockwiseCycle(t *testing.T) {
	for _, d := range AllDirections() {
		t.Run(d.String(), func(t *testing.T) {
			got := d
			for i := 0; i < 4; i++ {
				got = got.RotateClockwise()
			}
			if got != d {
				t.Errorf("four rotations of %v = %v, want %v", d, got, d)
			}
		})
	}
}

func TestDirection_RotateClockwiseOrder(t *testing.T) {
	want := map[Direction]Direction{Up: Right, Right: Down, Down: Left, Left: Up}
	for from, to := range want {
		if got := from.RotateClockwise(); got != to {
			t.Errorf("%v.RotateClockwise() = %v, want %v", from, got, to)
		}
	}
}

func TestDirection_DeltaRotatesClockwise(t *testing.T) {
	for _, d := range AllDirections() {
		dx, dy := d.Delta()
		rx, ry := d.RotateClockwise().Delta()
		if rx != -dy || ry != dx {
			t.Errorf("%v delta (%d,%d) rotated to %v delta (%d,%d), want (%d,%d)", d, dx, dy, d.RotateClockwise(), rx, ry, -dy, dx)
		}
	}
	if dx, dy := Up.Delta(); dx != 0 || dy != -1 {
		t.Errorf("Up.Delta() = (%d,%d), want (0,-1)", dx, dy)
	}
}

func TestGrid_GetOutOfBounds(t *testing.T) {
	g := NewGrid(3, 2)
	cases := []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 2}}
	for _, pos := range cases {
		if _, ok := g.Get(pos); ok {
			t.Errorf("Get(%v) ok = true, want false", pos)
		}
		if g.Set(pos, Obstacle) {
			t.Errorf("Set(%v) = true, want false", pos)
		}
	}
}

func TestGrid_PlaceRestores(t *testing.T) {
	g := NewGrid(2, 2)
	pos := Position{X: 1, Y: 1}

	restore, ok := g.Place(pos, Obstacle)
	if !ok {
		t.Fatal("Place in bounds returned ok = false")
	}
	if tile, _ := g.Get(pos); tile != Obstacle {
		t.Errorf("after Place, tile = %v, want Obstacle", tile)
	}

	restore()
	if tile, _ := g.Get(pos); tile != Empty {
		t.Errorf("after restore, tile = %v, want Empty", tile)
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	g.SetStart(Position{X: 0, Y: 0})
	c := g.Clone()
	c.Set(Position{X: 1, Y: 0}, Obstacle)

	if tile, _ := g.Get(Position{X: 1, Y: 0}); tile != Empty {
		t.Errorf("original tile changed through clone: %v", tile)
	}
	if start, ok := c.FindStart(); !ok || start != (Position{}) {
		t.Errorf("clone start = %v, %v; want 0,0, true", start, ok)
	}
}

func TestParse_Sample(t *testing.T) {
	g, err := ParseString(sampleMap)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if g.Width() != 10 || g.Height() != 10 {
		t.Errorf("size = %dx%d, want 10x10", g.Width(), g.Height())
	}
	start, ok := g.FindStart()
	if !ok || start != (Position{X: 4, Y: 6}) {
		t.Errorf("FindStart() = %v, %v; want 4,6, true", start, ok)
	}
	if n := g.CountTiles(Obstacle); n != 8 {
		t.Errorf("CountTiles(Obstacle) = %d, want 8", n)
	}
	if diff := cmp.Diff(sampleMap, g.String()); diff != "" {
		t.Errorf("String() round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_Sample(t *testing.T) {
	g, err := ParseFile("testdata/sample.txt")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := g.String(); got != sampleMap {
		t.Errorf("ParseFile content mismatch:\n%s", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "\n\n", ErrEmptyGrid},
		{"ragged", "..^\n.\n", ErrRaggedRow},
		{"no start", "...\n.#.\n", ErrNoStart},
		{"two starts", "^.^\n...\n", ErrMultipleStarts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseString(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestParse_UnknownTile(t *testing.T) {
	_, err := Parse(strings.NewReader("..^\n.x.\n"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decodeErr.Row != 1 || decodeErr.Col != 1 || decodeErr.Rune != 'x' {
		t.Errorf("DecodeError = %+v, want row 1 col 1 rune 'x'", decodeErr)
	}
}

func TestSortedPositions_RowMajor(t *testing.T) {
	s := NewPositionSet()
	s.Put(Position{X: 2, Y: 1})
	s.Put(Position{X: 0, Y: 1})
	s.Put(Position{X: 5, Y: 0})

	got := SortedPositions(s)
	want := []Position{{X: 5, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortedPositions mismatch (-want +got):\n%s", diff)
	}
}
