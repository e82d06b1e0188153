package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Map decoding errors
var (
	ErrEmptyGrid      = errors.New("map is empty")
	ErrRaggedRow      = errors.New("map rows have different lengths")
	ErrMultipleStarts = errors.New("map has more than one start marker")
)

// Parse decodes a character map where '.' is empty floor, '#' is an
// obstacle and '^' marks the guard's start. Each line is trimmed, trailing
// blank lines are ignored, and the result is validated before returning.
func Parse(r io.Reader) (*Grid, error) {
	var rows [][]rune

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, []rune(strings.TrimSpace(scanner.Text())))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(rows[0])
	g := NewGrid(width, len(rows))

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRow, y, len(row), width)
		}

		for x, ch := range row {
			tile, ok := TileFromRune(ch)
			if !ok {
				return nil, &DecodeError{Row: y, Col: x, Rune: ch}
			}

			pos := Position{X: x, Y: y}
			if ch == GlyphStart {
				if prev, found := g.FindStart(); found {
					return nil, fmt.Errorf("%w: %v and %v", ErrMultipleStarts, prev, pos)
				}
				g.SetStart(pos)
			}
			g.Set(pos, tile)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// ParseString decodes a map held in a string
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens and decodes a map file
func ParseFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// String renders the grid back into its character map form
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)

	start, hasStart := g.FindStart()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			pos := Position{X: x, Y: y}
			if hasStart && pos == start {
				b.WriteRune(GlyphStart)
				continue
			}
			tile, _ := g.Get(pos)
			b.WriteRune(tile.Rune())
		}
		b.WriteByte('\n')
	}

	return b.String()
}
