package world

import "fmt"

// Tile is the terrain of a single cell
type Tile int

// Tile constants
const (
	Empty Tile = iota
	Obstacle
)

// Map glyphs
const (
	GlyphEmpty    = '.'
	GlyphObstacle = '#'
	GlyphStart    = '^'
)

// String returns the string representation of a tile
func (t Tile) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Obstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// Rune returns the map glyph for the tile
func (t Tile) Rune() rune {
	if t == Obstacle {
		return GlyphObstacle
	}
	return GlyphEmpty
}

// TileFromRune decodes a map glyph. The start marker decodes as Empty
// terrain; the caller records its position separately.
func TileFromRune(r rune) (Tile, bool) {
	switch r {
	case GlyphEmpty, GlyphStart:
		return Empty, true
	case GlyphObstacle:
		return Obstacle, true
	default:
		return Empty, false
	}
}

// DecodeError reports a glyph that is not part of the map alphabet
type DecodeError struct {
	Row  int
	Col  int
	Rune rune
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown tile %q at row %d, col %d", e.Rune, e.Row, e.Col)
}
