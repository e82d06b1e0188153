// Package world provides the 2D tile grid the guard patrols, along with
// positions, directions and the text map decoder.
package world

import (
	"errors"
	"fmt"
)

// Grid validation errors
var (
	ErrInvalidDimensions = errors.New("grid has invalid dimensions")
	ErrNoStart           = errors.New("grid has no start marker")
	ErrStartBlocked      = errors.New("start cell is an obstacle")
)

// Grid represents the patrol area as a dense row-major tile array
type Grid struct {
	tiles  []Tile
	width  int
	height int

	start    Position
	hasStart bool
}

// NewGrid creates a new grid of empty tiles with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.height = height
	g.tiles = make([]Tile, width*height)
	g.hasStart = false
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

func (g *Grid) index(pos Position) int {
	return pos.Y*g.width + pos.X
}

// Get returns the tile at the given position. The second result is false
// when the position is out of bounds.
func (g *Grid) Get(pos Position) (Tile, bool) {
	if !g.IsValidPosition(pos) {
		return Empty, false
	}
	return g.tiles[g.index(pos)], true
}

// Set overwrites the tile at the given position. Returns false if out of bounds.
func (g *Grid) Set(pos Position, tile Tile) bool {
	if !g.IsValidPosition(pos) {
		return false
	}
	g.tiles[g.index(pos)] = tile
	return true
}

// Place temporarily sets a tile and returns a function that puts the previous
// tile back. Callers should defer the restore. Returns false if out of bounds.
func (g *Grid) Place(pos Position, tile Tile) (restore func(), ok bool) {
	prev, ok := g.Get(pos)
	if !ok {
		return func() {}, false
	}
	g.tiles[g.index(pos)] = tile
	return func() {
		g.tiles[g.index(pos)] = prev
	}, true
}

// SetStart records the guard's starting position. Returns false if out of bounds.
func (g *Grid) SetStart(pos Position) bool {
	if !g.IsValidPosition(pos) {
		return false
	}
	g.start = pos
	g.hasStart = true
	return true
}

// FindStart returns the guard's starting position, if the map had one
func (g *Grid) FindStart() (Position, bool) {
	return g.start, g.hasStart
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = make([]Tile, len(g.tiles))
	copy(c.tiles, g.tiles)
	return &c
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(pos Position, tile Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			pos := Position{X: x, Y: y}
			fn(pos, g.tiles[g.index(pos)])
		}
	}
}

// CountTiles returns how many cells hold the given tile
func (g *Grid) CountTiles(tile Tile) int {
	n := 0
	g.ForEachCell(func(_ Position, t Tile) {
		if t == tile {
			n++
		}
	})
	return n
}

// Validate checks the grid for issues that would make a patrol meaningless
func (g *Grid) Validate() error {
	if g.width <= 0 || g.height <= 0 || len(g.tiles) != g.width*g.height {
		return ErrInvalidDimensions
	}

	start, ok := g.FindStart()
	if !ok {
		return ErrNoStart
	}

	if tile, _ := g.Get(start); tile == Obstacle {
		return fmt.Errorf("%w: %v", ErrStartBlocked, start)
	}

	return nil
}
