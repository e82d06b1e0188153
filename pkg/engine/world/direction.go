package world

// Direction represents a cardinal facing on the grid
type Direction int

// Direction constants, ordered clockwise starting from Up
const (
	Up Direction = iota
	Right
	Down
	Left
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{Up, Right, Down, Left}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// Rune returns the map glyph for a guard facing this direction
func (d Direction) Rune() rune {
	switch d {
	case Up:
		return '^'
	case Right:
		return '>'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '?'
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= Up && d <= Left
}

// RotateClockwise returns the direction a quarter turn to the right.
// Four rotations return the original direction.
func (d Direction) RotateClockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 1) % 4
}

// Delta returns the x and y offsets for this direction.
// y grows downwards, so Up is (0, -1).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}
