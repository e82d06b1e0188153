package renderer

import (
	"guardpatrol/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleCount
	StyleFloor
	StyleObstacle
	StyleVisited
	StylePlacement
	StyleGuard
	StyleDenied
	StyleSubtle
)

// Renderer defines the interface for report rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, message catalogue, etc.)
	Init()

	// RenderReport renders the results of a session: both counts and any
	// messages
	RenderReport(s *state.Session)

	// RenderMap renders the grid with the patrol path and loop-inducing
	// placements overlaid
	RenderMap(s *state.Session)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// GetViewportSize returns the number of map rows and columns that fit
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// RenderReport renders a session with the current renderer
func RenderReport(s *state.Session) {
	if Current != nil {
		Current.RenderReport(s)
	}
}

// RenderMap renders a session's map with the current renderer
func RenderMap(s *state.Session) {
	if Current != nil {
		Current.RenderMap(s)
	}
}

// ShowMessage displays a message with the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return msg
}
