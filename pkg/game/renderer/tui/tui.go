package tui

import (
	"embed"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/renderer"
	"guardpatrol/pkg/game/state"
)

// DefaultLocale is used when the requested catalogue does not exist
const DefaultLocale = "en"

// Viewport minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15
)

//go:embed locales/*.po
var locales embed.FS

// TUIRenderer is the terminal report renderer
type TUIRenderer struct {
	out    io.Writer
	locale string
	width  int
	height int

	colorTitle     color.Style
	colorCount     color.Style
	colorFloor     color.Style
	colorObstacle  color.Style
	colorVisited   color.Style
	colorPlacement color.Style
	colorGuard     color.Style
	colorDenied    color.Style
	colorSubtle    color.Style

	po *gotext.Po

	// lookup resolves catalogue keys taken from markup at runtime. Held as a
	// func value so vet does not treat the key as a format string.
	lookup func(str string, vars ...any) string

	regexpStringFunctions *regexp.Regexp
}

// New creates a TUI renderer writing to out. width and height describe
// the terminal; the map is cut to width columns.
func New(out io.Writer, locale string, width, height int) *TUIRenderer {
	return &TUIRenderer{
		out:    out,
		locale: locale,
		width:  width,
		height: height,
	}
}

// Init initializes the TUI renderer (colors, message catalogue)
func (t *TUIRenderer) Init() {
	t.colorTitle = color.Style{color.FgMagenta, color.OpBold}
	t.colorCount = color.Style{color.FgGreen, color.OpBold}
	t.colorFloor = color.Style{color.FgGray}
	t.colorObstacle = color.Style{color.FgYellow, color.OpBold}
	t.colorVisited = color.Style{color.FgBlue}
	t.colorPlacement = color.Style{color.FgRed, color.OpBold}
	t.colorGuard = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.po, t.locale = loadCatalogue(t.locale)
	t.lookup = t.po.Get

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// loadCatalogue parses the embedded .po file for locale, falling back to
// DefaultLocale when there is none. Returns the locale actually loaded.
func loadCatalogue(locale string) (*gotext.Po, string) {
	data, err := locales.ReadFile("locales/" + locale + ".po")
	if err != nil {
		locale = DefaultLocale
		data, _ = locales.ReadFile("locales/" + DefaultLocale + ".po")
	}

	po := gotext.NewPo()
	po.Parse(data)
	return po, locale
}

// Locale returns the catalogue language in use
func (t *TUIRenderer) Locale() string {
	return t.locale
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleCount:
		return t.colorCount.Sprint(text)
	case renderer.StyleFloor:
		return t.colorFloor.Sprint(text)
	case renderer.StyleObstacle:
		return t.colorObstacle.Sprint(text)
	case renderer.StyleVisited:
		return t.colorVisited.Sprint(text)
	case renderer.StylePlacement:
		return t.colorPlacement.Sprint(text)
	case renderer.StyleGuard:
		return t.colorGuard.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system:
// GT{KEY} translates, COUNT{n} highlights a number, SUBTLE{text} dims text.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = t.lookup(operand)
		case "COUNT":
			val = t.colorCount.Sprint(operand)
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		case "DENIED":
			val = t.colorDenied.Sprint(t.lookup(operand))
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, msg)
}

// GetViewportSize returns the number of map rows and columns that fit the terminal
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	rows, cols = t.height, t.width

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	return rows, cols
}

// RenderReport prints both counts and any messages
func (t *TUIRenderer) RenderReport(s *state.Session) {
	fmt.Fprintln(t.out, t.colorTitle.Sprint(t.po.Get("REPORT_TITLE")))
	fmt.Fprintln(t.out)

	if s.Baseline.Exited() {
		t.printString("GT{VISITED_CELLS} COUNT{%d}\n", s.VisitedCount())
		t.printString("GT{LOOP_PLACEMENTS} COUNT{%d} SUBTLE{%d} GT{CANDIDATES}\n", s.LoopCount(), s.Search.Candidates)
	}

	t.printMessagesPane(s)
}

// RenderMap prints the grid with the patrol overlaid, cut to the viewport
func (t *TUIRenderer) RenderMap(s *state.Session) {
	rows, cols := t.GetViewportSize()
	truncated := s.Grid.Width() > cols || s.Grid.Height() > rows
	cols = min(cols, s.Grid.Width())
	rows = min(rows, s.Grid.Height())

	fmt.Fprintln(t.out)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			b.WriteString(t.renderCell(s, world.Position{X: x, Y: y}))
		}
		fmt.Fprintln(t.out, b.String())
	}
	fmt.Fprintln(t.out)

	fmt.Fprintln(t.out, t.StyleText(t.po.Get("MAP_LEGEND"), renderer.StyleSubtle))
	if truncated {
		t.printString("GT{MAP_TRUNCATED}\n")
	}
}

// renderCell returns the styled glyph for one cell
func (t *TUIRenderer) renderCell(s *state.Session, pos world.Position) string {
	glyph := s.Overlay(pos)
	text := string(glyph)

	switch glyph {
	case world.GlyphStart:
		return t.colorGuard.Sprint(text)
	case state.GlyphPlacement:
		return t.colorPlacement.Sprint(text)
	case state.GlyphVisited:
		return t.colorVisited.Sprint(text)
	case world.GlyphObstacle:
		return t.colorObstacle.Sprint(text)
	default:
		return t.colorFloor.Sprint(text)
	}
}

// printMessagesPane prints the session's message log, translated
func (t *TUIRenderer) printMessagesPane(s *state.Session) {
	if len(s.Messages) == 0 {
		return
	}

	fmt.Fprintln(t.out)
	for _, msg := range s.Messages {
		t.printBullet("DENIED{" + msg + "}")
	}
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

// printBullet prints a bulleted item
func (t *TUIRenderer) printBullet(txt string) {
	fmt.Fprint(t.out, "- "+t.FormatText("%s", txt)+"\n")
}
