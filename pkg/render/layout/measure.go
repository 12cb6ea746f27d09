package layout

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Font describes a face by pixel size and weight.
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// String renders the font as a CSS-like shorthand ("bold 72px").
func (f Font) String() string {
	if f.Bold {
		return fmt.Sprintf("bold %gpx", f.Size)
	}
	return fmt.Sprintf("%gpx", f.Size)
}

// Measurer reports the rendered width of text in a given font.
type Measurer interface {
	Measure(text string, f Font) float64
}

// MeasureFunc adapts a plain function to [Measurer].
type MeasureFunc func(text string, f Font) float64

// Measure calls fn.
func (fn MeasureFunc) Measure(text string, f Font) float64 { return fn(text, f) }

// Monospace measures text as a grid of terminal cells: each cell is
// CellWidth × font size wide. Wide runes (CJK, most emoji) take two cells.
type Monospace struct {
	CellWidth float64
}

// DefaultCellWidth approximates the advance of a monospace glyph relative to
// its font size.
const DefaultCellWidth = 0.6

// Measure implements [Measurer].
func (m Monospace) Measure(text string, f Font) float64 {
	cw := m.CellWidth
	if cw == 0 {
		cw = DefaultCellWidth
	}
	return float64(runewidth.StringWidth(text)) * cw * f.Size
}
