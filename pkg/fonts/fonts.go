// Package fonts provides the TrueType faces used to measure and draw pages.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so rendering needs no system fonts. Faces are created per pixel
// size at 72 DPI, which makes one point equal one canvas unit.
//
// The Go fonts cover Latin, Greek and Cyrillic but have no emoji. [Printable]
// strips runes a face cannot draw so section icons do not render as boxes;
// both the canvas and [Measurer] apply it, so wrapping matches what is drawn.
//
// Faces returned by [NewFace] are not safe for concurrent use; each goroutine
// that draws should create its own. [Measurer] guards its face cache with a
// mutex and may be shared.
package fonts

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/wrapped/pkg/render/layout"
)

// FontFamily is the display name of the embedded family.
const FontFamily = "Go"

// dpi makes font sizes map 1:1 to canvas pixels.
const dpi = 72

// Parsed fonts (computed once on first access).
var (
	regular, bold *truetype.Font
	parseErr      error
	parseOnce     sync.Once
)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse regular font: %w", parseErr)
			return
		}
		if bold, parseErr = truetype.Parse(gobold.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse bold font: %w", parseErr)
		}
	})
	return parseErr
}

func fontFor(f layout.Font) *truetype.Font {
	if f.Bold {
		return bold
	}
	return regular
}

// NewFace returns a new face for f.
func NewFace(f layout.Font) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, err
	}
	return truetype.NewFace(fontFor(f), &truetype.Options{
		Size:    f.Size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// Printable returns s without the runes f has no glyph for. When anything
// is dropped the remaining words are rejoined with single spaces, so
// "🎬 Anime Completed:" becomes "Anime Completed:". Text the font fully
// covers is returned unchanged.
func Printable(f layout.Font, s string) string {
	if parse() != nil {
		return s
	}
	ttf := fontFor(f)
	dropped := false
	kept := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || ttf.Index(r) != 0 {
			return r
		}
		dropped = true
		return -1
	}, s)
	if !dropped {
		return s
	}
	return strings.Join(strings.Fields(kept), " ")
}

// Measurer measures text with the embedded faces. It implements
// [layout.Measurer] and is safe for concurrent use. The zero value is
// usable; [NewMeasurer] additionally reports font parse errors up front.
type Measurer struct {
	mu    sync.Mutex
	faces map[layout.Font]font.Face
}

// NewMeasurer parses the embedded fonts and returns a ready Measurer.
func NewMeasurer() (*Measurer, error) {
	if err := parse(); err != nil {
		return nil, err
	}
	return &Measurer{faces: make(map[layout.Font]font.Face)}, nil
}

// Measure returns the advance width of text in f, in canvas units.
func (m *Measurer) Measure(text string, f layout.Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.faces == nil {
		m.faces = make(map[layout.Font]font.Face)
	}
	face, ok := m.faces[f]
	if !ok {
		var err error
		if face, err = NewFace(f); err != nil {
			return 0
		}
		m.faces[f] = face
	}
	return float64(font.MeasureString(face, Printable(f, text))) / 64
}

var _ layout.Measurer = (*Measurer)(nil)
