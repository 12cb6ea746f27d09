// Package canvas paints a single paginated page onto a raster surface.
//
// Drawing is pure: every call to [Draw] allocates a fresh surface and fresh
// font faces, paints the header, the page's blocks and the footer, and
// returns the image. Nothing accumulates across calls, so pages may be drawn
// concurrently and in any order.
//
// Text passes through [fonts.Printable] before drawing. The embedded Go font
// has no emoji, so section icons are dropped from the image while the
// terminal preview keeps them.
//
// Vertical positions advance by the same fixed line heights used by
// [layout.Paginate], so a page packed by the paginator always fits.
package canvas

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/fonts"
	"github.com/matzehuels/wrapped/pkg/render/layout"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// Header and footer positions, in canvas units.
const (
	titleY     = 120.0
	userY      = 180.0
	indicatorY = 230.0
	footerGap  = 60.0

	textX    = 100.0
	titleGap = 6.0  // between a block's title and its value
	blockGap = 20.0 // after each block
)

// Header and footer fonts.
var (
	headingFont   = layout.Font{Size: 72, Bold: true}
	userFont      = layout.Font{Size: 40}
	indicatorFont = layout.Font{Size: 28}
	footerFont    = layout.Font{Size: 28}
)

// Theme holds the page colors as hex strings.
type Theme struct {
	Background string
	Foreground string
	Muted      string
}

// DefaultTheme is the dark story theme.
var DefaultTheme = Theme{
	Background: "#0f1226",
	Foreground: "#eef0ff",
	Muted:      "#aab0d9",
}

// DefaultFooter is the caption drawn at the bottom of every page.
const DefaultFooter = "Generated locally • Save and share 🎉"

// Option configures drawing.
type Option func(*renderer)

type renderer struct {
	year   int
	footer string
	theme  Theme
	cfg    layout.Config
}

// WithYear sets the year shown in the heading (default 2025).
func WithYear(y int) Option {
	return func(r *renderer) { r.year = y }
}

// WithTheme overrides the page colors.
func WithTheme(t Theme) Option {
	return func(r *renderer) { r.theme = t }
}

// WithConfig overrides the page geometry. It must match the config the pages
// were paginated with.
func WithConfig(c layout.Config) Option {
	return func(r *renderer) { r.cfg = c }
}

// WithFooter overrides the footer caption.
func WithFooter(s string) Option {
	return func(r *renderer) { r.footer = s }
}

// Heading returns the page heading for year.
func Heading(year int) string {
	return fmt.Sprintf("AniList Wrapped %d", year)
}

// Indicator returns the "Page i / N" label for a zero-based index.
func Indicator(index, total int) string {
	return fmt.Sprintf("Page %d / %d", index+1, total)
}

// Draw paints pages[index] for user and returns the finished image.
// It fails only for an out-of-range index or unloadable fonts.
func Draw(user string, pages []layout.Page, index int, opts ...Option) (image.Image, error) {
	if index < 0 || index >= len(pages) {
		return nil, werrors.New(werrors.ErrCodeInvalidInput, "page %d out of range (%d pages)", index+1, len(pages))
	}
	r := renderer{
		year:   wrapped.DefaultYear,
		footer: DefaultFooter,
		theme:  DefaultTheme,
		cfg:    layout.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&r)
	}

	faces, err := newFaceSet(r.cfg)
	if err != nil {
		return nil, err
	}

	w, h := r.cfg.Width, r.cfg.Height
	dc := gg.NewContext(int(w), int(h))

	// Background
	dc.SetHexColor(r.theme.Background)
	dc.Clear()

	// Header
	dc.SetHexColor(r.theme.Foreground)
	dc.SetFontFace(faces.heading)
	dc.DrawStringAnchored(Heading(r.year), w/2, titleY, 0.5, 0)
	dc.SetFontFace(faces.user)
	dc.DrawStringAnchored(fonts.Printable(userFont, "@"+user), w/2, userY, 0.5, 0)

	dc.SetHexColor(r.theme.Muted)
	dc.SetFontFace(faces.indicator)
	dc.DrawStringAnchored(Indicator(index, len(pages)), w/2, indicatorY, 0.5, 0)

	// Content
	y := r.cfg.Header
	dc.SetHexColor(r.theme.Foreground)
	for _, b := range pages[index] {
		dc.SetFontFace(faces.title)
		for _, line := range b.TitleLines {
			dc.DrawString(fonts.Printable(r.cfg.TitleFont, line), textX, y)
			y += r.cfg.TitleAdvance
		}
		y += titleGap
		dc.SetFontFace(faces.value)
		for _, line := range b.ValueLines {
			dc.DrawString(fonts.Printable(r.cfg.ValueFont, line), textX+r.cfg.ValueIndent, y)
			y += r.cfg.ValueAdvance
		}
		y += blockGap
	}

	// Footer
	dc.SetHexColor(r.theme.Muted)
	dc.SetFontFace(faces.footer)
	dc.DrawStringAnchored(fonts.Printable(footerFont, r.footer), w/2, h-footerGap, 0.5, 0)

	return dc.Image(), nil
}

// faceSet holds the faces for one draw call.
type faceSet struct {
	heading, user, indicator, footer font.Face
	title, value                     font.Face
}

func newFaceSet(c layout.Config) (*faceSet, error) {
	var fs faceSet
	for _, f := range []struct {
		dst  *font.Face
		desc layout.Font
	}{
		{&fs.heading, headingFont},
		{&fs.user, userFont},
		{&fs.indicator, indicatorFont},
		{&fs.footer, footerFont},
		{&fs.title, c.TitleFont},
		{&fs.value, c.ValueFont},
	} {
		face, err := fonts.NewFace(f.desc)
		if err != nil {
			return nil, werrors.Wrap(werrors.ErrCodeInternal, err, "load %s face", f.desc)
		}
		*f.dst = face
	}
	return &fs, nil
}
