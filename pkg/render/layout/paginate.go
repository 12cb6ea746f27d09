package layout

import (
	"fmt"

	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// =============================================================================
// Page Geometry
// =============================================================================

const (
	// DefaultWidth is the virtual canvas width.
	DefaultWidth = 1080.0

	// DefaultHeight is the virtual canvas height.
	DefaultHeight = 1920.0

	// DefaultHeader is the vertical space reserved above the content.
	DefaultHeader = 300.0

	// DefaultFooter is the vertical space reserved below the content.
	DefaultFooter = 80.0

	// DefaultMargin is the total horizontal margin around title text.
	DefaultMargin = 160.0

	// DefaultValueIndent narrows value text relative to the title.
	DefaultValueIndent = 40.0

	// DefaultTitleAdvance is the line height of a wrapped title line.
	DefaultTitleAdvance = 40.0

	// DefaultValueAdvance is the line height of a wrapped value line.
	DefaultValueAdvance = 36.0

	// DefaultPadding is added to every block's estimated height.
	DefaultPadding = 40.0
)

// Default fonts for section text.
var (
	TitleFont = Font{Size: 34}
	ValueFont = Font{Size: 30}
)

// Config holds the page geometry used during pagination.
// The zero value is not usable; start from [DefaultConfig].
type Config struct {
	Width, Height  float64
	Header, Footer float64
	Margin         float64
	ValueIndent    float64
	TitleFont      Font
	ValueFont      Font
	TitleAdvance   float64
	ValueAdvance   float64
	Padding        float64
}

// DefaultConfig returns the 1080×1920 story-format geometry.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Header:       DefaultHeader,
		Footer:       DefaultFooter,
		Margin:       DefaultMargin,
		ValueIndent:  DefaultValueIndent,
		TitleFont:    TitleFont,
		ValueFont:    ValueFont,
		TitleAdvance: DefaultTitleAdvance,
		ValueAdvance: DefaultValueAdvance,
		Padding:      DefaultPadding,
	}
}

// UsableHeight is the vertical budget available to blocks on one page.
func (c Config) UsableHeight() float64 { return c.Height - c.Header - c.Footer }

// TitleWidth is the maximum width of a title line.
func (c Config) TitleWidth() float64 { return c.Width - c.Margin }

// ValueWidth is the maximum width of a value line.
func (c Config) ValueWidth() float64 { return c.TitleWidth() - c.ValueIndent }

// =============================================================================
// Blocks and Pages
// =============================================================================

// TextBlock is a section wrapped to the page width.
type TextBlock struct {
	TitleLines []string `json:"title_lines"`
	ValueLines []string `json:"value_lines"`
}

// Page is an ordered set of blocks that fits one canvas.
type Page []TextBlock

// BlockHeight returns the estimated rendered height of b under c.
func (c Config) BlockHeight(b TextBlock) float64 {
	return float64(len(b.TitleLines))*c.TitleAdvance +
		float64(len(b.ValueLines))*c.ValueAdvance +
		c.Padding
}

// Block wraps one section into a [TextBlock].
func Block(s wrapped.Section, m Measurer, c Config) TextBlock {
	return TextBlock{
		TitleLines: Wrap(Heading(s.Title), c.TitleWidth(), c.TitleFont, m),
		ValueLines: WrapLines(s.Value, c.ValueWidth(), c.ValueFont, m),
	}
}

// Paginate wraps sections and packs them greedily into pages.
//
// A block joins the current page while the running height stays within
// [Config.UsableHeight]; otherwise the page is closed and the block starts a
// new one. A block taller than a whole page still gets a page to itself, so
// sections are never dropped. No sections yields no pages.
func Paginate(sections []wrapped.Section, m Measurer, c Config) []Page {
	var (
		pages []Page
		page  Page
		used  float64
	)
	usable := c.UsableHeight()
	for _, s := range sections {
		b := Block(s, m, c)
		h := c.BlockHeight(b)
		if used+h > usable && len(page) > 0 {
			pages = append(pages, page)
			page = nil
			used = 0
		}
		page = append(page, b)
		used += h
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

// Placeholder returns the single page shown when there is nothing to paginate.
func Placeholder(year int) []Page {
	return []Page{{{
		TitleLines: []string{DefaultIcon + " Wrapped"},
		ValueLines: []string{fmt.Sprintf("No data for %d", year)},
	}}}
}
