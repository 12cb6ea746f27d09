package layout

import "strings"

// Icon maps a title keyword to its decorative prefix.
type Icon struct {
	Keyword string
	Symbol  string
}

// DefaultIcon is used when no keyword matches.
const DefaultIcon = "✨"

// Icons are tested in order; the first keyword contained in a title wins.
var Icons = []Icon{
	{"Anime", "🎬"},
	{"Manga", "📚"},
	{"Episodes", "📺"},
	{"Hours", "⏱"},
	{"Genres", "🏆"},
	{"Tags", "🏷"},
	{"Studios", "🎥"},
	{"Staff", "🎭"},
}

// IconFor returns the icon for a section title.
func IconFor(title string) string {
	for _, ic := range Icons {
		if strings.Contains(title, ic.Keyword) {
			return ic.Symbol
		}
	}
	return DefaultIcon
}

// Heading returns the decorated title drawn above a section's value.
func Heading(title string) string {
	return IconFor(title) + " " + title + ":"
}
