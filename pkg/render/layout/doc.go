// Package layout packs display sections into fixed-size pages.
//
// Each section becomes a [TextBlock]: its icon-prefixed title and its value
// text, word-wrapped to the page's content width using an injected
// [Measurer]. Blocks are then packed greedily into [Page] values so that no
// page's estimated height exceeds the usable vertical budget.
//
// # Measurement
//
// Layout never touches a drawing surface. Text widths come from a
// [Measurer]; [fonts.Measurer] measures with the same TrueType faces the
// canvas renderer draws with, while [Monospace] counts terminal cells and is
// used by the terminal preview and tests.
//
// # Height Model
//
// Heights are estimated with fixed per-line advances rather than measured
// glyph extents:
//
//	height = titleLines*TitleAdvance + valueLines*ValueAdvance + Padding
//
// The renderer advances its cursor by the same constants, so a page that fits
// here fits on the canvas.
//
// [fonts.Measurer]: github.com/matzehuels/wrapped/pkg/fonts.Measurer
package layout
