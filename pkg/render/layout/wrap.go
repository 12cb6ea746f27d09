package layout

import "strings"

// Wrap breaks text into lines no wider than maxWidth in font f.
//
// Words are separated by single spaces and accumulated greedily. A word that
// is wider than maxWidth on its own is placed alone on its line; words are
// never split. Empty text yields no lines.
func Wrap(text string, maxWidth float64, f Font, m Measurer) []string {
	var lines []string
	line := ""
	for _, w := range strings.Split(text, " ") {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if m.Measure(candidate, f) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// WrapLines wraps each newline-delimited line of text independently and
// concatenates the results.
func WrapLines(text string, maxWidth float64, f Font, m Measurer) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		out = append(out, Wrap(raw, maxWidth, f, m)...)
	}
	return out
}
