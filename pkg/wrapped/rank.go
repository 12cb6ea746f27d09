package wrapped

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Placeholder is rendered in place of an empty ranking.
const Placeholder = "—"

// DefaultTopN is the number of rows shown per ranking section.
const DefaultTopN = 5

// Counter is a frequency tally that remembers first-seen order.
// The zero value is ready to use.
type Counter struct {
	counts map[string]int
	order  []string
}

// Add increments name by one.
func (c *Counter) Add(name string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// AddAll increments every distinct name once.
func (c *Counter) AddAll(names []string) {
	for _, n := range unique(names) {
		c.Add(n)
	}
}

// Count returns the tally for name.
func (c *Counter) Count(name string) int { return c.counts[name] }

// Len returns the number of distinct names.
func (c *Counter) Len() int { return len(c.order) }

// Ranked is one row of a ranking.
type Ranked struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Ranked returns all names sorted by count descending; ties keep first-seen order.
func (c *Counter) Ranked() []Ranked {
	out := make([]Ranked, len(c.order))
	for i, name := range c.order {
		out[i] = Ranked{Name: name, Count: c.counts[name]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN formats the n highest tallies as "name (count)" lines,
// or [Placeholder] when the counter is empty.
func TopN(c *Counter, n int) string {
	ranked := c.Ranked()
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	if len(ranked) == 0 {
		return Placeholder
	}
	lines := make([]string, len(ranked))
	for i, r := range ranked {
		lines[i] = fmt.Sprintf("%s (%d)", r.Name, r.Count)
	}
	return strings.Join(lines, "\n")
}

// Rated pairs a title with the user's score.
type Rated struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// SortDesc returns a copy of items sorted by score, highest first.
// Equal scores keep their original relative order.
func SortDesc(items []Rated) []Rated {
	out := append([]Rated(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// SortAsc returns a copy of items sorted by score, lowest first.
// Equal scores keep their original relative order.
func SortAsc(items []Rated) []Rated {
	out := append([]Rated(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// FormatRated formats the first n items as "title — score" lines,
// or [Placeholder] when items is empty.
func FormatRated(items []Rated, n int) string {
	if n < len(items) {
		items = items[:n]
	}
	if len(items) == 0 {
		return Placeholder
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Title + " — " + FormatScore(it.Score)
	}
	return strings.Join(lines, "\n")
}

// FormatScore prints a score with the shortest exact representation (85, 7.5).
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
