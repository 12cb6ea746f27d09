package wrapped

import "math"

// DefaultYear is the completion year summarized when no other year is given.
const DefaultYear = 2025

// DefaultEpisodeMinutes is the per-episode duration assumed when the media
// does not report one.
const DefaultEpisodeMinutes = 24

// UnknownTitle replaces empty media titles.
const UnknownTitle = "Unknown"

// Kind distinguishes anime from manga entries.
type Kind string

const (
	KindAnime Kind = "anime"
	KindManga Kind = "manga"
)

// Entry is one user list record for a single anime or manga title.
// Optional upstream fields are pointers so that "absent" and "zero" stay
// distinguishable; use the accessor methods rather than the raw fields.
type Entry struct {
	CompletionYear *int     `json:"completion_year,omitempty"`
	Progress       *int     `json:"progress,omitempty"`
	Score          *float64 `json:"score,omitempty"`
	Media          Media    `json:"media"`
}

// Media is the subset of media metadata the aggregator reads.
type Media struct {
	Title    string   `json:"title"`
	Units    *int     `json:"units,omitempty"`    // episodes (anime) or chapters (manga)
	Duration *int     `json:"duration,omitempty"` // minutes per episode, anime only
	Genres   []string `json:"genres,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Studios  []string `json:"studios,omitempty"` // anime only
	Staff    []string `json:"staff,omitempty"`
}

// CompletedIn reports whether the entry was completed in year.
func (e Entry) CompletedIn(year int) bool {
	return e.CompletionYear != nil && *e.CompletionYear == year
}

// Units returns the consumed unit count: the media's canonical count if
// known, else the user's progress, else 0.
func (e Entry) Units() int {
	if e.Media.Units != nil {
		return *e.Media.Units
	}
	if e.Progress != nil {
		return *e.Progress
	}
	return 0
}

// EpisodeMinutes returns the per-episode duration, defaulting to 24.
func (e Entry) EpisodeMinutes() int {
	if e.Media.Duration != nil {
		return *e.Media.Duration
	}
	return DefaultEpisodeMinutes
}

// UserScore returns the user's rating, or 0 when absent or not finite.
func (e Entry) UserScore() float64 {
	if e.Score == nil || math.IsNaN(*e.Score) || math.IsInf(*e.Score, 0) {
		return 0
	}
	return *e.Score
}

// Title returns the media title, or "Unknown" when empty.
func (e Entry) Title() string {
	if e.Media.Title == "" {
		return UnknownTitle
	}
	return e.Media.Title
}

// FilterYear returns the entries completed in year, preserving order.
func FilterYear(entries []Entry, year int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.CompletedIn(year) {
			out = append(out, e)
		}
	}
	return out
}

// unique returns names with duplicates removed, keeping first occurrences.
func unique(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
