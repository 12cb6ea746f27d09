package wrapped

import (
	"fmt"
	"math"
	"strconv"
)

// Section is one named statistic ready for display.
type Section struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Tally holds the per-kind aggregates for one year.
type Tally struct {
	Kind    Kind
	Entries int
	Units   int // episodes or chapters
	Minutes int // anime only
	Genres  Counter
	Tags    Counter
	Studios Counter // anime only
	Staff   Counter
	Rated   []Rated // in entry order
}

// Hours returns watch time rounded to the nearest hour (halves round up).
func (t *Tally) Hours() int {
	return int(math.Floor(float64(t.Minutes)/60 + 0.5))
}

// MeanScore returns the average user score, or 0 with no entries.
func (t *Tally) MeanScore() float64 {
	if len(t.Rated) == 0 {
		return 0
	}
	var sum float64
	for _, r := range t.Rated {
		sum += r.Score
	}
	return sum / float64(len(t.Rated))
}

// NewTally aggregates the entries of one kind completed in year.
func NewTally(kind Kind, entries []Entry, year int) *Tally {
	t := &Tally{Kind: kind}
	for _, e := range entries {
		if !e.CompletedIn(year) {
			continue
		}
		t.Entries++
		units := e.Units()
		t.Units += units
		if kind == KindAnime {
			t.Minutes += units * e.EpisodeMinutes()
			t.Studios.AddAll(e.Media.Studios)
		}
		t.Genres.AddAll(e.Media.Genres)
		t.Tags.AddAll(e.Media.Tags)
		t.Staff.AddAll(e.Media.Staff)
		t.Rated = append(t.Rated, Rated{Title: e.Title(), Score: e.UserScore()})
	}
	return t
}

// Summary is the numeric roll-up of both tallies, used for reports and logs.
type Summary struct {
	Year            int     `json:"year"`
	AnimeCompleted  int     `json:"anime_completed"`
	EpisodesWatched int     `json:"episodes_watched"`
	MinutesWatched  int     `json:"minutes_watched"`
	HoursWatched    int     `json:"hours_watched"`
	AnimeMeanScore  float64 `json:"anime_mean_score"`
	MangaCompleted  int     `json:"manga_completed"`
	ChaptersRead    int     `json:"chapters_read"`
	MangaMeanScore  float64 `json:"manga_mean_score"`
}

// Report is the full aggregation result for one year.
type Report struct {
	Year    int
	Anime   *Tally
	Manga   *Tally
	Summary Summary
}

// Build aggregates anime and manga entries for year.
func Build(anime, manga []Entry, year int) *Report {
	a := NewTally(KindAnime, anime, year)
	m := NewTally(KindManga, manga, year)
	return &Report{
		Year:  year,
		Anime: a,
		Manga: m,
		Summary: Summary{
			Year:            year,
			AnimeCompleted:  a.Entries,
			EpisodesWatched: a.Units,
			MinutesWatched:  a.Minutes,
			HoursWatched:    a.Hours(),
			AnimeMeanScore:  a.MeanScore(),
			MangaCompleted:  m.Entries,
			ChaptersRead:    m.Units,
			MangaMeanScore:  m.MeanScore(),
		},
	}
}

// Sections returns the report's display sections in their fixed order,
// anime first, ending with the closing section.
func (r *Report) Sections() []Section {
	a, m := r.Anime, r.Manga
	n := DefaultTopN
	return []Section{
		{"Anime Completed", strconv.Itoa(a.Entries)},
		{"Episodes Watched", strconv.Itoa(a.Units)},
		{"Hours Watched", fmt.Sprintf("%d h", a.Hours())},
		{"Top Genres", TopN(&a.Genres, n)},
		{"Top Tags", TopN(&a.Tags, n)},
		{"Top Studios (Works)", TopN(&a.Studios, n)},
		{"Top Staff (Anime Works)", TopN(&a.Staff, n)},
		{"Top Rated Anime (Your Scores)", FormatRated(SortDesc(a.Rated), n)},
		{"Lowest Rated Anime (Your Scores)", FormatRated(SortAsc(a.Rated), n)},
		{"Manga Completed", strconv.Itoa(m.Entries)},
		{"Chapters Read", strconv.Itoa(m.Units)},
		{"Top Genres (Manga)", TopN(&m.Genres, n)},
		{"Top Tags (Manga)", TopN(&m.Tags, n)},
		{"Top Rated Manga (Your Scores)", FormatRated(SortDesc(m.Rated), n)},
		{"Lowest Rated Manga (Your Scores)", FormatRated(SortAsc(m.Rated), n)},
		{"Top Staff (Manga Works)", TopN(&m.Staff, n)},
		Closing(r.Year),
	}
}

// Closing returns the fixed final section for year.
func Closing(year int) Section {
	return Section{Title: "Wrapped", Value: fmt.Sprintf("✨ %d Complete ✨", year)}
}

// Aggregate builds the display sections for anime and manga completed in year.
func Aggregate(anime, manga []Entry, year int) []Section {
	return Build(anime, manga, year).Sections()
}
