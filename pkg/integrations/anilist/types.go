package anilist

import "github.com/matzehuels/wrapped/pkg/wrapped"

// Query requests both list collections of a user in one round trip.
const Query = `query ($name: String) {
  anime: MediaListCollection(userName: $name, type: ANIME) {
    lists { entries {
      completedAt { year }
      progress
      score
      media {
        title { romaji }
        episodes
        duration
        genres
        tags { name }
        studios { edges { node { name } } }
        staff { edges { node { name { full } } } }
      }
    } }
  }
  manga: MediaListCollection(userName: $name, type: MANGA) {
    lists { entries {
      completedAt { year }
      progress
      score
      media {
        title { romaji }
        chapters
        genres
        tags { name }
        staff { edges { node { name { full } } } }
      }
    } }
  }
}`

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data   *responseData `json:"data"`
	Errors []gqlError    `json:"errors,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

type responseData struct {
	Anime *collection `json:"anime"`
	Manga *collection `json:"manga"`
}

type collection struct {
	Lists []struct {
		Entries []entry `json:"entries"`
	} `json:"lists"`
}

type entry struct {
	CompletedAt *struct {
		Year *int `json:"year"`
	} `json:"completedAt"`
	Progress *int     `json:"progress"`
	Score    *float64 `json:"score"`
	Media    *media   `json:"media"`
}

type media struct {
	Title *struct {
		Romaji string `json:"romaji"`
	} `json:"title"`
	Episodes *int     `json:"episodes"`
	Chapters *int     `json:"chapters"`
	Duration *int     `json:"duration"`
	Genres   []string `json:"genres"`
	Tags     []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Studios *struct {
		Edges []struct {
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"studios"`
	Staff *struct {
		Edges []struct {
			Node struct {
				Name struct {
					Full string `json:"full"`
				} `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"staff"`
}

// Lists holds a user's flattened anime and manga entries in upstream order.
type Lists struct {
	Anime []wrapped.Entry `json:"anime"`
	Manga []wrapped.Entry `json:"manga"`
}

// Len returns the total number of entries.
func (l *Lists) Len() int { return len(l.Anime) + len(l.Manga) }

// flatten concatenates every list's entries, converting each one.
func (c *collection) flatten(kind wrapped.Kind) []wrapped.Entry {
	if c == nil {
		return nil
	}
	var out []wrapped.Entry
	for _, l := range c.Lists {
		for _, e := range l.Entries {
			out = append(out, e.convert(kind))
		}
	}
	return out
}

func (e entry) convert(kind wrapped.Kind) wrapped.Entry {
	out := wrapped.Entry{
		Progress: e.Progress,
		Score:    e.Score,
	}
	if e.CompletedAt != nil {
		out.CompletionYear = e.CompletedAt.Year
	}
	if e.Media == nil {
		return out
	}
	m := e.Media
	if m.Title != nil {
		out.Media.Title = m.Title.Romaji
	}
	if kind == wrapped.KindAnime {
		out.Media.Units = m.Episodes
		out.Media.Duration = m.Duration
	} else {
		out.Media.Units = m.Chapters
	}
	out.Media.Genres = m.Genres
	for _, t := range m.Tags {
		out.Media.Tags = append(out.Media.Tags, t.Name)
	}
	if m.Studios != nil {
		for _, s := range m.Studios.Edges {
			out.Media.Studios = append(out.Media.Studios, s.Node.Name)
		}
	}
	if m.Staff != nil {
		for _, s := range m.Staff.Edges {
			out.Media.Staff = append(out.Media.Staff, s.Node.Name.Full)
		}
	}
	return out
}
