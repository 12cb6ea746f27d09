// Package wrapped aggregates a user's yearly list history into summary sections.
//
// The package is pure: it takes already-fetched list entries and produces an
// ordered slice of [Section] values (title + pre-formatted text) ready for
// pagination. Nothing in here performs I/O or fails; missing or malformed
// fields degrade to defaults (0, "Unknown", empty sets).
//
// # Pipeline Position
//
//	integrations/anilist ──► wrapped.Aggregate ──► render/layout.Paginate
//
// # Usage
//
//	sections := wrapped.Aggregate(anime, manga, wrapped.DefaultYear)
//	for _, s := range sections {
//	    fmt.Printf("%s:\n%s\n", s.Title, s.Value)
//	}
//
// # Rankings
//
// Frequency tallies use [Counter], which remembers first-seen order so that
// [TopN] has a deterministic tie-break: equal counts keep the order in which
// the names were first encountered.
package wrapped
