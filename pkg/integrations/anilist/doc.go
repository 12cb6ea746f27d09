// Package anilist fetches a user's anime and manga lists from the AniList
// GraphQL API.
//
// A single query requests both list collections for a username. Each list
// entry is converted into a [wrapped.Entry]; fields AniList leaves null stay
// absent so the aggregator can apply its own defaults.
//
//	client := anilist.NewClient(c, time.Hour)
//	lists, err := client.FetchLists(ctx, "Josh", false)
//
// Every failure (transport, status code, malformed body or a response without
// a data payload) is reported as an [errors.ErrCodeFetch] error.
//
// [wrapped.Entry]: github.com/matzehuels/wrapped/pkg/wrapped.Entry
// [errors.ErrCodeFetch]: github.com/matzehuels/wrapped/pkg/errors.ErrCodeFetch
package anilist
