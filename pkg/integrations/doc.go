// Package integrations provides HTTP clients for the upstream list APIs.
//
// # Overview
//
// This package contains the shared JSON-over-HTTP [Client] used by API
// clients. Each upstream has its own subpackage:
//
//   - [anilist]: AniList GraphQL API (anime and manga lists)
//
// # Client Pattern
//
// Upstream clients embed [Client] and follow a consistent pattern:
//
//	c, err := cache.NewFileCache("")
//	client := anilist.NewClient(c, time.Hour)
//	anime, manga, err := client.FetchLists(ctx, "Josh", false)  // false = use cache
//
// Clients handle:
//   - JSON requests with default headers
//   - Response caching via [cache.Cache] with a configurable TTL
//   - Mapping status codes to sentinel errors ([ErrNotFound], [ErrNetwork])
//     and rate limiting to [errors.RateLimitedError]
//
// [anilist]: github.com/matzehuels/wrapped/pkg/integrations/anilist
// [cache.Cache]: github.com/matzehuels/wrapped/pkg/cache.Cache
// [errors.RateLimitedError]: github.com/matzehuels/wrapped/pkg/errors.RateLimitedError
package integrations
