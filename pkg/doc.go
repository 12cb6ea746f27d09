// Package pkg provides the core libraries for AniList Wrapped.
//
// # Overview
//
// Wrapped turns a user's AniList anime and manga lists into a year summary
// rendered as story-format pages. The pkg directory is organized by stage:
//
//  1. [integrations] - The AniList GraphQL client and shared HTTP plumbing
//  2. [wrapped] - Entries, tallies, rankings and display sections
//  3. [render] - Pagination, page painting and output encoders
//  4. [pipeline] - Orchestration (fetch → aggregate → paginate → render)
//  5. [cache] - Response caches (file, Redis, null)
//
// # Architecture
//
// The data flow through Wrapped:
//
//	AniList GraphQL API
//	         ↓
//	    [integrations/anilist] (fetch both lists, cached)
//	         ↓
//	    [wrapped] (filter by year, tally, rank → 17 sections)
//	         ↓
//	    [render/layout] (wrap + pack into 1080×1920 pages)
//	         ↓
//	    [render/canvas] + [render/sink] (PNG pages, JSON report)
//
// # Quick Start
//
//	client := anilist.NewClient(cache.NewNullCache(), cache.DefaultTTL)
//	runner := pipeline.NewRunner(client, nil, logger)
//
//	res, err := runner.Generate(ctx, pipeline.Options{User: "Josh"})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	paths, err := runner.ExportAll(ctx, res, "out/")
//
// # Supporting Packages
//
//   - [errors]: Coded errors and input validation
//   - [fonts]: Embedded Go fonts for measuring and drawing
//   - [observability]: Hook interfaces for metrics and tracing
//   - [buildinfo]: Version information set via ldflags
//
// [integrations]: github.com/matzehuels/wrapped/pkg/integrations
// [integrations/anilist]: github.com/matzehuels/wrapped/pkg/integrations/anilist
// [wrapped]: github.com/matzehuels/wrapped/pkg/wrapped
// [render]: github.com/matzehuels/wrapped/pkg/render
// [render/layout]: github.com/matzehuels/wrapped/pkg/render/layout
// [render/canvas]: github.com/matzehuels/wrapped/pkg/render/canvas
// [render/sink]: github.com/matzehuels/wrapped/pkg/render/sink
// [pipeline]: github.com/matzehuels/wrapped/pkg/pipeline
// [cache]: github.com/matzehuels/wrapped/pkg/cache
// [errors]: github.com/matzehuels/wrapped/pkg/errors
// [fonts]: github.com/matzehuels/wrapped/pkg/fonts
// [observability]: github.com/matzehuels/wrapped/pkg/observability
// [buildinfo]: github.com/matzehuels/wrapped/pkg/buildinfo
package pkg
