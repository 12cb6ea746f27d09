// Package pipeline provides the core Wrapped pipeline.
//
// This package implements the complete fetch → aggregate → paginate → render
// pipeline used by the CLI, the terminal preview and the HTTP server. By
// centralizing this logic, every entry point produces the same pages for the
// same list.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Retrieve the user's anime and manga lists (the only stage that
//     can fail)
//  2. Aggregate: Reduce entries completed in the target year to display
//     sections
//  3. Paginate: Wrap sections to the canvas width and pack them into pages
//  4. Render: Draw individual pages on demand and encode them as PNG
//
// Stages 1 to 3 run in [Runner.Generate] and produce an immutable [Result].
// Rendering is lazy: [Runner.RenderPage] draws one page and
// [Runner.ExportAll] writes every page in parallel.
//
// # Usage
//
//	runner := pipeline.NewRunner(anilistClient, measurer, logger)
//	res, err := runner.Generate(ctx, pipeline.Options{User: "Josh"})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	    return
//	}
//	paths, err := runner.ExportAll(ctx, res, "out/")
//
// Navigation between pages is pure:
//
//	i = pipeline.Next(res.Pages, i)
//	i = pipeline.Prev(res.Pages, i)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/render/layout"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultYear is the completion year summarized by default.
	DefaultYear = wrapped.DefaultYear

	// MinYear is the earliest accepted year. AniList launched in 2015 but
	// imported lists carry older completion dates.
	MinYear = 1990
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	User    string `json:"username"`
	Year    int    `json:"year,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // bypass the response cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults normalizes the username, checks required fields and
// applies defaults. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.User = werrors.NormalizeUsername(o.User)
	if err := werrors.ValidateUsername(o.User); err != nil {
		return err
	}
	if o.Year == 0 {
		o.Year = DefaultYear
	}
	if o.Year < MinYear || o.Year > time.Now().Year()+1 {
		return werrors.New(werrors.ErrCodeInvalidInput, "invalid year: %d", o.Year)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the immutable output of [Runner.Generate]. Callers must not
// modify it; concurrent readers are safe.
type Result struct {
	// ID uniquely identifies this result (used by the HTTP server).
	ID string `json:"id"`

	User string `json:"user"`
	Year int    `json:"year"`

	// Report holds the aggregated totals and rankings.
	Report *wrapped.Report `json:"-"`

	// Sections are the display sections in fixed order.
	Sections []wrapped.Section `json:"sections"`

	// Pages is never empty: when pagination yields nothing the single
	// placeholder page is substituted and Placeholder is set.
	Pages       []layout.Page `json:"-"`
	Placeholder bool          `json:"placeholder,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Stats     Stats     `json:"stats"`
}

// PageCount returns the number of pages.
func (r *Result) PageCount() int { return len(r.Pages) }

// Stats contains pipeline execution statistics.
type Stats struct {
	AnimeEntries  int           `json:"anime_entries"`
	MangaEntries  int           `json:"manga_entries"`
	FetchTime     time.Duration `json:"fetch_time"`
	AggregateTime time.Duration `json:"aggregate_time"`
	PaginateTime  time.Duration `json:"paginate_time"`
}

// =============================================================================
// Navigation
// =============================================================================

// Next returns the index after i, wrapping to the first page.
// With no pages it returns 0.
func Next(pages []layout.Page, i int) int {
	n := len(pages)
	if n == 0 {
		return 0
	}
	return ((i+1)%n + n) % n
}

// Prev returns the index before i, wrapping to the last page.
// With no pages it returns 0.
func Prev(pages []layout.Page, i int) int {
	n := len(pages)
	if n == 0 {
		return 0
	}
	return ((i-1)%n + n) % n
}
