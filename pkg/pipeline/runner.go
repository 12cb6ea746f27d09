package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/observability"
	"github.com/matzehuels/wrapped/pkg/render/canvas"
	"github.com/matzehuels/wrapped/pkg/render/layout"
	"github.com/matzehuels/wrapped/pkg/render/sink"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// Fetcher retrieves a user's complete anime and manga lists.
// If refresh is true, cached responses must be bypassed.
type Fetcher interface {
	Fetch(ctx context.Context, user string, refresh bool) (anime, manga []wrapped.Entry, err error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, user string, refresh bool) ([]wrapped.Entry, []wrapped.Entry, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, user string, refresh bool) ([]wrapped.Entry, []wrapped.Entry, error) {
	return f(ctx, user, refresh)
}

// Runner encapsulates pipeline execution.
//
// The Runner is stateless apart from its collaborators; it doesn't store
// results. Multiple goroutines can safely use the same Runner as long as
// the Fetcher and Measurer are safe for concurrent use.
type Runner struct {
	Fetcher  Fetcher
	Measurer layout.Measurer
	Layout   layout.Config
	Logger   *log.Logger
}

// NewRunner creates a runner with the default page geometry.
// If m is nil, a [layout.Monospace] measurer is used.
func NewRunner(f Fetcher, m layout.Measurer, logger *log.Logger) *Runner {
	if m == nil {
		m = layout.Monospace{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher:  f,
		Measurer: m,
		Layout:   layout.DefaultConfig(),
		Logger:   logger,
	}
}

// Generate runs fetch → aggregate → paginate and returns a new Result.
//
// Only validation and the fetch can fail. Fetch failures always carry
// [werrors.ErrCodeFetch] (or a rate-limit error) so shells can show the
// fixed failure message.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	res := &Result{
		ID:        uuid.NewString(),
		User:      opts.User,
		Year:      opts.Year,
		CreatedAt: time.Now(),
	}

	// Stage 1: Fetch
	observability.Pipeline().OnFetchStart(ctx, opts.User)
	fetchStart := time.Now()
	anime, manga, err := r.Fetcher.Fetch(ctx, opts.User, opts.Refresh)
	res.Stats.FetchTime = time.Since(fetchStart)
	observability.Pipeline().OnFetchComplete(ctx, opts.User, len(anime)+len(manga), res.Stats.FetchTime, err)
	if err != nil {
		logger.Debug("fetch failed", "user", opts.User, "error", err)
		if werrors.IsFetch(err) {
			return nil, err
		}
		return nil, werrors.Wrap(werrors.ErrCodeFetch, err, "fetch lists for %s", opts.User)
	}
	res.Stats.AnimeEntries = len(anime)
	res.Stats.MangaEntries = len(manga)

	logger.Info("fetched lists",
		"user", opts.User,
		"anime", len(anime),
		"manga", len(manga),
		"duration", res.Stats.FetchTime)

	// Stage 2: Aggregate
	aggStart := time.Now()
	res.Report = wrapped.Build(anime, manga, opts.Year)
	res.Sections = res.Report.Sections()
	res.Stats.AggregateTime = time.Since(aggStart)

	logger.Info("aggregated year",
		"year", opts.Year,
		"anime_completed", res.Report.Summary.AnimeCompleted,
		"manga_completed", res.Report.Summary.MangaCompleted,
		"duration", res.Stats.AggregateTime)

	// Stage 3: Paginate
	pagStart := time.Now()
	res.Pages = layout.Paginate(res.Sections, r.Measurer, r.Layout)
	if len(res.Pages) == 0 {
		res.Pages = layout.Placeholder(opts.Year)
		res.Placeholder = true
	}
	res.Stats.PaginateTime = time.Since(pagStart)
	observability.Pipeline().OnPaginateComplete(ctx, len(res.Sections), len(res.Pages), res.Stats.PaginateTime)

	logger.Info("paginated sections",
		"sections", len(res.Sections),
		"pages", len(res.Pages),
		"duration", res.Stats.PaginateTime)

	return res, nil
}

// RenderPage draws page i of res.
func (r *Runner) RenderPage(res *Result, i int) (image.Image, error) {
	return canvas.Draw(res.User, res.Pages, i,
		canvas.WithYear(res.Year),
		canvas.WithConfig(r.Layout),
	)
}

// RenderPNG draws page i of res and encodes it as PNG.
func (r *Runner) RenderPNG(res *Result, i int) ([]byte, error) {
	img, err := r.RenderPage(res, i)
	if err != nil {
		return nil, err
	}
	return sink.RenderPNG(img)
}

// ExportAll writes every page of res into dir as
// anilist-wrapped-<year>-page<N>.png and returns the paths in page order.
// Pages are rendered concurrently; each draw owns its surface and faces.
func (r *Runner) ExportAll(ctx context.Context, res *Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	n := len(res.Pages)
	paths := make([]string, n)
	observability.Pipeline().OnRenderStart(ctx, n)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := r.RenderPNG(res, i)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}
			path := filepath.Join(dir, sink.PageFilename(res.Year, i+1))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write page %d: %w", i+1, err)
			}
			paths[i] = path
			return nil
		})
	}
	err := g.Wait()
	observability.Pipeline().OnRenderComplete(ctx, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("exported pages", "pages", n, "dir", dir, "duration", time.Since(start))
	return paths, nil
}

// WriteReport writes the JSON report for res to path.
func (r *Runner) WriteReport(res *Result, path string) error {
	data, err := sink.RenderJSON(res.Report,
		sink.WithJSONUser(res.User),
		sink.WithJSONSections(res.Sections),
		sink.WithJSONPages(res.Pages),
	)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
