package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wrapped/pkg/pipeline"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	year    int
	output  string
	report  string
	refresh bool
	noCache bool
}

// generateCommand creates the one-shot export command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOptions{year: pipeline.DefaultYear, output: "."}

	cmd := &cobra.Command{
		Use:   "generate <username>",
		Short: "Fetch a user's lists and export every page as PNG",
		Long: `Fetch the AniList anime and manga lists of <username>, summarize the titles
completed in the chosen year and write one PNG per page into the output
directory, named anilist-wrapped-<year>-page<N>.png.`,
		Example: `  wrapped generate Josh
  wrapped generate Josh --year 2024 -o out/ --json out/report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyIntConfig(cmd, "year", &opts.year, c.cfg.Year)
			applyStringConfig(cmd, "output", &opts.output, c.cfg.Output)
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.year, "year", "y", opts.year, "completion year to summarize")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "directory for exported pages")
	cmd.Flags().StringVar(&opts.report, "json", "", "also write a JSON report to this path")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, user string, opts generateOptions) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)

	runner, closeCache, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := fetch(ctx, runner, pipeline.Options{
		User:    user,
		Year:    opts.year,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	printStats(res.Stats, res.PageCount(), res.Placeholder)
	if res.Placeholder {
		printWarning("No titles completed in %d", res.Year)
	} else {
		printSummary(res.Report.Summary)
	}

	prog := newProgress(logger)
	paths, err := runner.ExportAll(ctx, res, opts.output)
	if err != nil {
		return friendly(err)
	}
	prog.done(fmt.Sprintf("Exported %d pages", len(paths)))

	printNewline()
	printSuccess("Wrote %d pages", len(paths))
	for _, p := range paths {
		printFile(p)
	}

	if opts.report != "" {
		if err := os.MkdirAll(filepath.Dir(opts.report), 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
		if err := runner.WriteReport(res, opts.report); err != nil {
			return err
		}
		printFile(opts.report)
	}

	printNewline()
	printNextStep("Browse the pages", fmt.Sprintf("%s preview %s --year %d", appName, res.User, res.Year))
	return nil
}

// printSummary prints the headline totals of a report.
func printSummary(s wrapped.Summary) {
	printKeyValue("Anime", StyleNumber.Render(strconv.Itoa(s.AnimeCompleted)))
	printKeyValue("Episodes", StyleNumber.Render(strconv.Itoa(s.EpisodesWatched)))
	printKeyValue("Hours", StyleNumber.Render(strconv.Itoa(s.HoursWatched)))
	printKeyValue("Manga", StyleNumber.Render(strconv.Itoa(s.MangaCompleted)))
	printKeyValue("Chapters", StyleNumber.Render(strconv.Itoa(s.ChaptersRead)))
}
