package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wrapped/internal/config"
	"github.com/matzehuels/wrapped/pkg/buildinfo"
	"github.com/matzehuels/wrapped/pkg/cache"
	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/fonts"
	"github.com/matzehuels/wrapped/pkg/integrations/anilist"
	"github.com/matzehuels/wrapped/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "wrapped"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	cfg        config.FileConfig
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Wrapped turns an AniList year into shareable story pages",
		Long:          `Wrapped fetches a user's AniList anime and manga lists, summarizes the titles completed in one year and renders the summary as 1080x1920 PNG pages.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wrapped/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default path.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned close
// function releases the response cache and must always be called.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, func() error, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}

	var opts []anilist.Option
	if c.cfg.AniList.Endpoint != nil {
		if err := werrors.ValidateURL(*c.cfg.AniList.Endpoint); err != nil {
			store.Close()
			return nil, nil, err
		}
		opts = append(opts, anilist.WithEndpoint(*c.cfg.AniList.Endpoint))
	}
	client := anilist.NewClient(store, c.cfg.CacheTTL(cache.DefaultTTL), opts...)

	m, err := fonts.NewMeasurer()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return pipeline.NewRunner(client, m, c.Logger), store.Close, nil
}

// fetch runs the pipeline behind a fetch spinner. A failure is shown on the
// spinner line and returned already reported. A cancellation returns the
// context's error so main exits with 130.
func fetch(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newFetchSpinner(ctx, opts.User)
	spinner.Start()
	res, err := runner.Generate(ctx, opts)
	if err == nil {
		spinner.StopWithSuccess(fmt.Sprintf("Fetched lists for @%s", res.User))
		return res, nil
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return nil, ctx.Err()
	}
	spinner.StopWithError(werrors.UserMessage(err))
	return nil, reportedError{userError{err}}
}

// newCache picks the response cache: none when disabled, Redis when a URL
// is configured, and the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || (c.cfg.Cache.Disabled != nil && *c.cfg.Cache.Disabled) {
		c.Logger.Debug("response cache disabled")
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.RedisURL != nil {
		rc, err := cache.NewRedisCache(ctx, *c.cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	fc, err := cache.NewFileCache("")
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "error", err)
		return cache.NewNullCache(), nil
	}
	c.Logger.Debug("using file cache", "dir", fc.Dir())
	return fc, nil
}

// =============================================================================
// Config Helpers
// =============================================================================

// applyStringConfig copies a config value into target unless the flag was set.
func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyIntConfig copies a config value into target unless the flag was set.
func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// =============================================================================
// Errors
// =============================================================================

// userError presents err by its user-facing message while keeping the chain
// intact for errors.Is checks in main.
type userError struct{ err error }

func (e userError) Error() string { return werrors.UserMessage(e.err) }
func (e userError) Unwrap() error { return e.err }

// friendly wraps err for display unless it is a cancellation.
func friendly(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return userError{err}
}

// reportedError is a userError the command has already printed.
type reportedError struct{ userError }

// IsReported reports whether err was already shown to the user, in which
// case main only sets the exit code.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
