package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/pkg/buildinfo"
	"github.com/matzehuels/stackgantt/pkg/cache"
	"github.com/matzehuels/stackgantt/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stackgantt"
)

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
		Use:          appName,
		Short:        "Stackgantt renders task sets as Gantt charts",
		Long:         `Stackgantt lays out task sets on a calendar timeline and renders them as Gantt charts or dependency graphs. It can also serve a task set over HTTP and preview it in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags select the artifact cache backend.
type cacheFlags struct {
	noCache   bool
	redisAddr string
	scope     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "", "cache artifacts in Redis at host:port instead of on disk")
	cmd.Flags().StringVar(&f.scope, "cache-scope", "", "prefix for cache keys when several projects share one Redis")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, newKeyer(f), c.Logger), nil
}

// newKeyer returns nil (the default keyer) unless a scope is set.
func newKeyer(f cacheFlags) cache.Keyer {
	if f.scope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, f.scope+":")
}

func newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: f.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", f.redisAddr, err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory (~/.cache/stackgantt/ on Linux,
// or $XDG_CACHE_HOME/stackgantt/ when set).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags binds the chart options shared by render, layout, serve and
// preview. Flags override values read from --config.
type chartFlags struct {
	config  string
	formats string
	opts    pipeline.Options
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "options file (TOML)")
	fl.StringVarP(&f.opts.ViewMode, "view", "v", "", "view mode: Hour, Quarter Day, Half Day, Day (default), Week, Month, QuarterYear, Year")
	fl.StringVarP(&f.opts.Locale, "locale", "l", "", "BCP 47 locale for header labels (default en-US)")
	fl.StringVar(&f.opts.Timezone, "timezone", "", "IANA time zone for dates without an offset (default UTC)")
	fl.BoolVar(&f.opts.RTL, "rtl", false, "lay the timeline out right to left")
	fl.BoolVar(&f.opts.FitLabels, "fit-labels", false, "shorten header labels that overflow their span")
	fl.Float64Var(&f.opts.ColumnWidth, "column-width", 0, "width of one timeline column")
	fl.Float64Var(&f.opts.RowHeight, "row-height", 0, "height of one task row")
	fl.Float64Var(&f.opts.HeaderHeight, "header-height", 0, "height of the calendar header")
	fl.IntVar(&f.opts.PreSteps, "pre-steps", 0, "columns to show before the first task")
	fl.StringVar(&f.opts.FontFamily, "font-family", "", "font family")
	fl.StringVar(&f.opts.FontSize, "font-size", "", "font size, e.g. 14px")
	fl.BoolVar(&f.opts.HideToday, "hide-today", false, "do not highlight the current date")
	_ = cmd.RegisterFlagCompletionFunc("view", completeViewModes)
}

// registerRender adds the flags that only affect rendered artifacts.
func (f *chartFlags) registerRender(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png; dot for --type deps (comma-separated)")
	fl.StringVarP(&f.opts.VizType, "type", "t", "", "visualization type: gantt (default), deps")
	fl.BoolVar(&f.opts.TaskList, "task-list", false, "draw the task table beside the chart")
	fl.StringVar(&f.opts.ListCellWidth, "list-cell-width", "", "width of a task table column, e.g. 155px")
	fl.Float64Var(&f.opts.GanttHeight, "gantt-height", 0, "clip the task area to this height")
	fl.StringVar(&f.opts.Selected, "selected", "", "id of the task drawn as selected")
	fl.Float64Var(&f.opts.Scale, "scale", 0, "PNG scale factor")
	fl.BoolVar(&f.opts.Detailed, "detailed", false, "show dates and progress in dependency graphs")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "bypass cached artifacts")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// options merges the options file with flag values.
func (f *chartFlags) options(logger *log.Logger) (pipeline.Options, error) {
	flags := f.opts
	if f.formats != "" {
		flags.Formats = parseFormats(f.formats)
	}
	flags.Logger = logger

	var opts pipeline.Options
	if f.config != "" {
		fromFile, err := pipeline.LoadOptionsFile(f.config)
		if err != nil {
			return opts, err
		}
		opts = fromFile
	}
	opts = opts.Merge(flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
