// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a task set from a [source.Source] into a snapshot
//  2. Layout: generate ticks, then compute the calendar header and the
//     chart geometry
//  3. Render: write SVG, PNG, PDF or JSON for the gantt chart, or
//     SVG, PNG, PDF or DOT for the dependency graph
//
// Layouts and artifacts are cached under keys that hash the tasks and
// every option that changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	snap, err := runner.Load(ctx, local.New("tasks.yaml", nil))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, snap, pipeline.Options{
//	    ViewMode: "Week",
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// [source.Source]: github.com/matzehuels/stackgantt/pkg/source.Source
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/matzehuels/stackgantt/pkg/cache"
	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/sink"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/ticks"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	DefaultViewMode = task.ViewDay
	DefaultLocale   = "en-US"
	DefaultVizType  = VizGantt
	DefaultScale    = 2.0

	// TTLLayout bounds how long a computed layout is reused. Layout keys
	// also carry the current date, so the today highlight stays correct.
	TTLLayout = 24 * time.Hour
	// TTLArtifact bounds how long a rendered file is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Visualization types.
const (
	VizGantt = "gantt"
	VizDeps  = "deps"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the output formats per visualization type.
var ValidFormats = map[string][]string{
	VizGantt: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	VizDeps:  {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline. The toml
// tags define the options file read by [LoadOptionsFile].
type Options struct {
	// Layout options
	ViewMode     string  `toml:"view_mode" json:"view_mode,omitempty"`
	Locale       string  `toml:"locale" json:"locale,omitempty"`
	Timezone     string  `toml:"timezone" json:"timezone,omitempty"` // IANA name; empty means UTC
	RTL          bool    `toml:"rtl" json:"rtl,omitempty"`
	FitLabels    bool    `toml:"fit_labels" json:"fit_labels,omitempty"` // ellipsis-fit top header labels
	ColumnWidth  float64 `toml:"column_width" json:"column_width,omitempty"`
	RowHeight    float64 `toml:"row_height" json:"row_height,omitempty"`
	HeaderHeight float64 `toml:"header_height" json:"header_height,omitempty"`
	BarFill      float64 `toml:"bar_fill" json:"bar_fill,omitempty"`
	PreSteps     int     `toml:"pre_steps" json:"pre_steps,omitempty"`

	// Formatter replaces the built-in header labels.
	Formatter datefmt.LayoutFormatter `toml:"formatter" json:"formatter,omitempty"`

	// Render options
	VizType       string       `toml:"type" json:"type,omitempty"`
	Formats       []string     `toml:"formats" json:"formats,omitempty"`
	FontFamily    string       `toml:"font_family" json:"font_family,omitempty"`
	FontSize      string       `toml:"font_size" json:"font_size,omitempty"`
	TaskList      bool         `toml:"task_list" json:"task_list,omitempty"`
	ListCellWidth string       `toml:"list_cell_width" json:"list_cell_width,omitempty"`
	GanttHeight   float64      `toml:"gantt_height" json:"gantt_height,omitempty"`
	Selected      string       `toml:"selected" json:"selected,omitempty"`
	Scale         float64      `toml:"scale" json:"scale,omitempty"`
	Detailed      bool         `toml:"detailed" json:"detailed,omitempty"` // Dependency graph labels
	Colors        styles.Theme `toml:"colors" json:"colors,omitempty"`
	HideToday     bool         `toml:"hide_today" json:"hide_today,omitempty"`

	Refresh bool `toml:"-" json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger      `toml:"-" json:"-"`
	Now        func() time.Time `toml:"-" json:"-"`
	Formatters *datefmt.Cache   `toml:"-" json:"-"`

	location  *time.Location
	validated bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(vizType, format string) error {
	valid, ok := ValidFormats[vizType]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid type: %q (must be one of: gantt, deps)", vizType)
	}
	if !slices.Contains(valid, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid %s format: %q (must be one of: %s)", vizType, format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLocale checks that locale is a well-formed BCP 47 tag.
// Underscores are accepted as separators.
func ValidateLocale(locale string) error {
	if _, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLocale, err, "invalid locale %q", locale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.ViewMode == "" {
		o.ViewMode = string(DefaultViewMode)
	}
	mode, err := task.ParseViewMode(o.ViewMode)
	if err != nil {
		return err
	}
	o.ViewMode = string(mode)

	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if err := ValidateLocale(o.Locale); err != nil {
		return err
	}

	o.location = time.UTC
	if o.Timezone != "" {
		loc, err := time.LoadLocation(o.Timezone)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid timezone %q", o.Timezone)
		}
		o.location = loc
	}

	if o.ColumnWidth <= 0 {
		o.ColumnWidth = calendar.DefaultColumnWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = chart.DefaultRowHeight
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = calendar.DefaultHeaderHeight
	}
	if o.BarFill <= 0 || o.BarFill > 100 {
		o.BarFill = chart.DefaultBarFill
	}
	if o.PreSteps <= 0 {
		o.PreSteps = ticks.DefaultPreSteps
	}

	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if o.ListCellWidth == "" {
		o.ListCellWidth = "155px"
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	for name, c := range o.Colors.Colors() {
		if c == "" {
			continue
		}
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "colors.%s", name)
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Formatters == nil {
		o.Formatters = datefmt.Default()
	}

	o.validated = true
	return nil
}

// Mode returns the parsed view mode.
func (o *Options) Mode() task.ViewMode {
	mode, err := task.ParseViewMode(o.ViewMode)
	if err != nil {
		return DefaultViewMode
	}
	return mode
}

// Location returns the time zone the chart is laid out in.
func (o *Options) Location() *time.Location {
	if o.location == nil {
		return time.UTC
	}
	return o.location
}

// Theme merges the font options into the configured colors.
func (o *Options) Theme() styles.Theme {
	th := o.Colors
	if o.FontFamily != "" {
		th.FontFamily = o.FontFamily
	}
	if o.FontSize != "" {
		th.FontSize = o.FontSize
	}
	if o.HideToday {
		th.Today, th.TodayHeader = "", ""
	} else {
		d := styles.DefaultTheme()
		if th.Today == "" {
			th.Today = d.Today
		}
		if th.TodayHeader == "" {
			th.TodayHeader = d.TodayHeader
		}
	}
	return th.WithDefaults()
}

// IsDeps returns true if the dependency graph is requested.
func (o *Options) IsDeps() bool {
	return o.VizType == VizDeps
}

// today returns the current date in the chart's zone, or "" when no
// today highlight is drawn.
func (o *Options) today() string {
	th := o.Theme()
	if th.Today == "" && th.TodayHeader == "" {
		return ""
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return now().In(o.Location()).Format("2006-01-02")
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	th := o.Theme()
	return cache.LayoutKeyOpts{
		ViewMode:     o.ViewMode,
		Locale:       o.Locale,
		Timezone:     o.Timezone,
		RTL:          o.RTL,
		FitLabels:    o.FitLabels,
		ColumnWidth:  o.ColumnWidth,
		RowHeight:    o.RowHeight,
		HeaderHeight: o.HeaderHeight,
		BarFill:      o.BarFill,
		PreSteps:     o.PreSteps,
		Formatter:    cache.HashJSON(o.Formatter),
		Today:        o.today(),
		Style:        cache.HashJSON([]string{th.Today, th.TodayHeader, th.FontSize}),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:        format,
		Theme:         cache.HashJSON(o.Theme()),
		Selected:      o.Selected,
		TaskList:      o.TaskList,
		ListCellWidth: o.ListCellWidth,
		GanttHeight:   o.GanttHeight,
		Scale:         o.Scale,
	}
}

// GraphKeyOpts returns cache key options for the dependency graph.
func (o *Options) GraphKeyOpts(format string) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Format: format, Detailed: o.Detailed, LeftToRight: true}
}

// svgOptions translates render options for the gantt sink.
func (o *Options) svgOptions() []sink.SVGOption {
	opts := []sink.SVGOption{
		sink.WithTheme(o.Theme()),
		sink.WithLocale(o.Locale),
		sink.WithFormatters(o.Formatters),
	}
	if o.TaskList {
		opts = append(opts, sink.WithTaskList(o.ListCellWidth))
	}
	if o.GanttHeight > 0 {
		opts = append(opts, sink.WithGanttHeight(o.GanttHeight))
	}
	if o.Selected != "" {
		opts = append(opts, sink.WithSelected(o.Selected))
	}
	if o.RTL {
		opts = append(opts, sink.WithRTL())
	}
	return opts
}
