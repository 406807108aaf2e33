package pipeline

import (
	"time"

	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/ticks"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Layout is the computed geometry of one chart. It round-trips through
// JSON for caching.
type Layout struct {
	ViewMode task.ViewMode   `json:"view_mode"`
	Ticks    []time.Time     `json:"ticks"`
	Header   calendar.Header `json:"header"`
	Chart    chart.Chart     `json:"chart"`
}

// Width returns the chart width in pixels.
func (l Layout) Width() float64 { return l.Header.Width }

// GenerateLayout computes ticks, header and chart for snap. An empty
// snapshot gets a range around the current day.
func GenerateLayout(snap task.Snapshot, opts Options) (Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Layout{}, err
	}
	mode := opts.Mode()
	loc := opts.Location()
	th := opts.Theme()

	start, end := snap.Bounds()
	if snap.Len() == 0 {
		start = opts.Now().In(loc)
		end = start
	}
	tk := ticks.Generate(start.In(loc), end.In(loc), mode, opts.PreSteps)

	header := calendar.Layout(tk, calendar.Config{
		ViewMode:     mode,
		ColumnWidth:  opts.ColumnWidth,
		HeaderHeight: opts.HeaderHeight,
		Locale:       opts.Locale,
		RTL:          opts.RTL,
		FitLabels:    opts.FitLabels,
		Formatter:    opts.Formatter.DateFormatter(opts.Formatters),
		Formatters:   opts.Formatters,
		TodayColor:   th.TodayHeader,
		Now:          opts.Now,
		FontSize:     styles.ParseFontSize(th.FontSize),
	})
	c := chart.Build(snap, tk, chart.Config{
		ColumnWidth: opts.ColumnWidth,
		RowHeight:   opts.RowHeight,
		BarFill:     opts.BarFill,
		RTL:         opts.RTL,
		TodayColor:  th.Today,
		Now:         opts.Now,
	})

	return Layout{ViewMode: mode, Ticks: tk, Header: header, Chart: c}, nil
}
