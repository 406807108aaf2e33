// Package chart computes the body geometry of a Gantt chart: one bar per
// visible task, dependency arrows between bars, and the background grid.
//
// Geometry is derived from the same tick sequence and column width as the
// calendar header, so a bar starting on a tick's date starts exactly on
// that tick's column. Dates between ticks are placed proportionally within
// the column.
package chart

import (
	"sort"
	"time"

	"github.com/matzehuels/stackgantt/pkg/task"
)

// Layout defaults.
const (
	DefaultColumnWidth = 60.0
	DefaultRowHeight   = 50.0
	DefaultBarFill     = 60.0
	DefaultArrowIndent = 20.0

	milestoneRotation = 1.414
)

// Config controls chart geometry.
type Config struct {
	ColumnWidth float64
	RowHeight   float64
	BarFill     float64 // Bar height as a percentage of RowHeight
	ArrowIndent float64
	RTL         bool
	TodayColor  string
	Now         func() time.Time
}

func (c Config) withDefaults() Config {
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = DefaultColumnWidth
	}
	if c.RowHeight <= 0 {
		c.RowHeight = DefaultRowHeight
	}
	if c.BarFill <= 0 || c.BarFill > 100 {
		c.BarFill = DefaultBarFill
	}
	if c.ArrowIndent <= 0 {
		c.ArrowIndent = DefaultArrowIndent
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// BarHeight returns the bar height for cfg.
func (c Config) BarHeight() float64 {
	c = c.withDefaults()
	return c.RowHeight * c.BarFill / 100
}

// Chart is the computed chart body.
type Chart struct {
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	RowHeight float64     `json:"row_height"`
	BarHeight float64     `json:"bar_height"`
	Bars      []Bar       `json:"bars"`
	Arrows    []Arrow     `json:"arrows"`
	Grid      Grid        `json:"grid"`
	Ticks     []time.Time `json:"ticks"`
}

// Bar is the geometry of one task row.
type Bar struct {
	TaskID        string          `json:"task_id"`
	Name          string          `json:"name"`
	Type          task.Type       `json:"type"`
	Index         int             `json:"index"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	X1            float64         `json:"x1"`
	X2            float64         `json:"x2"`
	Y             float64         `json:"y"`
	Height        float64         `json:"height"`
	Progress      float64         `json:"progress"`
	ProgressX     float64         `json:"progress_x"`
	ProgressWidth float64         `json:"progress_width"`
	Project       string          `json:"project,omitempty"`
	Dependencies  []string        `json:"dependencies,omitempty"`
	HideChildren  bool            `json:"hide_children,omitempty"`
	IsDisabled    bool            `json:"is_disabled,omitempty"`
	Styles        *task.BarStyles `json:"styles,omitempty"`
}

// Width returns X2 - X1.
func (b Bar) Width() float64 { return b.X2 - b.X1 }

// IsMilestone reports whether b is drawn as a diamond.
func (b Bar) IsMilestone() bool { return b.Type == task.TypeMilestone }

// Build lays out the visible tasks of snap against ticks.
func Build(snap task.Snapshot, ticks []time.Time, cfg Config) Chart {
	cfg = cfg.withDefaults()
	barHeight := cfg.RowHeight * cfg.BarFill / 100
	visible := snap.Visible()

	c := Chart{
		Width:     cfg.ColumnWidth * float64(len(ticks)),
		Height:    cfg.RowHeight * float64(len(visible)),
		RowHeight: cfg.RowHeight,
		BarHeight: barHeight,
		Bars:      make([]Bar, 0, len(visible)),
		Arrows:    []Arrow{},
		Ticks:     ticks,
	}

	for i, t := range visible {
		c.Bars = append(c.Bars, buildBar(i, t, ticks, barHeight, cfg))
	}
	c.Arrows = buildArrows(c.Bars, barHeight, cfg)
	c.Grid = buildGrid(ticks, len(visible), cfg)
	return c
}

func buildBar(index int, t task.Task, ticks []time.Time, barHeight float64, cfg Config) Bar {
	b := Bar{
		TaskID:       t.ID,
		Name:         t.Name,
		Type:         t.Type,
		Index:        index,
		Start:        t.Start,
		End:          t.End,
		Y:            float64(index)*cfg.RowHeight + (cfg.RowHeight-barHeight)/2,
		Height:       barHeight,
		Progress:     t.Progress,
		Project:      t.Project,
		Dependencies: t.Dependencies,
		HideChildren: t.HideChildren,
		IsDisabled:   t.IsDisabled,
		Styles:       t.Styles,
	}
	if b.Type == "" {
		b.Type = task.TypeTask
	}

	if t.IsMilestone() {
		x := xFor(t.Start, ticks, cfg)
		size := barHeight / milestoneRotation
		b.X1, b.X2 = x-size/2, x+size/2
		b.Height = size
		return b
	}

	b.X1, b.X2 = xFor(t.Start, ticks, cfg), xFor(t.End, ticks, cfg)
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	b.ProgressWidth = (b.X2 - b.X1) * t.Progress / 100
	b.ProgressX = b.X1
	if cfg.RTL {
		b.ProgressX = b.X2 - b.ProgressWidth
	}
	return b
}

func xFor(t time.Time, ticks []time.Time, cfg Config) float64 {
	x := XForDate(t, ticks, cfg.ColumnWidth)
	if cfg.RTL {
		return cfg.ColumnWidth*float64(len(ticks)) - x
	}
	return x
}

// XForDate returns the left-to-right x coordinate of t: the column of the
// last tick at or before t plus the elapsed fraction of that column's
// interval. Dates outside the ticks clamp to the chart edges.
func XForDate(t time.Time, ticks []time.Time, columnWidth float64) float64 {
	n := len(ticks)
	if n == 0 || !t.After(ticks[0]) {
		return 0
	}
	// First tick strictly after t.
	j := sort.Search(n, func(k int) bool { return ticks[k].After(t) })
	i := j - 1
	var interval time.Duration
	switch {
	case j < n:
		interval = ticks[j].Sub(ticks[i])
	case n > 1:
		interval = ticks[n-1].Sub(ticks[n-2])
	default:
		return columnWidth
	}
	frac := float64(t.Sub(ticks[i])) / float64(interval)
	if frac > 1 {
		frac = 1
	}
	return columnWidth * (float64(i) + frac)
}
