package pipeline

import (
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

// LoadOptionsFile reads pipeline options from a TOML file. Unknown keys
// are rejected so typos do not pass silently.
//
//	view_mode = "Week"
//	locale = "de-DE"
//	task_list = true
//
//	[colors]
//	bar = "#4a90d9"
//
//	[formatter]
//	week = "KW {week}"
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read options %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// Merge copies every non-zero field of override onto o. The CLI uses it
// to layer flags over an options file.
func (o Options) Merge(override Options) Options {
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setNum := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setStr(&o.ViewMode, override.ViewMode)
	setStr(&o.Locale, override.Locale)
	setStr(&o.Timezone, override.Timezone)
	setStr(&o.VizType, override.VizType)
	setStr(&o.FontFamily, override.FontFamily)
	setStr(&o.FontSize, override.FontSize)
	setStr(&o.ListCellWidth, override.ListCellWidth)
	setStr(&o.Selected, override.Selected)
	setNum(&o.ColumnWidth, override.ColumnWidth)
	setNum(&o.RowHeight, override.RowHeight)
	setNum(&o.HeaderHeight, override.HeaderHeight)
	setNum(&o.BarFill, override.BarFill)
	setNum(&o.GanttHeight, override.GanttHeight)
	setNum(&o.Scale, override.Scale)
	if override.PreSteps != 0 {
		o.PreSteps = override.PreSteps
	}
	if len(override.Formats) > 0 {
		o.Formats = override.Formats
	}
	o.Colors = o.Colors.Overlay(override.Colors)
	if !override.Formatter.IsZero() {
		o.Formatter = override.Formatter
	}
	o.RTL = o.RTL || override.RTL
	o.FitLabels = o.FitLabels || override.FitLabels
	o.TaskList = o.TaskList || override.TaskList
	o.Detailed = o.Detailed || override.Detailed
	o.HideToday = o.HideToday || override.HideToday
	o.Refresh = o.Refresh || override.Refresh
	if override.Logger != nil {
		o.Logger = override.Logger
	}
	if override.Now != nil {
		o.Now = override.Now
	}
	if override.Formatters != nil {
		o.Formatters = override.Formatters
	}
	o.validated = false
	return o
}
