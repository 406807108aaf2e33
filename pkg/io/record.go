package io

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/task"
)

type file struct {
	Tasks []record `json:"tasks" yaml:"tasks" toml:"tasks"`
}

type record struct {
	ID           string    `json:"id" yaml:"id" toml:"id"`
	Name         string    `json:"name" yaml:"name" toml:"name"`
	Start        dateField `json:"start" yaml:"start" toml:"start"`
	End          dateField `json:"end" yaml:"end" toml:"end"`
	Progress     float64   `json:"progress,omitempty" yaml:"progress,omitempty" toml:"progress,omitempty"`
	Type         string    `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Project      string    `json:"project,omitempty" yaml:"project,omitempty" toml:"project,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	HideChildren bool      `json:"hide_children,omitempty" yaml:"hide_children,omitempty" toml:"hide_children,omitempty"`
	IsDisabled   bool      `json:"is_disabled,omitempty" yaml:"is_disabled,omitempty" toml:"is_disabled,omitempty"`
	DisplayOrder int       `json:"display_order,omitempty" yaml:"display_order,omitempty" toml:"display_order,omitempty"`
	Styles       *styles   `json:"styles,omitempty" yaml:"styles,omitempty" toml:"styles,omitempty"`
}

type styles struct {
	Background         string `json:"background,omitempty" yaml:"background,omitempty" toml:"background,omitempty"`
	BackgroundSelected string `json:"background_selected,omitempty" yaml:"background_selected,omitempty" toml:"background_selected,omitempty"`
	Progress           string `json:"progress,omitempty" yaml:"progress,omitempty" toml:"progress,omitempty"`
	ProgressSelected   string `json:"progress_selected,omitempty" yaml:"progress_selected,omitempty" toml:"progress_selected,omitempty"`
}

// dateField holds a date as written in the file. Decoding keeps the text
// so zone-less values can be resolved in the caller's location.
type dateField string

const (
	dateOnly      = "2006-01-02"
	localDateTime = "2006-01-02T15:04:05"
)

func (d *dateField) UnmarshalYAML(n *yaml.Node) error {
	*d = dateField(n.Value)
	return nil
}

// UnmarshalTOML accepts quoted strings and native TOML dates.
func (d *dateField) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*d = dateField(x)
	case time.Time:
		switch {
		case strings.Contains(x.Location().String(), "local") && isMidnight(x):
			*d = dateField(x.Format(dateOnly))
		case strings.Contains(x.Location().String(), "local"):
			*d = dateField(x.Format(localDateTime))
		default:
			*d = dateField(x.Format(time.RFC3339Nano))
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "date: unexpected TOML value %v", v)
	}
	return nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// ParseDate reads s as RFC 3339, or as a zone-less date or datetime in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{localDateTime, "2006-01-02 15:04:05", "2006-01-02 15:04", dateOnly} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidTask, "invalid date %q (want RFC 3339 or 2006-01-02)", s)
}

// formatDate writes midnight values as plain dates.
func formatDate(t time.Time) dateField {
	if isMidnight(t) {
		return dateField(t.Format(dateOnly))
	}
	return dateField(t.Format(time.RFC3339))
}

func (r record) toTask(loc *time.Location) (task.Task, error) {
	typ, err := task.ParseType(r.Type)
	if err != nil {
		return task.Task{}, err
	}
	start, err := ParseDate(string(r.Start), loc)
	if err != nil {
		return task.Task{}, errors.Wrap(errors.ErrCodeInvalidTask, err, "task %q: start", r.ID)
	}
	end := start
	if r.End != "" || typ != task.TypeMilestone {
		if end, err = ParseDate(string(r.End), loc); err != nil {
			return task.Task{}, errors.Wrap(errors.ErrCodeInvalidTask, err, "task %q: end", r.ID)
		}
	}
	t := task.Task{
		ID:           r.ID,
		Name:         r.Name,
		Start:        start,
		End:          end,
		Progress:     r.Progress,
		Type:         typ,
		Project:      r.Project,
		Dependencies: r.Dependencies,
		HideChildren: r.HideChildren,
		IsDisabled:   r.IsDisabled,
		DisplayOrder: r.DisplayOrder,
	}
	if s := r.Styles; s != nil {
		t.Styles = &task.BarStyles{
			Background:         s.Background,
			BackgroundSelected: s.BackgroundSelected,
			Progress:           s.Progress,
			ProgressSelected:   s.ProgressSelected,
		}
	}
	return t, nil
}

func fromTask(t task.Task) record {
	r := record{
		ID:           t.ID,
		Name:         t.Name,
		Start:        formatDate(t.Start),
		End:          formatDate(t.End),
		Progress:     t.Progress,
		Project:      t.Project,
		Dependencies: t.Dependencies,
		HideChildren: t.HideChildren,
		IsDisabled:   t.IsDisabled,
		DisplayOrder: t.DisplayOrder,
	}
	if t.Type != task.TypeTask {
		r.Type = string(t.Type)
	}
	if s := t.Styles; s != nil {
		r.Styles = &styles{
			Background:         s.Background,
			BackgroundSelected: s.BackgroundSelected,
			Progress:           s.Progress,
			ProgressSelected:   s.ProgressSelected,
		}
	}
	return r
}
