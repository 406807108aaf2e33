package task

import (
	"slices"
	"time"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

// Type classifies a task.
type Type string

const (
	TypeTask      Type = "task"
	TypeMilestone Type = "milestone"
	TypeProject   Type = "project"
)

// ParseType resolves a type name; empty means TypeTask.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "", TypeTask:
		return TypeTask, nil
	case TypeMilestone, TypeProject:
		return Type(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidTask, "unknown task type %q", s)
}

// Task is one row of the chart.
type Task struct {
	ID           string     `json:"id" bson:"_id"`
	Name         string     `json:"name" bson:"name"`
	Start        time.Time  `json:"start" bson:"start"`
	End          time.Time  `json:"end" bson:"end"`
	Progress     float64    `json:"progress" bson:"progress"`
	Type         Type       `json:"type" bson:"type"`
	Project      string     `json:"project,omitempty" bson:"project,omitempty"`           // Parent project id
	Dependencies []string   `json:"dependencies,omitempty" bson:"dependencies,omitempty"` // Ids this task waits on
	HideChildren bool       `json:"hide_children,omitempty" bson:"hide_children,omitempty"`
	IsDisabled   bool       `json:"is_disabled,omitempty" bson:"is_disabled,omitempty"`
	DisplayOrder int        `json:"display_order,omitempty" bson:"display_order,omitempty"`
	Styles       *BarStyles `json:"styles,omitempty" bson:"styles,omitempty"`
}

// BarStyles overrides theme colors for a single bar.
type BarStyles struct {
	Background         string `json:"background,omitempty" bson:"background,omitempty"`
	BackgroundSelected string `json:"background_selected,omitempty" bson:"background_selected,omitempty"`
	Progress           string `json:"progress,omitempty" bson:"progress,omitempty"`
	ProgressSelected   string `json:"progress_selected,omitempty" bson:"progress_selected,omitempty"`
}

// IsProject reports whether t groups other tasks.
func (t Task) IsProject() bool { return t.Type == TypeProject }

// IsMilestone reports whether t is a zero-length marker.
func (t Task) IsMilestone() bool { return t.Type == TypeMilestone }

// Duration returns End - Start.
func (t Task) Duration() time.Duration { return t.End.Sub(t.Start) }

// Clone returns a deep copy.
func (t Task) Clone() Task {
	t.Dependencies = slices.Clone(t.Dependencies)
	if t.Styles != nil {
		s := *t.Styles
		t.Styles = &s
	}
	return t
}

// Validate checks the fields of t that do not depend on other tasks.
func (t Task) Validate() error {
	if err := errors.ValidateTaskID(t.ID); err != nil {
		return err
	}
	if _, err := ParseType(string(t.Type)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTask, err, "task %q", t.ID)
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: start and end are required", t.ID)
	}
	if t.End.Before(t.Start) {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: end %s before start %s",
			t.ID, t.End.Format(time.RFC3339), t.Start.Format(time.RFC3339))
	}
	if t.Progress < 0 || t.Progress > 100 {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: progress %v outside 0..100", t.ID, t.Progress)
	}
	if t.Project == t.ID {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: cannot be its own project", t.ID)
	}
	if slices.Contains(t.Dependencies, t.ID) {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: cannot depend on itself", t.ID)
	}
	if t.Styles != nil {
		for _, c := range []string{t.Styles.Background, t.Styles.BackgroundSelected, t.Styles.Progress, t.Styles.ProgressSelected} {
			if err := errors.ValidateColor(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTask, err, "task %q", t.ID)
			}
		}
	}
	return nil
}
