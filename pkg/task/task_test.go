package task

import (
	"testing"
	"time"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func sampleTasks() []Task {
	return []Task{
		{ID: "proj", Name: "Website", Start: day(1), End: day(20), Type: TypeProject, Progress: 25},
		{ID: "design", Name: "Design", Start: day(2), End: day(6), Type: TypeTask, Project: "proj", Progress: 100},
		{ID: "build", Name: "Build", Start: day(6), End: day(15), Type: TypeTask, Project: "proj", Dependencies: []string{"design"}},
		{ID: "launch", Name: "Launch", Start: day(16), End: day(16), Type: TypeMilestone, Dependencies: []string{"build"}},
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in   string
		want ViewMode
	}{
		{"Day", ViewDay},
		{"day", ViewDay},
		{"Quarter Day", ViewQuarterDay},
		{"quarter-day", ViewQuarterDay},
		{"QuarterDay", ViewQuarterDay},
		{"half_day", ViewHalfDay},
		{"quarteryear", ViewQuarterYear},
		{"Quarter Year", ViewQuarterYear},
		{" HOUR ", ViewHour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseViewMode(tt.in)
			if err != nil {
				t.Fatalf("ParseViewMode(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseViewMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "fortnight", "days"} {
		if _, err := ParseViewMode(bad); !errors.Is(err, errors.ErrCodeInvalidViewMode) {
			t.Errorf("ParseViewMode(%q) err = %v, want INVALID_VIEW_MODE", bad, err)
		}
	}
}

func TestViewModeText(t *testing.T) {
	var m ViewMode
	if err := m.UnmarshalText([]byte("half-day")); err != nil {
		t.Fatal(err)
	}
	if m != ViewHalfDay || !m.Valid() {
		t.Errorf("UnmarshalText = %q", m)
	}
	if ViewMode("halfday").Valid() {
		t.Error("non-canonical spelling should not be Valid")
	}
}

func TestTaskValidate(t *testing.T) {
	base := Task{ID: "a", Name: "A", Start: day(1), End: day(2), Type: TypeTask}

	tests := []struct {
		name   string
		modify func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"empty type", func(t *Task) { t.Type = "" }, true},
		{"milestone same day", func(t *Task) { t.Type = TypeMilestone; t.End = t.Start }, true},
		{"empty id", func(t *Task) { t.ID = "" }, false},
		{"slash in id", func(t *Task) { t.ID = "a/b" }, false},
		{"end before start", func(t *Task) { t.End = day(0) }, false},
		{"zero start", func(t *Task) { t.Start = time.Time{} }, false},
		{"progress too high", func(t *Task) { t.Progress = 101 }, false},
		{"negative progress", func(t *Task) { t.Progress = -1 }, false},
		{"bad type", func(t *Task) { t.Type = "epic" }, false},
		{"own project", func(t *Task) { t.Project = "a" }, false},
		{"self dependency", func(t *Task) { t.Dependencies = []string{"a"} }, false},
		{"bad color", func(t *Task) { t.Styles = &BarStyles{Background: "#zzz"} }, false},
		{"good color", func(t *Task) { t.Styles = &BarStyles{Progress: "#abc"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := base.Clone()
			tt.modify(&task)
			err := task.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() err = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestTaskClone(t *testing.T) {
	orig := Task{ID: "a", Dependencies: []string{"b"}, Styles: &BarStyles{Background: "red"}}
	c := orig.Clone()
	c.Dependencies[0] = "x"
	c.Styles.Background = "blue"
	if orig.Dependencies[0] != "b" || orig.Styles.Background != "red" {
		t.Error("Clone shares state with the original")
	}
}
