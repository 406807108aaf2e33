package task

import (
	"slices"
	"strings"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

// ViewMode is the timeline granularity.
type ViewMode string

const (
	ViewHour        ViewMode = "Hour"
	ViewQuarterDay  ViewMode = "Quarter Day"
	ViewHalfDay     ViewMode = "Half Day"
	ViewDay         ViewMode = "Day"
	ViewWeek        ViewMode = "Week"
	ViewMonth       ViewMode = "Month"
	ViewQuarterYear ViewMode = "QuarterYear"
	ViewYear        ViewMode = "Year"
)

// ViewModes lists every mode from finest to coarsest.
func ViewModes() []ViewMode {
	return []ViewMode{
		ViewHour, ViewQuarterDay, ViewHalfDay, ViewDay,
		ViewWeek, ViewMonth, ViewQuarterYear, ViewYear,
	}
}

// ParseViewMode resolves a user-supplied mode name.
func ParseViewMode(s string) (ViewMode, error) {
	want := normalizeMode(s)
	for _, m := range ViewModes() {
		if normalizeMode(string(m)) == want {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidViewMode, "unknown view mode %q", s)
}

func normalizeMode(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether m is one of the canonical mode names.
func (m ViewMode) Valid() bool { return slices.Contains(ViewModes(), m) }

// String returns the display name.
func (m ViewMode) String() string { return string(m) }

// MarshalText implements encoding.TextMarshaler.
func (m ViewMode) MarshalText() ([]byte, error) { return []byte(m), nil }

// UnmarshalText implements encoding.TextUnmarshaler so config files and
// JSON bodies may use any spelling ParseViewMode accepts.
func (m *ViewMode) UnmarshalText(b []byte) error {
	v, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
