package datefmt

import (
	"testing"
	"time"
)

func TestNilDateFormatter(t *testing.T) {
	var f *DateFormatter
	if f.Day() != nil || f.Month() != nil || f.Year() != nil || f.Week() != nil || f.Hour() != nil {
		t.Error("nil DateFormatter should expose no overrides")
	}

	got := f.Month().Or(time.Now(), "en-US", func() string { return "fallback" })
	if got != "fallback" {
		t.Errorf("Or() = %q, want fallback", got)
	}
}

func TestDateFormatterOverride(t *testing.T) {
	f := &DateFormatter{
		FormatYear: func(t time.Time, _ string) string { return "BE" },
	}
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got := f.Year().Or(d, "th-TH", func() string { return "2024" }); got != "BE" {
		t.Errorf("Year().Or() = %q, want %q", got, "BE")
	}
	if got := f.Day().Or(d, "th-TH", func() string { return "Mon, 1" }); got != "Mon, 1" {
		t.Errorf("Day().Or() = %q, want fallback", got)
	}
}

func TestLayoutFormatter(t *testing.T) {
	c := NewCache()
	d := time.Date(2021, time.January, 1, 14, 0, 0, 0, time.UTC)

	if (LayoutFormatter{}).DateFormatter(c) != nil {
		t.Error("empty LayoutFormatter should produce nil")
	}

	f := LayoutFormatter{
		Week:  "W{week}",
		Year:  "2006",
		Month: "Jan 2006",
		Hour:  "15:04",
		Day:   "Monday {week}",
	}.DateFormatter(c)

	tests := []struct {
		name string
		fn   FormatFunc
		want string
	}{
		{"week", f.FormatWeek, "W53"},
		{"year", f.FormatYear, "2021"},
		{"month", f.FormatMonth, "Jan 2021"},
		{"hour", f.FormatHour, "14:00"},
		{"day", f.FormatDay, "Friday 53"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(d, "en-US"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutFormatterLocalized(t *testing.T) {
	f := LayoutFormatter{Month: "January"}.DateFormatter(NewCache())
	d := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := f.FormatMonth(d, "de-DE"); got != "März" {
		t.Errorf("FormatMonth(de-DE) = %q, want %q", got, "März")
	}
	if f.FormatDay != nil {
		t.Error("unset layout should leave FormatDay nil")
	}
}
