package datefmt

import (
	"testing"
	"time"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		locale string
		want   string
	}{
		{"english", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), "en-US", "January"},
		{"empty locale", time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC), "", "October"},
		{"german", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "de-DE", "März"},
		{"german base tag", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), "de", "Januar"},
		{"underscore tag", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), "de_DE", "Januar"},
		{"unparseable", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), "not a locale!", "January"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthName(tt.date, tt.locale); got != tt.want {
				t.Errorf("MonthName(%s, %q) = %q, want %q", tt.date.Format("2006-01-02"), tt.locale, got, tt.want)
			}
		})
	}
}

func TestDayOfWeekName(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got := DayOfWeekName(monday, "en-US", NameShort); got != "Mon" {
		t.Errorf("short = %q, want %q", got, "Mon")
	}
	if got := DayOfWeekName(monday, "en-US", NameLong); got != "Monday" {
		t.Errorf("long = %q, want %q", got, "Monday")
	}
	if got := DayOfWeekName(monday, "de-DE", NameLong); got != "Montag" {
		t.Errorf("german long = %q, want %q", got, "Montag")
	}

	// Deterministic for a given triple.
	for i := 0; i < 3; i++ {
		if got := DayOfWeekName(monday, "fr-FR", NameShort); got != DayOfWeekName(monday, "fr-FR", NameShort) {
			t.Fatalf("DayOfWeekName not deterministic: %q", got)
		}
	}
}

func TestHourLabel(t *testing.T) {
	afternoon := time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC)
	midnight := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		locale string
		want   string
	}{
		{"us afternoon", afternoon, "en-US", "3 PM"},
		{"us midnight", midnight, "en-US", "12 AM"},
		{"default locale", afternoon, "", "3 PM"},
		{"british", afternoon, "en-GB", "15"},
		{"german", afternoon, "de-DE", "15 Uhr"},
		{"spanish", afternoon, "es-ES", "15"},
		{"german midnight", midnight, "de", "00 Uhr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HourLabel(tt.date, tt.locale); got != tt.want {
				t.Errorf("HourLabel(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}
