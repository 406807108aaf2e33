package styles

import "testing"

func TestThemeWithDefaults(t *testing.T) {
	th := Theme{Bar: "#123456"}.WithDefaults()

	if th.Bar != "#123456" {
		t.Errorf("Bar overwritten: %q", th.Bar)
	}
	if th.HeaderLine != "#e0e0e0" || th.HeaderText != "#333" {
		t.Errorf("header colors = %q, %q", th.HeaderLine, th.HeaderText)
	}
	if th.Today != "" {
		t.Errorf("Today should stay empty, got %q", th.Today)
	}
	if th.FontSize != "14px" {
		t.Errorf("FontSize = %q", th.FontSize)
	}
}

func TestThemeColors(t *testing.T) {
	c := DefaultTheme().Colors()
	if c["today"] == "" || c["header_line"] != "#e0e0e0" {
		t.Errorf("unexpected colors: %v", c)
	}
}

func TestThemeOverlay(t *testing.T) {
	base := Theme{Bar: "#111", Arrow: "red", BarStrokeWidth: 1}
	got := base.Overlay(Theme{Bar: "#222", Milestone: "gold"})

	if got.Bar != "#222" || got.Milestone != "gold" {
		t.Errorf("overlay fields not applied: %+v", got)
	}
	if got.Arrow != "red" || got.BarStrokeWidth != 1 {
		t.Errorf("base fields lost: %+v", got)
	}
}
