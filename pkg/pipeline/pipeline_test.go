package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/task"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		vizType string
		format  string
		wantErr bool
	}{
		{VizGantt, "svg", false},
		{VizGantt, "png", false},
		{VizGantt, "pdf", false},
		{VizGantt, "json", false},
		{VizGantt, "dot", true},
		{VizDeps, "dot", false},
		{VizDeps, "json", true},
		{VizGantt, "SVG", true}, // case-sensitive
		{VizGantt, "", true},
		{"tower", "svg", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.vizType, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.vizType, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats(VizGantt, []string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats(VizGantt, []string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(VizGantt, nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateLocale(t *testing.T) {
	for _, l := range []string{"en-US", "de_DE", "pt-BR", "ja"} {
		if err := ValidateLocale(l); err != nil {
			t.Errorf("ValidateLocale(%q) = %v", l, err)
		}
	}
	if err := ValidateLocale("not a locale!"); !errors.Is(err, errors.ErrCodeInvalidLocale) {
		t.Errorf("malformed locale: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if opts.ViewMode != string(task.ViewDay) {
		t.Errorf("ViewMode = %q", opts.ViewMode)
	}
	if opts.Locale != DefaultLocale {
		t.Errorf("Locale = %q", opts.Locale)
	}
	if opts.ColumnWidth != 60 || opts.RowHeight != 50 || opts.HeaderHeight != 50 || opts.BarFill != 60 {
		t.Errorf("geometry = %v %v %v %v", opts.ColumnWidth, opts.RowHeight, opts.HeaderHeight, opts.BarFill)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.VizType != VizGantt {
		t.Errorf("VizType = %q", opts.VizType)
	}
	if opts.Location() != time.UTC {
		t.Errorf("Location = %v", opts.Location())
	}
	if opts.Logger == nil || opts.Now == nil || opts.Formatters == nil {
		t.Error("runtime defaults not set")
	}
}

func TestOptionsViewModeCanonical(t *testing.T) {
	opts := Options{ViewMode: "quarter-day"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.ViewMode != "Quarter Day" || opts.Mode() != task.ViewQuarterDay {
		t.Errorf("ViewMode = %q", opts.ViewMode)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"view mode", Options{ViewMode: "fortnight"}, errors.ErrCodeInvalidViewMode},
		{"locale", Options{Locale: "not a locale!"}, errors.ErrCodeInvalidLocale},
		{"timezone", Options{Timezone: "Mars/Olympus_Mons"}, errors.ErrCodeInvalidInput},
		{"format", Options{VizType: VizDeps, Formats: []string{"json"}}, errors.ErrCodeInvalidFormat},
		{"type", Options{VizType: "tower"}, errors.ErrCodeInvalidInput},
		{"color", Options{Colors: styles.Theme{Bar: "url(javascript:x)"}}, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{ViewMode: "week"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts.ViewMode

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.ViewMode != first {
		t.Error("ViewMode changed on second call")
	}
}

func TestOptionsTheme(t *testing.T) {
	opts := Options{FontSize: "12px", Colors: styles.Theme{Bar: "#abcdef"}}
	th := opts.Theme()
	if th.FontSize != "12px" || th.Bar != "#abcdef" {
		t.Errorf("theme = %+v", th)
	}
	if th.Today == "" || th.TodayHeader == "" {
		t.Error("today highlight should be on by default")
	}

	opts.HideToday = true
	if th := opts.Theme(); th.Today != "" || th.TodayHeader != "" {
		t.Error("HideToday should clear the highlight colors")
	}
}

func TestLayoutKeyOptsToday(t *testing.T) {
	at := func(d int) func() time.Time {
		return func() time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	}

	a := Options{Now: at(1)}
	b := Options{Now: at(2)}
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("layout key should change with the date")
	}

	a.HideToday, b.HideToday = true, true
	if a.LayoutKeyOpts() != b.LayoutKeyOpts() {
		t.Error("without a today highlight the date should not matter")
	}
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gantt.toml")
	body := `
view_mode = "Week"
locale = "de-DE"
task_list = true
formats = ["svg", "json"]

[colors]
bar = "#4a90d9"

[formatter]
week = "KW {week}"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.ViewMode != "Week" || opts.Locale != "de-DE" || !opts.TaskList {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Colors.Bar != "#4a90d9" || opts.Formatter.Week != "KW {week}" {
		t.Errorf("nested tables not decoded: %+v %+v", opts.Colors, opts.Formatter)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("loaded options invalid: %v", err)
	}
}

func TestLoadOptionsFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.toml")
	if err := os.WriteFile(path, []byte("view_mod = \"Week\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptionsFile(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestOptionsMerge(t *testing.T) {
	base := Options{ViewMode: "Week", Locale: "de-DE", ColumnWidth: 80, Colors: styles.Theme{Bar: "#111"}}
	got := base.Merge(Options{ViewMode: "Month", RTL: true, Colors: styles.Theme{Arrow: "red"}})

	if got.ViewMode != "Month" || got.Locale != "de-DE" || got.ColumnWidth != 80 || !got.RTL {
		t.Errorf("merged = %+v", got)
	}
	if got.Colors.Bar != "#111" || got.Colors.Arrow != "red" {
		t.Errorf("colors = %+v", got.Colors)
	}
}
