package styles

// Theme carries the colors and fonts a chart is drawn with. Values are
// passed through to the output unchanged; nothing here is computed.
type Theme struct {
	FontFamily string `toml:"font_family" json:"font_family,omitempty"`
	FontSize   string `toml:"font_size" json:"font_size,omitempty"`

	HeaderLine       string `toml:"header_line" json:"header_line,omitempty"`
	HeaderText       string `toml:"header_text" json:"header_text,omitempty"`
	HeaderBackground string `toml:"header_background" json:"header_background,omitempty"`
	GridLine         string `toml:"grid_line" json:"grid_line,omitempty"`
	RowBackground    string `toml:"row_background" json:"row_background,omitempty"`
	RowStripe        string `toml:"row_stripe" json:"row_stripe,omitempty"`
	Arrow            string `toml:"arrow" json:"arrow,omitempty"`

	// Today fills the chart column for the current day; TodayHeader fills
	// the matching header cell. Empty disables the highlight.
	Today       string `toml:"today" json:"today,omitempty"`
	TodayHeader string `toml:"today_header" json:"today_header,omitempty"`

	Bar                     string `toml:"bar" json:"bar,omitempty"`
	BarSelected             string `toml:"bar_selected" json:"bar_selected,omitempty"`
	BarProgress             string `toml:"bar_progress" json:"bar_progress,omitempty"`
	BarProgressSelected     string `toml:"bar_progress_selected" json:"bar_progress_selected,omitempty"`
	ProjectBar              string `toml:"project_bar" json:"project_bar,omitempty"`
	ProjectBarSelected      string `toml:"project_bar_selected" json:"project_bar_selected,omitempty"`
	ProjectProgress         string `toml:"project_progress" json:"project_progress,omitempty"`
	ProjectProgressSelected string `toml:"project_progress_selected" json:"project_progress_selected,omitempty"`
	Milestone               string `toml:"milestone" json:"milestone,omitempty"`
	MilestoneSelected       string `toml:"milestone_selected" json:"milestone_selected,omitempty"`

	BarText         string  `toml:"bar_text" json:"bar_text,omitempty"`
	BarStroke       string  `toml:"bar_stroke" json:"bar_stroke,omitempty"` // Empty draws no outline
	BarStrokeWidth  float64 `toml:"bar_stroke_width" json:"bar_stroke_width,omitempty"`
	BarCornerRadius float64 `toml:"bar_corner_radius" json:"bar_corner_radius,omitempty"`
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		FontFamily:              "Arial, Roboto, 'Helvetica Neue', sans-serif",
		FontSize:                "14px",
		HeaderLine:              "#e0e0e0",
		HeaderText:              "#333",
		HeaderBackground:        "#ffffff",
		GridLine:                "#ebeff2",
		RowBackground:           "#fff",
		RowStripe:               "#f5f5f5",
		Arrow:                   "grey",
		Today:                   "rgba(252, 248, 227, 0.5)",
		TodayHeader:             "rgba(252, 248, 227, 0.5)",
		Bar:                     "#b8c2cc",
		BarSelected:             "#aeb8c2",
		BarProgress:             "#a3a3ff",
		BarProgressSelected:     "#8282f5",
		ProjectBar:              "#fac465",
		ProjectBarSelected:      "#f7bb53",
		ProjectProgress:         "#7db59a",
		ProjectProgressSelected: "#59a985",
		Milestone:               "#f1c453",
		MilestoneSelected:       "#f29e4c",
		BarText:                 "#fff",
		BarCornerRadius:         3,
	}
}

// WithDefaults fills empty fields from DefaultTheme. Today colors are
// left alone so callers can switch the highlight off.
func (t Theme) WithDefaults() Theme {
	today, todayHeader := t.Today, t.TodayHeader
	t = t.fillFrom(DefaultTheme())
	t.Today, t.TodayHeader = today, todayHeader
	return t
}

// Overlay returns t with every non-empty field of o applied on top.
func (t Theme) Overlay(o Theme) Theme {
	return o.fillFrom(t)
}

func (t Theme) fillFrom(d Theme) Theme {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.FontFamily, d.FontFamily)
	fill(&t.FontSize, d.FontSize)
	fill(&t.HeaderLine, d.HeaderLine)
	fill(&t.HeaderText, d.HeaderText)
	fill(&t.HeaderBackground, d.HeaderBackground)
	fill(&t.GridLine, d.GridLine)
	fill(&t.RowBackground, d.RowBackground)
	fill(&t.RowStripe, d.RowStripe)
	fill(&t.Arrow, d.Arrow)
	fill(&t.Today, d.Today)
	fill(&t.TodayHeader, d.TodayHeader)
	fill(&t.Bar, d.Bar)
	fill(&t.BarSelected, d.BarSelected)
	fill(&t.BarProgress, d.BarProgress)
	fill(&t.BarProgressSelected, d.BarProgressSelected)
	fill(&t.ProjectBar, d.ProjectBar)
	fill(&t.ProjectBarSelected, d.ProjectBarSelected)
	fill(&t.ProjectProgress, d.ProjectProgress)
	fill(&t.ProjectProgressSelected, d.ProjectProgressSelected)
	fill(&t.Milestone, d.Milestone)
	fill(&t.MilestoneSelected, d.MilestoneSelected)
	fill(&t.BarText, d.BarText)
	fill(&t.BarStroke, d.BarStroke)
	if t.BarStrokeWidth == 0 {
		t.BarStrokeWidth = d.BarStrokeWidth
	}
	if t.BarCornerRadius == 0 {
		t.BarCornerRadius = d.BarCornerRadius
	}
	return t
}

// Colors returns every color field keyed by its config name, for validation.
func (t Theme) Colors() map[string]string {
	return map[string]string{
		"header_line":               t.HeaderLine,
		"header_text":               t.HeaderText,
		"header_background":         t.HeaderBackground,
		"grid_line":                 t.GridLine,
		"row_background":            t.RowBackground,
		"row_stripe":                t.RowStripe,
		"arrow":                     t.Arrow,
		"today":                     t.Today,
		"today_header":              t.TodayHeader,
		"bar":                       t.Bar,
		"bar_selected":              t.BarSelected,
		"bar_progress":              t.BarProgress,
		"bar_progress_selected":     t.BarProgressSelected,
		"project_bar":               t.ProjectBar,
		"project_bar_selected":      t.ProjectBarSelected,
		"project_progress":          t.ProjectProgress,
		"project_progress_selected": t.ProjectProgressSelected,
		"milestone":                 t.Milestone,
		"milestone_selected":        t.MilestoneSelected,
		"bar_text":                  t.BarText,
		"bar_stroke":                t.BarStroke,
	}
}
