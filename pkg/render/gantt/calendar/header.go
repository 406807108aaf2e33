package calendar

import (
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Header layout defaults.
const (
	DefaultColumnWidth  = 60.0
	DefaultHeaderHeight = 50.0
)

// Anchor values for Label.Anchor, matching SVG text-anchor.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Config controls header layout.
type Config struct {
	ViewMode     task.ViewMode
	ColumnWidth  float64
	HeaderHeight float64
	Locale       string
	RTL          bool

	// Formatter overrides label text per granularity. Nil fields fall back
	// to the locale formatters in Formatters.
	Formatter  *datefmt.DateFormatter
	Formatters *datefmt.Cache

	// TodayColor enables the Day mode today highlight.
	TodayColor string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// FitLabels shortens top labels that overflow their segment with an
	// ellipsis. Off by default: labels keep their full text.
	FitLabels bool
	// FontSize in pixels, used when fitting top labels. Defaults to 14.
	FontSize float64
}

func (c Config) withDefaults() Config {
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = DefaultColumnWidth
	}
	if c.HeaderHeight <= 0 {
		c.HeaderHeight = DefaultHeaderHeight
	}
	if c.Formatters == nil {
		c.Formatters = datefmt.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.FontSize <= 0 {
		c.FontSize = styles.DefaultFontSize
	}
	return c
}

// Header is the computed calendar header.
type Header struct {
	ViewMode   task.ViewMode `json:"view_mode"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Top        []TopPart     `json:"top"`
	Bottom     []Label       `json:"bottom"`
	Highlights []Highlight   `json:"highlights,omitempty"`
	Segments   []Segment     `json:"segments"`
}

// Label is a positioned piece of header text.
type Label struct {
	Text     string  `json:"text"`
	FullText string  `json:"full_text,omitempty"` // Set when FitLabels shortened Text
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Anchor   string  `json:"anchor"`
	Bold     bool    `json:"bold,omitempty"`
}

// Marker is a vertical boundary line in the top band.
type Marker struct {
	X  float64 `json:"x"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// Highlight is a filled header cell.
type Highlight struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// TopPart is one entry of the top band. Marker is nil when the boundary
// line is suppressed.
type TopPart struct {
	Label   Label   `json:"label"`
	Marker  *Marker `json:"marker,omitempty"`
	Segment int     `json:"segment"` // Index into Header.Segments
}

// Markers returns the x positions of all boundary markers.
func (h Header) Markers() []float64 {
	var xs []float64
	for _, p := range h.Top {
		if p.Marker != nil {
			xs = append(xs, p.Marker.X)
		}
	}
	return xs
}
