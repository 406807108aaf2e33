package calendar

import (
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// builder accumulates header parts in left-to-right coordinates and
// mirrors them on finish when the config asks for RTL.
type builder struct {
	cfg   Config
	ticks []time.Time
	h     Header
}

func newBuilder(mode task.ViewMode, ticks []time.Time, cfg Config, key KeyFunc) *builder {
	cfg = cfg.withDefaults()
	return &builder{
		cfg:   cfg,
		ticks: ticks,
		h: Header{
			ViewMode: mode,
			Width:    cfg.ColumnWidth * float64(len(ticks)),
			Height:   cfg.HeaderHeight,
			Top:      []TopPart{},
			Bottom:   make([]Label, 0, len(ticks)),
			Segments: Segments(ticks, key),
		},
	}
}

func (b *builder) cw() float64 { return b.cfg.ColumnWidth }

// col returns the left edge of column i.
func (b *builder) col(i int) float64 { return b.cw() * float64(i) }

func (b *builder) bottom(i int, text string) *Label {
	b.h.Bottom = append(b.h.Bottom, Label{
		Text:   text,
		X:      b.col(i) + b.cw()*0.5,
		Y:      b.cfg.HeaderHeight * 0.75,
		Anchor: AnchorMiddle,
	})
	return &b.h.Bottom[len(b.h.Bottom)-1]
}

// top adds a top-band label centered at x. With FitLabels set the text
// is fitted to span pixels. A negative markerX suppresses the boundary line.
func (b *builder) top(seg int, text string, x, span, markerX, markerY2 float64) {
	fitted := text
	if b.cfg.FitLabels {
		fitted = styles.FitWithEllipsis(text, span, b.cfg.FontSize)
	}
	part := TopPart{
		Label: Label{
			Text:   fitted,
			X:      x,
			Y:      b.cfg.HeaderHeight * 0.25,
			Anchor: AnchorMiddle,
		},
		Segment: seg,
	}
	if fitted != text {
		part.Label.FullText = text
	}
	if markerX >= 0 {
		part.Marker = &Marker{X: markerX, Y1: 0, Y2: markerY2}
	}
	b.h.Top = append(b.h.Top, part)
}

// segmentTop adds a label centered over segment s.
func (b *builder) segmentTop(s int, text string, markerX, markerY2 float64) {
	seg := b.h.Segments[s]
	span := b.cw() * float64(seg.Len())
	b.top(s, text, b.col(seg.Start)+span/2, span, markerX, markerY2)
}

func (b *builder) highlight(i int, fill string) {
	half := b.cfg.HeaderHeight * 0.5
	b.h.Highlights = append(b.h.Highlights, Highlight{
		X:      b.col(i),
		Y:      half,
		Width:  b.cw(),
		Height: b.cfg.HeaderHeight - half,
		Fill:   fill,
	})
}

func (b *builder) finish() Header {
	if !b.cfg.RTL {
		return b.h
	}
	w := b.h.Width
	for i := range b.h.Bottom {
		b.h.Bottom[i].X = w - b.h.Bottom[i].X
	}
	for i := range b.h.Top {
		p := &b.h.Top[i]
		p.Label.X = w - p.Label.X
		if p.Marker != nil {
			p.Marker.X = w - p.Marker.X
		}
	}
	for i := range b.h.Highlights {
		r := &b.h.Highlights[i]
		r.X = w - r.X - r.Width
	}
	return b.h
}

// Text helpers. Each applies the matching DateFormatter override first.

func (b *builder) overrides() *datefmt.DateFormatter { return b.cfg.Formatter }

func (b *builder) year(t time.Time) string {
	return b.overrides().Year().Or(t, b.cfg.Locale, func() string { return t.Format("2006") })
}

func (b *builder) month(t time.Time) string {
	return b.overrides().Month().Or(t, b.cfg.Locale, func() string {
		return b.cfg.Formatters.MonthName(t, b.cfg.Locale)
	})
}

func (b *builder) hour(t time.Time) string {
	return b.overrides().Hour().Or(t, b.cfg.Locale, func() string {
		return b.cfg.Formatters.HourLabel(t, b.cfg.Locale)
	})
}

func (b *builder) weekday(t time.Time, length datefmt.NameLength) string {
	return b.cfg.Formatters.DayOfWeekName(t, b.cfg.Locale, length)
}

func (b *builder) localMonth(t time.Time) string {
	return b.cfg.Formatters.MonthName(t, b.cfg.Locale)
}
