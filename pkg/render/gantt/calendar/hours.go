package calendar

import (
	"fmt"
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// partOfDayLayout draws hours under day labels for the Half Day and
// Quarter Day modes. The top band uses a fixed group of ticksPerGroup
// columns starting at each new day, independent of where the day ends.
type partOfDayLayout struct {
	mode          task.ViewMode
	ticksPerGroup int
}

func (l partOfDayLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(l.mode, ticks, cfg, ByDay)
	for i, t := range ticks {
		b.bottom(i, b.hour(t))
	}
	span := b.cw() * float64(l.ticksPerGroup)
	for s, seg := range b.h.Segments {
		t := ticks[seg.Start]
		text := b.overrides().Day().Or(t, b.cfg.Locale, func() string {
			return fmt.Sprintf("%s, %d %s", b.weekday(t, datefmt.NameShort), t.Day(), b.localMonth(t))
		})
		start := b.col(seg.Start)
		b.top(s, text, start+span/2, span, start+span, b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}

// hourLayout draws hours under day labels. A day is labelled when the next
// day begins: the marker sits on the first tick of the new day and the
// label, centered 24 hours back from it, names the previous tick's date.
type hourLayout struct{}

func (hourLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewHour, ticks, cfg, ByDay)
	for i, t := range ticks {
		b.bottom(i, b.hour(t))
	}
	for s, seg := range b.h.Segments {
		if s == 0 {
			continue
		}
		i := seg.Start
		prev, cur := ticks[i-1], ticks[i]
		text := b.overrides().Day().Or(prev, b.cfg.Locale, func() string {
			return fmt.Sprintf("%s, %d %s", b.weekday(prev, datefmt.NameLong), prev.Day(), b.localMonth(prev))
		})
		x := b.cw() * (float64(i) + float64(cur.Hour()-24)/2)
		span := b.cw() * float64(b.h.Segments[s-1].Len())
		b.top(s-1, text, x, span, b.col(i), b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}
