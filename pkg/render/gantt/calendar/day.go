package calendar

import (
	"fmt"
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// dayLayout draws "Mon, 5" under month names, closing each month with a
// marker, and highlights today when a color is configured.
type dayLayout struct{}

func (dayLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewDay, ticks, cfg, ByMonth)
	now := b.cfg.Now()
	for i, t := range ticks {
		l := b.bottom(i, b.overrides().Day().Or(t, b.cfg.Locale, func() string {
			return fmt.Sprintf("%s, %d", b.weekday(t, datefmt.NameShort), t.Day())
		}))
		if b.cfg.TodayColor != "" && sameDay(t, now) {
			l.Bold = true
			b.highlight(i, b.cfg.TodayColor)
		}
	}
	for s, seg := range b.h.Segments {
		b.segmentTop(s, b.month(ticks[seg.End]), b.col(seg.End+1), b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}

// sameDay compares calendar dates in the tick's location.
func sameDay(tick, now time.Time) bool {
	now = now.In(tick.Location())
	y1, m1, d1 := tick.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
