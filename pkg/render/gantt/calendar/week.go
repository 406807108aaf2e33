package calendar

import (
	"fmt"
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// weekLayout draws ISO week numbers under "Month, Year". Markers close
// each month segment; the segment holding the last tick gets no marker
// since its month continues past the visible range.
type weekLayout struct{}

func (weekLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewWeek, ticks, cfg, ByMonth)
	for i, t := range ticks {
		b.bottom(i, b.overrides().Week().Or(t, b.cfg.Locale, func() string {
			return fmt.Sprintf("W%d", datefmt.ISOWeek(t))
		}))
	}
	for s, seg := range b.h.Segments {
		first := ticks[seg.Start]
		text := fmt.Sprintf("%s, %s", b.month(first), b.year(first))
		marker := b.col(seg.End + 1)
		if seg.End == len(ticks)-1 {
			marker = -1
		}
		b.segmentTop(s, text, marker, b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}
