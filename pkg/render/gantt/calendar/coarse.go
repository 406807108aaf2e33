package calendar

import (
	"fmt"
	"time"

	"github.com/matzehuels/stackgantt/pkg/task"
)

// yearLayout draws one column per year. The top band repeats the year
// over each year segment and its markers span the full header height.
type yearLayout struct{}

func (yearLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewYear, ticks, cfg, ByYear)
	for i, t := range ticks {
		b.bottom(i, b.year(t))
	}
	for s, seg := range b.h.Segments {
		b.segmentTop(s, b.year(ticks[seg.Start]), b.col(seg.Start), b.cfg.HeaderHeight)
	}
	return b.finish()
}

// quarterYearLayout draws quarters under their year.
type quarterYearLayout struct{}

func (quarterYearLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewQuarterYear, ticks, cfg, ByYear)
	for i, t := range ticks {
		b.bottom(i, fmt.Sprintf("Q%d", quarter(t)))
	}
	for s, seg := range b.h.Segments {
		b.segmentTop(s, b.year(ticks[seg.Start]), b.col(seg.Start), b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}

// quarter returns 1..4.
func quarter(t time.Time) int { return (int(t.Month())-1)/3 + 1 }

// monthLayout draws month names under their year.
type monthLayout struct{}

func (monthLayout) Layout(ticks []time.Time, cfg Config) Header {
	b := newBuilder(task.ViewMonth, ticks, cfg, ByYear)
	for i, t := range ticks {
		b.bottom(i, b.month(t))
	}
	for s, seg := range b.h.Segments {
		b.segmentTop(s, b.year(ticks[seg.Start]), b.col(seg.Start), b.cfg.HeaderHeight*0.5)
	}
	return b.finish()
}
