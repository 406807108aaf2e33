package calendar

import (
	"time"

	"github.com/matzehuels/stackgantt/pkg/task"
)

// Strategy lays out the header for one view mode.
type Strategy interface {
	Layout(ticks []time.Time, cfg Config) Header
}

// For returns the strategy for mode. Unknown modes get the Day layout.
func For(mode task.ViewMode) Strategy {
	switch mode {
	case task.ViewYear:
		return yearLayout{}
	case task.ViewQuarterYear:
		return quarterYearLayout{}
	case task.ViewMonth:
		return monthLayout{}
	case task.ViewWeek:
		return weekLayout{}
	case task.ViewHalfDay:
		return partOfDayLayout{mode: task.ViewHalfDay, ticksPerGroup: 2}
	case task.ViewQuarterDay:
		return partOfDayLayout{mode: task.ViewQuarterDay, ticksPerGroup: 4}
	case task.ViewHour:
		return hourLayout{}
	default:
		return dayLayout{}
	}
}

// Layout computes the header for cfg.ViewMode.
func Layout(ticks []time.Time, cfg Config) Header {
	return For(cfg.ViewMode).Layout(ticks, cfg)
}
