// Package ticks generates the column dates of a Gantt timeline.
//
// A tick is the start of one column. [Range] pads the task span to whole
// units of the view mode and [Seed] walks that range one [Step] at a time.
// The calendar header and the chart geometry both consume the resulting
// sequence; neither produces ticks itself.
package ticks

import (
	"time"

	"github.com/matzehuels/stackgantt/pkg/task"
)

// MaxTicks bounds the length of a generated sequence.
const MaxTicks = 20000

// DefaultPreSteps is the number of extra columns placed before the first task.
const DefaultPreSteps = 1

// Range pads [start, end] for the given mode. Boundaries snap to the
// mode's unit in the location of start. preSteps sets the number of lead
// columns for Month and finer modes; Year and QuarterYear always lead by
// one year and one quarter and ignore it.
func Range(start, end time.Time, mode task.ViewMode, preSteps int) (time.Time, time.Time) {
	if end.Before(start) {
		start, end = end, start
	}
	end = end.In(start.Location())

	switch mode {
	case task.ViewYear:
		start = startOfYear(start.AddDate(-1, 0, 0))
		end = startOfYear(end.AddDate(1, 0, 0))
	case task.ViewQuarterYear:
		start = startOfQuarter(start.AddDate(0, -3, 0))
		end = startOfYear(end.AddDate(3, 0, 0))
	case task.ViewMonth:
		start = startOfMonth(start.AddDate(0, -preSteps, 0))
		end = startOfYear(end.AddDate(1, 0, 0))
	case task.ViewWeek:
		start = monday(startOfDay(start)).AddDate(0, 0, -7*preSteps)
		end = startOfDay(end).AddDate(0, 1, 15)
	case task.ViewDay:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = startOfDay(end).AddDate(0, 0, 19)
	case task.ViewQuarterDay:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = startOfDay(end).Add(66 * time.Hour)
	case task.ViewHalfDay:
		start = startOfDay(start).AddDate(0, 0, -preSteps)
		end = startOfDay(end).Add(108 * time.Hour)
	case task.ViewHour:
		start = startOfHour(start).Add(-time.Duration(preSteps) * time.Hour)
		end = startOfDay(end).AddDate(0, 0, 1)
	}
	return start, end
}

// Seed returns start and every following step up to and including the
// first tick at or after end.
func Seed(start, end time.Time, mode task.ViewMode) []time.Time {
	out := []time.Time{start}
	for cur := start; cur.Before(end) && len(out) < MaxTicks; {
		next := Step(cur, mode)
		if !next.After(cur) {
			break
		}
		out = append(out, next)
		cur = next
	}
	return out
}

// Step advances t by one column of the given mode.
func Step(t time.Time, mode task.ViewMode) time.Time {
	switch mode {
	case task.ViewYear:
		return t.AddDate(1, 0, 0)
	case task.ViewQuarterYear:
		return t.AddDate(0, 3, 0)
	case task.ViewMonth:
		return t.AddDate(0, 1, 0)
	case task.ViewWeek:
		return t.AddDate(0, 0, 7)
	case task.ViewHalfDay:
		return t.Add(12 * time.Hour)
	case task.ViewQuarterDay:
		return t.Add(6 * time.Hour)
	case task.ViewHour:
		return t.Add(time.Hour)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Generate is Range followed by Seed.
func Generate(start, end time.Time, mode task.ViewMode, preSteps int) []time.Time {
	s, e := Range(start, end, mode, preSteps)
	return Seed(s, e, mode)
}

func startOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfQuarter(t time.Time) time.Time {
	m := (t.Month()-1)/3*3 + 1
	return time.Date(t.Year(), m, 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func monday(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, 1-wd)
}
