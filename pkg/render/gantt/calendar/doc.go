// Package calendar computes the two-band header of a Gantt timeline.
//
// # Overview
//
// Given the tick sequence of a view (one tick per column) and a [Config],
// [Layout] returns a [Header]: one bottom label per tick, one top label
// and boundary marker per segment, and today highlights in Day mode. All
// values are positioned in chart pixels; rendering is left to the sink
// package.
//
// A segment is a maximal run of consecutive ticks that share the coarser
// unit of the view (the year in Month mode, the month in Day mode, the day
// in Hour mode). Segments always partition the tick sequence, and a new
// segment starts whenever the unit changes, even across gaps.
//
// # Strategies
//
// Each view mode has its own [Strategy], chosen by [For]:
//
//	Year         years over years, full-height markers
//	QuarterYear  years over Q1..Q4
//	Month        years over month names
//	Week         "January, 2024" over ISO weeks (W1..W53)
//	Day          month names over "Mon, 5", with today highlights
//	Half Day     "Mon, 5 January" over hours, two columns per day
//	Quarter Day  "Mon, 5 January" over hours, four columns per day
//	Hour         "Monday, 5 January" over hours
//
// Strategies differ in where the boundary marker of a segment goes: Year,
// QuarterYear and Month mark the start of a segment, Week and Day mark its
// end, and the part-of-day modes place it a fixed number of columns after
// the segment start. Hour mode labels a day when the next one begins, so
// the label describes the previous tick's date; the first segment carries
// neither label nor marker.
//
// # Right-to-left
//
// With [Config.RTL] every x coordinate is mirrored about the header's
// center (x becomes Width - x). Tick i still describes the i-th date; it
// is simply drawn i columns from the right edge.
//
// # Text
//
// Labels come from the locale formatter in [datefmt] unless
// [Config.Formatter] overrides the granularity. Label text is never
// shortened unless [Config.FitLabels] is set; then top labels are fitted
// to the pixel span of their segment with an ellipsis and the untruncated
// text is kept in [Label.FullText] for tooltips.
package calendar
