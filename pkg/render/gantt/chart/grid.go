package chart

import "time"

// Grid is the chart background.
type Grid struct {
	Rows  []Row     `json:"rows"`
	Ticks []float64 `json:"ticks"` // Column boundary x positions
	Today *Rect     `json:"today,omitempty"`
}

// Row is one horizontal band.
type Row struct {
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

// Rect is a filled area.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

func buildGrid(ticks []time.Time, rows int, cfg Config) Grid {
	g := Grid{
		Rows:  make([]Row, rows),
		Ticks: make([]float64, len(ticks)),
	}
	for i := range g.Rows {
		g.Rows[i] = Row{Y: float64(i) * cfg.RowHeight, Height: cfg.RowHeight}
	}
	for i := range ticks {
		g.Ticks[i] = cfg.ColumnWidth * float64(i)
	}
	if cfg.TodayColor == "" {
		return g
	}
	if i := TodayColumn(ticks, cfg.Now()); i >= 0 {
		x := cfg.ColumnWidth * float64(i)
		if cfg.RTL {
			x = cfg.ColumnWidth * float64(len(ticks)-1-i)
		}
		g.Today = &Rect{
			X:      x,
			Y:      0,
			Width:  cfg.ColumnWidth,
			Height: cfg.RowHeight * float64(rows),
			Fill:   cfg.TodayColor,
		}
	}
	return g
}

// TodayColumn returns the index of the column whose interval
// [ticks[i], ticks[i+1]) contains now, or -1. The last column's interval
// is as long as the one before it.
func TodayColumn(ticks []time.Time, now time.Time) int {
	n := len(ticks)
	for i := 0; i < n; i++ {
		if now.Before(ticks[i]) {
			return -1
		}
		var next time.Time
		switch {
		case i+1 < n:
			next = ticks[i+1]
		case n > 1:
			next = ticks[i].Add(ticks[i].Sub(ticks[i-1]))
		default:
			return -1
		}
		if now.Before(next) {
			return i
		}
	}
	return -1
}
