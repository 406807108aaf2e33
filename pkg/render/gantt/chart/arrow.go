package chart

import (
	"fmt"
	"strconv"
)

// Arrow connects a dependency's bar to the bar that waits on it.
type Arrow struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Path     string `json:"path"`     // SVG path data
	Triangle string `json:"triangle"` // SVG polygon points of the head
}

func buildArrows(bars []Bar, barHeight float64, cfg Config) []Arrow {
	byID := make(map[string]int, len(bars))
	for i, b := range bars {
		byID[b.TaskID] = i
	}
	arrows := []Arrow{}
	for _, to := range bars {
		for _, dep := range to.Dependencies {
			i, ok := byID[dep]
			if !ok {
				continue // hidden under a collapsed project
			}
			from := bars[i]
			path, tri := arrowPath(from, to, cfg.RowHeight, barHeight, cfg.ArrowIndent)
			if cfg.RTL {
				path, tri = arrowPathRTL(from, to, cfg.RowHeight, barHeight, cfg.ArrowIndent)
			}
			arrows = append(arrows, Arrow{From: from.TaskID, To: to.TaskID, Path: path, Triangle: tri})
		}
	}
	return arrows
}

// arrowPath leaves from's right edge, drops half a row towards to, doubles
// back when to starts too close, then enters to from the left.
func arrowPath(from, to Bar, rowHeight, barHeight, indent float64) (string, string) {
	dir := 1.0
	if from.Index > to.Index {
		dir = -1
	}
	toY := to.Y + barHeight/2
	fromEnd := from.X2 + indent*2

	back := ""
	if fromEnd >= to.X1 {
		back = " H " + num(to.X1-indent)
	}
	last := to.X1 - from.X2 - indent
	if fromEnd > to.X1 {
		last = indent
	}

	path := fmt.Sprintf("M %s %s h %s v %s%s V %s h %s",
		num(from.X2), num(from.Y+barHeight/2), num(indent), num(dir*rowHeight/2), back, num(toY), num(last))
	tri := fmt.Sprintf("%s,%s %s,%s %s,%s",
		num(to.X1), num(toY), num(to.X1-5), num(toY-5), num(to.X1-5), num(toY+5))
	return path, tri
}

func arrowPathRTL(from, to Bar, rowHeight, barHeight, indent float64) (string, string) {
	dir := 1.0
	if from.Index > to.Index {
		dir = -1
	}
	toY := to.Y + barHeight/2
	fromEnd := from.X1 - indent*2

	back := ""
	if fromEnd <= to.X2 {
		back = " H " + num(to.X2+indent)
	}
	last := to.X2 - from.X1 + indent
	if fromEnd < to.X2 {
		last = -indent
	}

	path := fmt.Sprintf("M %s %s h %s v %s%s V %s h %s",
		num(from.X1), num(from.Y+barHeight/2), num(-indent), num(dir*rowHeight/2), back, num(toY), num(last))
	tri := fmt.Sprintf("%s,%s %s,%s %s,%s",
		num(to.X2), num(toY), num(to.X2+5), num(toY+5), num(to.X2+5), num(toY-5))
	return path, tri
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
