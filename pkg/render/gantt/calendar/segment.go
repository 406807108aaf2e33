package calendar

import (
	"fmt"
	"time"
)

// Segment is a maximal run of ticks sharing a key. Start and End are
// inclusive tick indices.
type Segment struct {
	Key   string `json:"key"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the number of ticks in s.
func (s Segment) Len() int { return s.End - s.Start + 1 }

// KeyFunc maps a tick to its segment key.
type KeyFunc func(time.Time) string

// Segment keys.
var (
	ByYear  KeyFunc = func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }
	ByMonth KeyFunc = func(t time.Time) string { return fmt.Sprintf("%04d-%02d", t.Year(), t.Month()) }
	ByDay   KeyFunc = func(t time.Time) string {
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
	}
)

// Segments groups ticks into consecutive runs of equal key.
func Segments(ticks []time.Time, key KeyFunc) []Segment {
	var out []Segment
	for i, t := range ticks {
		k := key(t)
		if n := len(out); n > 0 && out[n-1].Key == k {
			out[n-1].End = i
			continue
		}
		out = append(out, Segment{Key: k, Start: i, End: i})
	}
	return out
}
