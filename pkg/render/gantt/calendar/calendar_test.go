package calendar

import (
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/task"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func series(start time.Time, n int, step func(time.Time) time.Time) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start
		start = step(start)
	}
	return out
}

func days(start time.Time, n int) []time.Time {
	return series(start, n, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
}

func hours(start time.Time, n int, every int) []time.Time {
	return series(start, n, func(t time.Time) time.Time { return t.Add(time.Duration(every) * time.Hour) })
}

func months(start time.Time, n int) []time.Time {
	return series(start, n, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
}

func baseConfig(mode task.ViewMode) Config {
	return Config{
		ViewMode:     mode,
		ColumnWidth:  60,
		HeaderHeight: 50,
		Locale:       "en-US",
		Formatters:   datefmt.NewCache(),
		Now:          func() time.Time { return at(1999, time.January, 1, 0) },
	}
}

func texts(ls []Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Text
	}
	return out
}

func topTexts(h Header) []string {
	out := make([]string, len(h.Top))
	for i, p := range h.Top {
		out[i] = p.Label.Text
	}
	return out
}

func TestColumnAlignment(t *testing.T) {
	gens := map[task.ViewMode]func(int) []time.Time{
		task.ViewDay:   func(n int) []time.Time { return days(at(2024, time.January, 20, 0), n) },
		task.ViewHour:  func(n int) []time.Time { return hours(at(2024, time.January, 1, 20), n, 1) },
		task.ViewMonth: func(n int) []time.Time { return months(at(2023, time.October, 1, 0), n) },
	}

	for mode, gen := range gens {
		for _, n := range []int{1, 2, 30} {
			for _, rtl := range []bool{false, true} {
				cfg := baseConfig(mode)
				cfg.RTL = rtl
				h := Layout(gen(n), cfg)

				if len(h.Bottom) != n {
					t.Fatalf("%s n=%d: %d bottom labels", mode, n, len(h.Bottom))
				}
				if h.Width != 60*float64(n) {
					t.Fatalf("%s n=%d: width %v", mode, n, h.Width)
				}
				for i, l := range h.Bottom {
					want := 60 * (float64(i) + 0.5)
					if rtl {
						want = h.Width - want
					}
					if l.X != want || l.Y != 37.5 || l.Anchor != AnchorMiddle {
						t.Errorf("%s n=%d rtl=%v: bottom[%d] at (%v, %v %s), want x=%v",
							mode, n, rtl, i, l.X, l.Y, l.Anchor, want)
					}
				}
			}
		}
	}
}

// randomTicks returns a strictly increasing sequence with irregular gaps
// that cross day, month and year boundaries.
func randomTicks(r *rand.Rand) []time.Time {
	n := 1 + r.Intn(80)
	t := at(2019+r.Intn(6), time.Month(1+r.Intn(12)), 1+r.Intn(28), r.Intn(24))
	steps := []time.Duration{time.Hour, 6 * time.Hour, 24 * time.Hour, 7 * 24 * time.Hour, 40 * 24 * time.Hour, 200 * 24 * time.Hour}
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t
		t = t.Add(steps[r.Intn(len(steps))] + time.Duration(r.Intn(3))*time.Hour)
	}
	return out
}

func segmentKey(mode task.ViewMode) KeyFunc {
	switch mode {
	case task.ViewYear, task.ViewQuarterYear, task.ViewMonth:
		return ByYear
	case task.ViewWeek, task.ViewDay:
		return ByMonth
	default:
		return ByDay
	}
}

func TestSegmentPartition(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 300; iter++ {
		ticks := randomTicks(r)
		for _, mode := range task.ViewModes() {
			h := Layout(ticks, baseConfig(mode))
			segs := h.Segments
			key := segmentKey(mode)

			if len(segs) == 0 || segs[0].Start != 0 || segs[len(segs)-1].End != len(ticks)-1 {
				t.Fatalf("%s: segments %v do not span %d ticks", mode, segs, len(ticks))
			}
			for k, s := range segs {
				if s.Start > s.End {
					t.Fatalf("%s: empty segment %v", mode, s)
				}
				if k > 0 {
					if s.Start != segs[k-1].End+1 {
						t.Fatalf("%s: gap or overlap between %v and %v", mode, segs[k-1], s)
					}
					if s.Key == segs[k-1].Key {
						t.Fatalf("%s: adjacent segments share key %q", mode, s.Key)
					}
				}
				for i := s.Start; i <= s.End; i++ {
					if key(ticks[i]) != s.Key {
						t.Fatalf("%s: tick %d (%s) in segment %q", mode, i, ticks[i], s.Key)
					}
				}
			}
			for _, p := range h.Top {
				if p.Segment < 0 || p.Segment >= len(segs) {
					t.Fatalf("%s: top part references segment %d of %d", mode, p.Segment, len(segs))
				}
				if p.Marker != nil {
					cols := p.Marker.X / 60
					if cols != math.Trunc(cols) {
						t.Fatalf("%s: marker at %v is not on a column boundary", mode, p.Marker.X)
					}
				}
			}
		}
	}
}

func TestRTLMirror(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		ticks := randomTicks(r)
		for _, mode := range task.ViewModes() {
			ltrCfg := baseConfig(mode)
			ltrCfg.TodayColor = "#fc0"
			ltrCfg.Now = func() time.Time { return ticks[len(ticks)/2] }
			rtlCfg := ltrCfg
			rtlCfg.RTL = true

			ltr, rtl := Layout(ticks, ltrCfg), Layout(ticks, rtlCfg)

			want := ltr.Markers()
			for i := range want {
				want[i] = ltr.Width - want[i]
			}
			got := rtl.Markers()
			slices.Sort(want)
			slices.Sort(got)
			if !slices.Equal(got, want) {
				t.Fatalf("%s: rtl markers %v, want %v", mode, got, want)
			}
			for i := range ltr.Top {
				if rtl.Top[i].Label.X != ltr.Width-ltr.Top[i].Label.X {
					t.Fatalf("%s: top label %d not mirrored", mode, i)
				}
			}
			for i := range ltr.Highlights {
				lh, rh := ltr.Highlights[i], rtl.Highlights[i]
				if rh.X != ltr.Width-lh.X-lh.Width {
					t.Fatalf("%s: highlight at %v, want %v", mode, rh.X, ltr.Width-lh.X-lh.Width)
				}
			}
		}
	}
}

func TestTodayHighlight(t *testing.T) {
	ticks := days(at(2024, time.January, 30, 0), 4)
	now := func() time.Time { return at(2024, time.January, 31, 15) }

	cfg := baseConfig(task.ViewDay)
	cfg.Now = now
	cfg.TodayColor = "#f7bb53"

	h := Layout(ticks, cfg)
	if len(h.Highlights) != 1 {
		t.Fatalf("highlights = %v, want exactly one", h.Highlights)
	}
	want := Highlight{X: 60, Y: 25, Width: 60, Height: 25, Fill: "#f7bb53"}
	if h.Highlights[0] != want {
		t.Errorf("highlight = %+v, want %+v", h.Highlights[0], want)
	}
	for i, l := range h.Bottom {
		if l.Bold != (i == 1) {
			t.Errorf("bottom[%d].Bold = %v", i, l.Bold)
		}
	}

	cfg.TodayColor = ""
	h = Layout(ticks, cfg)
	if len(h.Highlights) != 0 {
		t.Errorf("highlights without color = %v", h.Highlights)
	}
	for i, l := range h.Bottom {
		if l.Bold {
			t.Errorf("bottom[%d] bold without color", i)
		}
	}

	cfg.TodayColor = "#f7bb53"
	cfg.ViewMode = task.ViewMonth
	if h := Layout(ticks, cfg); len(h.Highlights) != 0 {
		t.Errorf("Month mode should never highlight, got %v", h.Highlights)
	}
}

func TestTodayHighlightUsesTickLocation(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*3600)
	ticks := days(time.Date(2024, time.January, 30, 0, 0, 0, 0, sydney), 4)

	cfg := baseConfig(task.ViewDay)
	cfg.TodayColor = "red"
	cfg.Now = func() time.Time { return at(2024, time.January, 30, 20) } // Jan 31 06:00 in AEST

	h := Layout(ticks, cfg)
	if len(h.Highlights) != 1 || h.Highlights[0].X != 60 {
		t.Errorf("highlights = %+v, want one at x=60", h.Highlights)
	}
}

func TestCustomFormatterOverride(t *testing.T) {
	cases := []struct {
		name     string
		mode     task.ViewMode
		sentinel string
		ticks    []time.Time
		texts    func(Header) []string
	}{
		{"Month", task.ViewMonth, "<M>", months(at(2023, time.October, 1, 0), 8), func(h Header) []string { return texts(h.Bottom) }},
		{"Day", task.ViewDay, "<M>", days(at(2024, time.January, 25, 0), 40), topTexts},
		// Jan 31 is a one-column segment far narrower than the label.
		{"Day/one-tick segment", task.ViewDay, "SENTINEL-MONTH-LABEL", days(at(2024, time.January, 31, 0), 5), topTexts},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sentinel := tc.sentinel
			plainCfg := baseConfig(tc.mode)
			customCfg := plainCfg
			customCfg.Formatter = &datefmt.DateFormatter{
				FormatMonth: func(time.Time, string) string { return sentinel },
			}

			plain, got := Layout(tc.ticks, plainCfg), Layout(tc.ticks, customCfg)

			for i, s := range tc.texts(got) {
				if s != sentinel {
					t.Errorf("label %d = %q, want %q", i, s, sentinel)
				}
			}
			if !slices.Equal(plain.Markers(), got.Markers()) {
				t.Errorf("markers moved: %v vs %v", plain.Markers(), got.Markers())
			}
			if !slices.Equal(plain.Segments, got.Segments) {
				t.Errorf("segments changed")
			}
			for i := range plain.Top {
				if plain.Top[i].Label.X != got.Top[i].Label.X {
					t.Errorf("top label %d moved", i)
				}
			}
			for i := range plain.Bottom {
				if plain.Bottom[i].X != got.Bottom[i].X {
					t.Errorf("bottom label %d moved", i)
				}
			}
		})
	}
}

func TestEmptyTicks(t *testing.T) {
	for _, mode := range task.ViewModes() {
		h := Layout(nil, baseConfig(mode))
		if h.Width != 0 || len(h.Bottom) != 0 || len(h.Top) != 0 || len(h.Segments) != 0 {
			t.Errorf("%s: non-empty header for no ticks: %+v", mode, h)
		}
		if h.ViewMode != mode {
			t.Errorf("%s: header mode %q", mode, h.ViewMode)
		}
	}
}

func TestInjectedFormatterCache(t *testing.T) {
	cfg := baseConfig(task.ViewDay)
	cache := datefmt.NewCache()
	cfg.Formatters = cache

	Layout(days(at(2024, time.January, 1, 0), 3), cfg)
	if cache.Len() == 0 {
		t.Error("layout did not use the injected formatter cache")
	}
}

func TestDefaults(t *testing.T) {
	h := Layout(days(at(2024, time.January, 1, 0), 2), Config{ViewMode: task.ViewDay})
	if h.Width != 2*DefaultColumnWidth || h.Height != DefaultHeaderHeight {
		t.Errorf("defaults not applied: width %v height %v", h.Width, h.Height)
	}
	if h.Bottom[0].Text != "Mon, 1" {
		t.Errorf("default locale label = %q", h.Bottom[0].Text)
	}
}

func TestForUnknownMode(t *testing.T) {
	if _, ok := For("Fortnight").(dayLayout); !ok {
		t.Error("unknown mode should fall back to the day layout")
	}
}
