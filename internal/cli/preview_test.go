package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

func previewFixture(t *testing.T) task.Snapshot {
	t.Helper()
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	snap, err := task.NewSnapshot([]task.Task{
		{ID: "p", Name: "Launch", Type: task.TypeProject, Start: d(1), End: d(10)},
		{ID: "a", Name: "Design", Type: task.TypeTask, Project: "p", Start: d(1), End: d(4), Progress: 40},
		{ID: "b", Name: "Build", Type: task.TypeTask, Project: "p", Start: d(4), End: d(10)},
		{ID: "m", Name: "Ship", Type: task.TypeMilestone, Start: d(10), End: d(10)},
	})
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

// previewStore is an in-memory store for the preview model.
type previewStore struct{ saved []task.Snapshot }

func (s *previewStore) Name() string { return "memory" }
func (s *previewStore) Load(context.Context) (task.Snapshot, error) {
	return s.saved[len(s.saved)-1], nil
}
func (s *previewStore) Save(_ context.Context, snap task.Snapshot) error {
	s.saved = append(s.saved, snap)
	return nil
}
func (s *previewStore) Delete(context.Context, string) error { return nil }

func newTestPreview(t *testing.T, store *previewStore) previewModel {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	var st source.Store
	if store != nil {
		st = store
	}
	m := newPreviewModel(context.Background(), previewFixture(t), st, pipeline.Options{Now: now})
	if m.err != nil {
		t.Fatalf("newPreviewModel: %v", m.err)
	}
	return m
}

// press feeds keys to the model in order.
func press(t *testing.T, m previewModel, keys ...string) (previewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(previewModel), c
	}
	return m, cmd
}

func TestPreviewNavigation(t *testing.T) {
	m := newTestPreview(t, nil)
	if len(m.layout.Chart.Bars) != 4 {
		t.Fatalf("bars = %d, want 4", len(m.layout.Chart.Bars))
	}

	m, _ = press(t, m, "j", "down", "j", "j", "j")
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3 (clamped)", m.cursor)
	}
	m, _ = press(t, m, "k", "up", "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", m.cursor)
	}
}

func TestPreviewExpander(t *testing.T) {
	m := newTestPreview(t, nil)

	m, _ = press(t, m, "e")
	if got := len(m.layout.Chart.Bars); got != 2 {
		t.Errorf("collapsed bars = %d, want 2", got)
	}
	if !m.dirty {
		t.Error("collapse should mark the model dirty")
	}

	m, _ = press(t, m, " ")
	if got := len(m.layout.Chart.Bars); got != 4 {
		t.Errorf("expanded bars = %d, want 4", got)
	}

	// e on a plain task is ignored.
	m, _ = press(t, m, "j", "e")
	if got := len(m.layout.Chart.Bars); got != 4 {
		t.Errorf("bars = %d, want 4", got)
	}
}

func TestPreviewEdits(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, snap task.Snapshot)
	}{
		{
			name: "progress up",
			keys: []string{"j", "+"},
			check: func(t *testing.T, snap task.Snapshot) {
				if a, _ := snap.Get("a"); a.Progress != 50 {
					t.Errorf("progress = %v, want 50", a.Progress)
				}
			},
		},
		{
			name: "progress clamps at zero",
			keys: []string{"j", "-", "-", "-", "-", "-"},
			check: func(t *testing.T, snap task.Snapshot) {
				if a, _ := snap.Get("a"); a.Progress != 0 {
					t.Errorf("progress = %v, want 0", a.Progress)
				}
			},
		},
		{
			name: "shift later",
			keys: []string{"j", "j", "l"},
			check: func(t *testing.T, snap task.Snapshot) {
				b, _ := snap.Get("b")
				if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !b.Start.Equal(want) {
					t.Errorf("start = %v, want %v", b.Start, want)
				}
			},
		},
		{
			name: "shift earlier",
			keys: []string{"j", "h"},
			check: func(t *testing.T, snap task.Snapshot) {
				a, _ := snap.Get("a")
				if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !a.Start.Equal(want) {
					t.Errorf("start = %v, want %v", a.Start, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(t, newTestPreview(t, nil), tt.keys...)
			if m.err != nil {
				t.Fatalf("err = %v", m.err)
			}
			tt.check(t, m.dispatcher.Snapshot())
		})
	}
}

func TestPreviewSelect(t *testing.T) {
	m := newTestPreview(t, nil)
	m, _ = press(t, m, "j", "enter")
	if got := m.dispatcher.Selected(); got != "a" {
		t.Errorf("selected = %q, want a", got)
	}
	if !strings.Contains(m.View(), "Design *") {
		t.Error("view should mark the selected task")
	}
	m, _ = press(t, m, "enter")
	if got := m.dispatcher.Selected(); got != "" {
		t.Errorf("selected = %q, want none", got)
	}
}

func TestPreviewDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		m, _ := press(t, newTestPreview(t, nil), "j", "j", "j", "d")
		if m.pending == nil {
			t.Fatal("d should ask for confirmation")
		}
		if !strings.Contains(m.View(), `Delete "Ship"?`) {
			t.Error("view should show the prompt")
		}
		m, _ = press(t, m, "n")
		if m.pending != nil || m.dispatcher.Snapshot().Len() != 4 {
			t.Error("declined delete should keep the task")
		}
	})

	t.Run("other keys wait", func(t *testing.T) {
		m, _ := press(t, newTestPreview(t, nil), "d", "j")
		if m.pending == nil || m.cursor != 0 {
			t.Error("keys other than y/n should be ignored while asking")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		m, _ := press(t, newTestPreview(t, nil), "j", "j", "d", "y")
		snap := m.dispatcher.Snapshot()
		if _, ok := snap.Get("b"); ok {
			t.Error("confirmed delete should remove the task")
		}
		if len(m.layout.Chart.Bars) != 3 {
			t.Errorf("bars = %d, want 3", len(m.layout.Chart.Bars))
		}
		if !m.dirty {
			t.Error("delete should mark the model dirty")
		}
	})
}

func TestPreviewViewCycle(t *testing.T) {
	m := newTestPreview(t, nil)
	m, _ = press(t, m, "v")
	if m.layout.ViewMode != task.ViewWeek {
		t.Errorf("view = %s, want Week", m.layout.ViewMode)
	}
	m, _ = press(t, m, "V", "V")
	if m.layout.ViewMode != task.ViewHalfDay {
		t.Errorf("view = %s, want Half Day", m.layout.ViewMode)
	}
}

func TestPreviewSaveAndQuit(t *testing.T) {
	store := &previewStore{}
	m := newTestPreview(t, store)

	m, cmd := press(t, m, "j", "+", "q")
	if cmd != nil {
		t.Fatal("q with unsaved changes should not quit")
	}
	if !strings.Contains(m.status, "unsaved") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = press(t, m, "w")
	if m.dirty || len(store.saved) != 1 {
		t.Fatalf("save: dirty=%v saves=%d", m.dirty, len(store.saved))
	}
	if a, _ := store.saved[0].Get("a"); a.Progress != 50 {
		t.Errorf("saved progress = %v, want 50", a.Progress)
	}

	_, cmd = press(t, m, "q")
	if cmd == nil {
		t.Fatal("q after save should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
}

func TestHeaderStrip(t *testing.T) {
	h := calendar.Header{
		Top: []calendar.TopPart{
			{Label: calendar.Label{Text: "March"}, Segment: 0},
			{Label: calendar.Label{Text: "April"}, Segment: 1},
		},
		Bottom: []calendar.Label{{Text: "30"}, {Text: "31"}, {Text: "1"}},
		Segments: []calendar.Segment{
			{Key: "2024-03", Start: 0, End: 1},
			{Key: "2024-04", Start: 2, End: 2},
		},
	}
	top, bottom := headerStrip(h, 6)
	if top != "│Ma…│…" {
		t.Errorf("top = %q", top)
	}
	if bottom != "30311 " {
		t.Errorf("bottom = %q", bottom)
	}
}

func TestTimeline(t *testing.T) {
	tests := []struct {
		name string
		bar  chart.Bar
		want string
	}{
		{
			name: "half done task",
			bar:  chart.Bar{Type: task.TypeTask, X1: 10, X2: 30, Progress: 50},
			want: "··▓▓░░··",
		},
		{
			name: "project",
			bar:  chart.Bar{Type: task.TypeProject, X1: 0, X2: 20, Progress: 100},
			want: "━━━━····",
		},
		{
			name: "milestone",
			bar:  chart.Bar{Type: task.TypeMilestone, X1: 20, X2: 20},
			want: "····◆···",
		},
		{
			name: "clipped",
			bar:  chart.Bar{Type: task.TypeTask, X1: 30, X2: 60},
			want: "······░░",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeline(tt.bar, 10, 8); got != tt.want {
				t.Errorf("timeline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFitCells(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 4, "abc…"},
		{"März", 4, "März"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := fitCells(tt.in, tt.w); got != tt.want {
			t.Errorf("fitCells(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(4, 2, true)
	for _, want := range []string{"4 tasks", "2 rows", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine missing %q: %q", want, line)
		}
	}
	if line := statsLine(3, 3, false); strings.Contains(line, "rows") || !strings.Contains(line, iconFresh) {
		t.Errorf("statsLine(3, 3, false) = %q", line)
	}
}
