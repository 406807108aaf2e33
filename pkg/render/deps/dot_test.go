package deps

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stackgantt/pkg/task"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func snapshot(t *testing.T) task.Snapshot {
	t.Helper()
	s, err := task.NewSnapshot([]task.Task{
		{ID: "p", Name: "Launch", Type: task.TypeProject, Start: day(1), End: day(10)},
		{ID: "a", Name: "Design", Project: "p", Start: day(1), End: day(4), Progress: 40},
		{ID: "b", Name: "Build", Project: "p", Start: day(4), End: day(10), Dependencies: []string{"a"}},
		{ID: "m", Name: "Go live", Type: task.TypeMilestone, Start: day(10), End: day(10), Dependencies: []string{"b"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(snapshot(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"a" -> "b";`,
		`"b" -> "m";`,
		`subgraph "cluster_p" {`,
		`"m" [label="Go live", shape=diamond`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	cluster := dot[strings.Index(dot, "subgraph"):]
	cluster = cluster[:strings.Index(cluster, "\n  }")]
	if !strings.Contains(cluster, `"a" [`) || strings.Contains(cluster, `"m" [`) {
		t.Errorf("cluster should hold only project children:\n%s", cluster)
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(snapshot(t), Options{Detailed: true, LeftToRight: true})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("expected horizontal layout")
	}
	if !strings.Contains(dot, `Design\n2024-03-01 → 2024-03-04\n40%`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestFmtAttrsDisabled(t *testing.T) {
	attrs := strings.Join(fmtAttrs(task.Task{ID: "x", IsDisabled: true}, false), ",")
	if !strings.Contains(attrs, "dashed") || !strings.Contains(attrs, `label="x"`) {
		t.Errorf("attrs = %s", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("got %s", out)
	}

	bare := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(bare); string(got) != string(bare) {
		t.Errorf("without viewBox should pass through, got %s", got)
	}
}
