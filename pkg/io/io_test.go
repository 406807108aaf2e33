package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/task"
)

const yamlTasks = `
tasks:
  - id: design
    name: Design
    start: 2024-03-01
    end: 2024-03-04
    progress: 40
  - id: build
    name: Build
    start: 2024-03-04T09:00:00+01:00
    end: "2024-03-10 17:30"
    dependencies: [design]
    styles:
      background: "#123456"
  - id: ship
    name: Ship
    type: milestone
    start: 2024-03-10
`

const tomlTasks = `
[[tasks]]
id = "design"
name = "Design"
start = 2024-03-01
end = 2024-03-04
progress = 40.0

[[tasks]]
id = "build"
name = "Build"
start = 2024-03-04T09:00:00+01:00
end = 2024-03-10T17:30:00
dependencies = ["design"]

  [tasks.styles]
  background = "#123456"

[[tasks]]
id = "ship"
name = "Ship"
type = "milestone"
start = "2024-03-10"
`

const jsonTasks = `{"tasks": [
  {"id": "design", "name": "Design", "start": "2024-03-01", "end": "2024-03-04", "progress": 40},
  {"id": "build", "name": "Build", "start": "2024-03-04T09:00:00+01:00", "end": "2024-03-10T17:30:00",
   "dependencies": ["design"], "styles": {"background": "#123456"}},
  {"id": "ship", "name": "Ship", "type": "milestone", "start": "2024-03-10"}
]}`

func TestRead(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml", FormatYAML, yamlTasks},
		{"toml", FormatTOML, tomlTasks},
		{"json", FormatJSON, jsonTasks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Read(strings.NewReader(tt.input), tt.format, berlin)
			if err != nil {
				t.Fatal(err)
			}
			if len(tasks) != 3 {
				t.Fatalf("got %d tasks", len(tasks))
			}

			design := tasks[0]
			if want := time.Date(2024, 3, 1, 0, 0, 0, 0, berlin); !design.Start.Equal(want) {
				t.Errorf("design start = %v, want %v", design.Start, want)
			}
			if design.Progress != 40 || design.Type != task.TypeTask {
				t.Errorf("design = %+v", design)
			}

			build := tasks[1]
			if want := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC); !build.Start.Equal(want) {
				t.Errorf("build start = %v, want %v", build.Start, want)
			}
			if want := time.Date(2024, 3, 10, 17, 30, 0, 0, berlin); !build.End.Equal(want) {
				t.Errorf("build end = %v, want %v", build.End, want)
			}
			if len(build.Dependencies) != 1 || build.Dependencies[0] != "design" {
				t.Errorf("dependencies = %v", build.Dependencies)
			}
			if build.Styles == nil || build.Styles.Background != "#123456" {
				t.Errorf("styles = %+v", build.Styles)
			}

			ship := tasks[2]
			if !ship.IsMilestone() || !ship.End.Equal(ship.Start) {
				t.Errorf("milestone without end should end at start: %+v", ship)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"tasks": [`, errors.ErrCodeInvalidFormat},
		{"bad date", FormatJSON, `{"tasks": [{"id": "a", "start": "March 1st", "end": "2024-03-02"}]}`, errors.ErrCodeInvalidTask},
		{"missing end", FormatJSON, `{"tasks": [{"id": "a", "start": "2024-03-01"}]}`, errors.ErrCodeInvalidTask},
		{"bad type", FormatYAML, "tasks:\n  - id: a\n    type: epic\n    start: 2024-03-01\n    end: 2024-03-02\n", errors.ErrCodeInvalidTask},
		{"unknown format", Format("xml"), `<tasks/>`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadEmptyYAML(t *testing.T) {
	tasks, err := Read(strings.NewReader(""), FormatYAML, nil)
	if err != nil || len(tasks) != 0 {
		t.Errorf("got %v, %v", tasks, err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	in, err := Read(strings.NewReader(jsonTasks), FormatJSON, time.UTC)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, in, f); err != nil {
				t.Fatal(err)
			}
			out, err := Read(&buf, f, time.UTC)
			if err != nil {
				t.Fatalf("re-read: %v\n%s", err, buf.String())
			}
			if len(out) != len(in) {
				t.Fatalf("got %d tasks, want %d", len(out), len(in))
			}
			for i := range in {
				if out[i].ID != in[i].ID || !out[i].Start.Equal(in[i].Start) || !out[i].End.Equal(in[i].End) {
					t.Errorf("task %d: got %+v, want %+v", i, out[i], in[i])
				}
				if out[i].Type != in[i].Type {
					t.Errorf("task %d type = %q, want %q", i, out[i].Type, in[i].Type)
				}
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tasks.yml")
	if err := os.WriteFile(src, []byte(yamlTasks), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Import(src, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 3 {
		t.Fatalf("Len = %d", snap.Len())
	}

	dst := filepath.Join(dir, "out.toml")
	if err := Export(snap, dst); err != nil {
		t.Fatal(err)
	}
	again, err := Import(dst, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if again.Len() != 3 {
		t.Errorf("re-import Len = %d", again.Len())
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Import(filepath.Join(dir, "missing.json"), nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := Import(filepath.Join(dir, "tasks"), nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("no extension: %v", err)
	}

	dangling := filepath.Join(dir, "dangling.json")
	body := `{"tasks": [{"id": "a", "start": "2024-03-01", "end": "2024-03-02", "dependencies": ["nope"]}]}`
	if err := os.WriteFile(dangling, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(dangling, nil); err == nil {
		t.Error("dangling dependency accepted")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{".YAML", FormatYAML},
		{"yml", FormatYAML},
		{".toml", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("csv accepted")
	}
}
