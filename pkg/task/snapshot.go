package task

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

// Snapshot is an immutable, ordered task collection. The zero value is an
// empty snapshot.
type Snapshot struct {
	tasks []Task
	index map[string]int
}

// NewSnapshot validates tasks and returns a snapshot holding copies of them.
// Ids must be unique and every project or dependency reference must name a
// task in the collection.
func NewSnapshot(tasks []Task) (Snapshot, error) {
	s := Snapshot{
		tasks: make([]Task, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return Snapshot{}, err
		}
		if _, dup := s.index[t.ID]; dup {
			return Snapshot{}, errors.New(errors.ErrCodeInvalidTask, "duplicate task id %q", t.ID)
		}
		s.tasks[i] = t.Clone()
		s.index[t.ID] = i
	}
	if err := s.checkReferences(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (s Snapshot) checkReferences() error {
	for _, t := range s.tasks {
		if t.Project != "" {
			if _, ok := s.index[t.Project]; !ok {
				return errors.New(errors.ErrCodeInvalidTask, "task %q: unknown project %q", t.ID, t.Project)
			}
		}
		for _, dep := range t.Dependencies {
			if _, ok := s.index[dep]; !ok {
				return errors.New(errors.ErrCodeInvalidTask, "task %q: unknown dependency %q", t.ID, dep)
			}
		}
	}
	for _, t := range s.tasks {
		seen := map[string]bool{t.ID: true}
		for p := t.Project; p != ""; p = s.tasks[s.index[p]].Project {
			if seen[p] {
				return errors.New(errors.ErrCodeInvalidTask, "task %q: project cycle through %q", t.ID, p)
			}
			seen[p] = true
		}
	}
	return nil
}

// Len returns the number of tasks.
func (s Snapshot) Len() int { return len(s.tasks) }

// Tasks returns a copy of the tasks in input order.
func (s Snapshot) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the task with the given id.
func (s Snapshot) Get(id string) (Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Children returns the direct children of project id.
func (s Snapshot) Children(id string) []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Project == id {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Bounds returns the earliest start and latest end across all tasks.
func (s Snapshot) Bounds() (start, end time.Time) {
	for i, t := range s.tasks {
		if i == 0 || t.Start.Before(start) {
			start = t.Start
		}
		if i == 0 || t.End.After(end) {
			end = t.End
		}
	}
	return start, end
}

// Replace returns a snapshot in which the task with t.ID is swapped for t.
// Enclosing projects are stretched or shrunk to span their children.
func (s Snapshot) Replace(t Task) (Snapshot, error) {
	i, ok := s.index[t.ID]
	if !ok {
		return s, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", t.ID)
	}
	if err := t.Validate(); err != nil {
		return s, err
	}
	next := s.clone()
	next.tasks[i] = t.Clone()
	if err := next.checkReferences(); err != nil {
		return s, err
	}
	next.rollup(t.Project)
	return next, nil
}

// rollup recomputes project bounds from the given project upwards.
func (s Snapshot) rollup(project string) {
	for depth := 0; project != "" && depth < len(s.tasks); depth++ {
		pi := s.index[project]
		var start, end time.Time
		n := 0
		for _, c := range s.tasks {
			if c.Project != project {
				continue
			}
			if n == 0 || c.Start.Before(start) {
				start = c.Start
			}
			if n == 0 || c.End.After(end) {
				end = c.End
			}
			n++
		}
		p := s.tasks[pi]
		if n == 0 || (p.Start.Equal(start) && p.End.Equal(end)) {
			return
		}
		p.Start, p.End = start, end
		s.tasks[pi] = p
		project = p.Project
	}
}

// Remove returns a snapshot without the task id. Children of a removed
// project are detached and dependency references to it are dropped.
func (s Snapshot) Remove(id string) (Snapshot, error) {
	i, ok := s.index[id]
	if !ok {
		return s, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
	}
	parent := s.tasks[i].Project

	next := Snapshot{
		tasks: make([]Task, 0, len(s.tasks)-1),
		index: make(map[string]int, len(s.tasks)-1),
	}
	for _, t := range s.tasks {
		if t.ID == id {
			continue
		}
		t = t.Clone()
		if t.Project == id {
			t.Project = ""
		}
		t.Dependencies = slices.DeleteFunc(t.Dependencies, func(d string) bool { return d == id })
		if len(t.Dependencies) == 0 {
			t.Dependencies = nil
		}
		next.index[t.ID] = len(next.tasks)
		next.tasks = append(next.tasks, t)
	}
	next.rollup(parent)
	return next, nil
}

// ToggleExpanded flips HideChildren on project id.
func (s Snapshot) ToggleExpanded(id string) (Snapshot, error) {
	t, ok := s.Get(id)
	if !ok {
		return s, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
	}
	next := s.clone()
	t.HideChildren = !t.HideChildren
	next.tasks[s.index[id]] = t
	return next, nil
}

// Visible returns the tasks that are not hidden under a collapsed project,
// ordered by DisplayOrder and then input order.
func (s Snapshot) Visible() []Task {
	var out []Task
	for _, t := range s.tasks {
		if s.hidden(t) {
			continue
		}
		out = append(out, t.Clone())
	}
	slices.SortStableFunc(out, func(a, b Task) int { return a.DisplayOrder - b.DisplayOrder })
	return out
}

func (s Snapshot) hidden(t Task) bool {
	for depth := 0; t.Project != "" && depth < len(s.tasks); depth++ {
		p := s.tasks[s.index[t.Project]]
		if p.HideChildren {
			return true
		}
		t = p
	}
	return false
}

// clone copies the task slice header and index; tasks are values so the
// new slice can be written without touching s.
func (s Snapshot) clone() Snapshot {
	return Snapshot{tasks: slices.Clone(s.tasks), index: maps.Clone(s.index)}
}
