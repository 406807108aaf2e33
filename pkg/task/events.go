package task

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackgantt/pkg/errors"
)

// Handlers are the host callbacks fired by a Dispatcher. All are optional.
// OnDateChange and OnProgressChange receive the edited task and its direct
// children and veto the edit by returning false.
type Handlers struct {
	OnDateChange     func(t Task, children []Task) bool
	OnProgressChange func(t Task, children []Task) bool
	OnDelete         func(t Task)
	OnDoubleClick    func(t Task)
	OnClick          func(t Task)
	OnSelect         func(t Task, selected bool)
	OnExpanderClick  func(t Task)

	// ConfirmDelete answers delete requests made through Dispatcher.Delete.
	// Nil confirms every request.
	ConfirmDelete func(t Task) bool
}

// DeleteRequest is the first half of the delete protocol.
type DeleteRequest struct {
	Token    string    `json:"token"`
	TaskID   string    `json:"task_id"`
	Task     Task      `json:"task"`
	IssuedAt time.Time `json:"issued_at"`
}

// Dispatcher owns the current snapshot for a host and applies edits to it.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.Mutex
	snap     Snapshot
	gen      uint64 // bumped on every snapshot change
	handlers Handlers
	pending  map[string]DeleteRequest
	selected string
	now      func() time.Time
}

// NewDispatcher creates a dispatcher starting from snap.
func NewDispatcher(snap Snapshot, h Handlers) *Dispatcher {
	return &Dispatcher{
		snap:     snap,
		handlers: h,
		pending:  make(map[string]DeleteRequest),
		now:      time.Now,
	}
}

// Snapshot returns the current snapshot.
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Load swaps in a new snapshot and drops outstanding delete requests.
func (d *Dispatcher) Load(snap Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commit(snap)
	clear(d.pending)
	d.selected = ""
}

// Selected returns the id of the selected task, or "".
func (d *Dispatcher) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// ChangeDates moves or resizes task id.
func (d *Dispatcher) ChangeDates(id string, start, end time.Time) (Snapshot, error) {
	return d.edit(id, func(t *Task) {
		t.Start, t.End = start, end
	}, d.handlers.OnDateChange)
}

// ChangeProgress sets the progress of task id.
func (d *Dispatcher) ChangeProgress(id string, progress float64) (Snapshot, error) {
	return d.edit(id, func(t *Task) {
		t.Progress = progress
	}, d.handlers.OnProgressChange)
}

// Edit applies several changes to task id as one edit. OnDateChange is
// asked when the dates move and OnProgressChange when the progress does;
// the snapshot is replaced only if the task stays valid and no handler
// vetoes.
func (d *Dispatcher) Edit(id string, apply func(*Task)) (Snapshot, error) {
	var vetoes []func(Task, []Task) bool
	return d.edit(id, func(t *Task) {
		before := *t
		apply(t)
		if !t.Start.Equal(before.Start) || !t.End.Equal(before.End) {
			vetoes = append(vetoes, d.handlers.OnDateChange)
		}
		if t.Progress != before.Progress {
			vetoes = append(vetoes, d.handlers.OnProgressChange)
		}
	}, func(t Task, children []Task) bool {
		for _, veto := range vetoes {
			if veto != nil && !veto(t, children) {
				return false
			}
		}
		return true
	})
}

// edit runs veto without holding the lock so handlers may read back
// through the dispatcher. An edit that raced with another mutation is
// rejected rather than applied to a snapshot the handler never saw.
func (d *Dispatcher) edit(id string, apply func(*Task), veto func(Task, []Task) bool) (Snapshot, error) {
	d.mu.Lock()
	snap, gen := d.snap, d.gen
	d.mu.Unlock()

	t, ok := snap.Get(id)
	if !ok {
		return snap, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
	}
	if t.IsDisabled {
		return snap, errors.New(errors.ErrCodeRejected, "task %q is disabled", id)
	}
	apply(&t)
	if err := t.Validate(); err != nil {
		return snap, err
	}
	next, err := snap.Replace(t)
	if err != nil {
		return snap, err
	}
	if veto != nil && !veto(t.Clone(), snap.Children(id)) {
		return snap, errors.New(errors.ErrCodeRejected, "edit of task %q rejected", id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen {
		return d.snap, errors.New(errors.ErrCodeRejected, "task %q changed during the edit", id)
	}
	d.commit(next)
	return next, nil
}

// commit installs next. Callers hold d.mu.
func (d *Dispatcher) commit(next Snapshot) {
	d.snap = next
	d.gen++
}

// Click reports a click on task id.
func (d *Dispatcher) Click(id string) error { return d.notify(id, d.handlers.OnClick) }

// DoubleClick reports a double click on task id.
func (d *Dispatcher) DoubleClick(id string) error { return d.notify(id, d.handlers.OnDoubleClick) }

func (d *Dispatcher) notify(id string, fn func(Task)) error {
	t, ok := d.Snapshot().Get(id)
	if !ok {
		return errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
	}
	if fn != nil {
		fn(t)
	}
	return nil
}

// Select makes id the selected task; "" clears the selection. The
// previously selected task, if any, is reported as deselected first.
func (d *Dispatcher) Select(id string) error {
	d.mu.Lock()
	prev := d.selected
	snap := d.snap
	if id != "" {
		if _, ok := snap.Get(id); !ok {
			d.mu.Unlock()
			return errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
		}
	}
	d.selected = id
	d.mu.Unlock()

	if prev == id || d.handlers.OnSelect == nil {
		return nil
	}
	if t, ok := snap.Get(prev); ok {
		d.handlers.OnSelect(t, false)
	}
	if t, ok := snap.Get(id); ok {
		d.handlers.OnSelect(t, true)
	}
	return nil
}

// ToggleExpander collapses or expands project id.
func (d *Dispatcher) ToggleExpander(id string) (Snapshot, error) {
	d.mu.Lock()
	next, err := d.snap.ToggleExpanded(id)
	if err != nil {
		d.mu.Unlock()
		return next, err
	}
	d.commit(next)
	d.mu.Unlock()

	if d.handlers.OnExpanderClick != nil {
		t, _ := next.Get(id)
		d.handlers.OnExpanderClick(t)
	}
	return next, nil
}

// RequestDelete issues a confirmation request for removing task id.
// Nothing changes until the request is resolved.
func (d *Dispatcher) RequestDelete(id string) (DeleteRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.snap.Get(id)
	if !ok {
		return DeleteRequest{}, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id)
	}
	req := DeleteRequest{
		Token:    uuid.NewString(),
		TaskID:   id,
		Task:     t,
		IssuedAt: d.now(),
	}
	d.pending[req.Token] = req
	return req, nil
}

// ResolveDelete completes a delete request. The task is removed only when
// confirmed is true; a declined request leaves the snapshot as it is.
// Each token resolves once.
func (d *Dispatcher) ResolveDelete(req DeleteRequest, confirmed bool) (Snapshot, error) {
	d.mu.Lock()
	pending, ok := d.pending[req.Token]
	if !ok || pending.TaskID != req.TaskID {
		d.mu.Unlock()
		return d.Snapshot(), errors.New(errors.ErrCodeInvalidConfirm, "no pending delete for token %q", req.Token)
	}
	delete(d.pending, req.Token)
	if !confirmed {
		snap := d.snap
		d.mu.Unlock()
		return snap, nil
	}
	next, err := d.snap.Remove(pending.TaskID)
	if err != nil {
		d.mu.Unlock()
		return d.snap, err
	}
	d.commit(next)
	for token, p := range d.pending {
		if p.TaskID == pending.TaskID {
			delete(d.pending, token)
		}
	}
	if d.selected == pending.TaskID {
		d.selected = ""
	}
	d.mu.Unlock()

	if d.handlers.OnDelete != nil {
		d.handlers.OnDelete(pending.Task)
	}
	return next, nil
}

// Pending looks up an unresolved delete request by token.
func (d *Dispatcher) Pending(token string) (DeleteRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	req, ok := d.pending[token]
	return req, ok
}

// Delete runs both halves of the protocol, asking Handlers.ConfirmDelete
// for the answer. It reports whether the task was removed.
func (d *Dispatcher) Delete(id string) (bool, error) {
	req, err := d.RequestDelete(id)
	if err != nil {
		return false, err
	}
	confirmed := d.handlers.ConfirmDelete == nil || d.handlers.ConfirmDelete(req.Task)
	if _, err := d.ResolveDelete(req, confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}
