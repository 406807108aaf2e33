// Package task defines the chart's input model and the edit protocol around it.
//
// # Tasks
//
// A [Task] is one row of the chart: an id, a name, a start and end date,
// progress in percent and a [Type]. Tasks of type [TypeProject] group other
// tasks through their Project field; [Task.Dependencies] lists the ids a
// task waits on and is drawn as arrows.
//
// # Snapshots
//
// Tasks are held in an immutable [Snapshot]. Every edit returns a new
// snapshot and leaves the receiver untouched, so readers never observe a
// half-applied change:
//
//	snap, err := task.NewSnapshot(tasks)
//	next, err := snap.Replace(edited) // snap is unchanged
//
// Replacing a task that belongs to a project recomputes the project's start
// and end from its children, walking up nested projects.
//
// # Events
//
// A [Dispatcher] owns the current snapshot for a host and turns user
// actions into edits. Each action is reported to the matching callback in
// [Handlers]; date and progress callbacks may veto the edit by returning
// false.
//
// Deleting is a two-step protocol. [Dispatcher.RequestDelete] issues a
// [DeleteRequest] carrying a one-time token; the task is removed only when
// [Dispatcher.ResolveDelete] receives that request with an affirmative
// answer. A declined request is a no-op and not an error.
//
// # View Modes
//
// [ViewMode] names the timeline granularity, from [ViewHour] to [ViewYear].
// [ParseViewMode] accepts the display names case-insensitively and ignores
// spaces, dashes and underscores ("quarter-day", "QuarterDay", "Quarter Day").
package task
