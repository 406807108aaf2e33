// Package pkg provides the libraries behind stackgantt.
//
// # Overview
//
// Stackgantt lays task sets out on a calendar timeline. The pkg directory
// is organized into these areas:
//
//  1. [task] - Tasks, snapshots, view modes and the edit dispatcher
//  2. [io] and [source] - Reading and writing task sets (files, MongoDB)
//  3. render/gantt - Ticks, calendar header, chart geometry and sinks
//  4. [render/deps] - Dependency graphs through Graphviz
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//  6. [cache], [datefmt], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
//	Task file / MongoDB
//	         ↓
//	    [source] (load a task.Snapshot)
//	         ↓
//	    [render/gantt/ticks] (column dates for the view mode)
//	         ↓
//	    [render/gantt/calendar] + [render/gantt/chart] (geometry)
//	         ↓
//	    [render/gantt/sink] (SVG, JSON; PDF and PNG via rsvg-convert)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stackgantt/pkg/pipeline"
//	    "github.com/matzehuels/stackgantt/pkg/source/local"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	snap, _ := runner.Load(ctx, local.New("tasks.yaml", nil))
//	result, _ := runner.Execute(ctx, snap, pipeline.Options{
//	    ViewMode: "Week",
//	    Locale:   "de-DE",
//	    Formats:  []string{"svg", "json"},
//	})
//
// [task]: github.com/matzehuels/stackgantt/pkg/task
// [io]: github.com/matzehuels/stackgantt/pkg/io
// [source]: github.com/matzehuels/stackgantt/pkg/source
// [render/gantt/ticks]: github.com/matzehuels/stackgantt/pkg/render/gantt/ticks
// [render/gantt/calendar]: github.com/matzehuels/stackgantt/pkg/render/gantt/calendar
// [render/gantt/chart]: github.com/matzehuels/stackgantt/pkg/render/gantt/chart
// [render/gantt/sink]: github.com/matzehuels/stackgantt/pkg/render/gantt/sink
// [render/deps]: github.com/matzehuels/stackgantt/pkg/render/deps
// [pipeline]: github.com/matzehuels/stackgantt/pkg/pipeline
// [cache]: github.com/matzehuels/stackgantt/pkg/cache
// [datefmt]: github.com/matzehuels/stackgantt/pkg/datefmt
// [errors]: github.com/matzehuels/stackgantt/pkg/errors
// [observability]: github.com/matzehuels/stackgantt/pkg/observability
package pkg
