// Package io reads and writes task files.
//
// A task file holds one top-level "tasks" list. JSON, YAML and TOML are
// supported and picked by file extension:
//
//	tasks:
//	  - id: design
//	    name: Design
//	    start: 2024-03-01
//	    end: 2024-03-04
//	    progress: 40
//	  - id: build
//	    name: Build
//	    start: 2024-03-04T09:00:00+01:00
//	    end: 2024-03-10
//	    dependencies: [design]
//
// Dates are RFC 3339 timestamps, or "2006-01-02" / "2006-01-02T15:04:05"
// without a zone, which are read in the location passed to [Read].
// TOML native dates and datetimes are accepted as well.
//
// [Import] validates the result into a [task.Snapshot], so references and
// project cycles are rejected at load time.
package io
