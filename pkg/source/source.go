// Package source loads and persists task sets.
//
// [local.File] keeps tasks in a JSON, YAML or TOML file; [mongo.Store]
// keeps them in a MongoDB collection. Both implement [Store], so the CLI
// and the HTTP server can switch backends with a flag.
//
// [local.File]: github.com/matzehuels/stackgantt/pkg/source/local.File
// [mongo.Store]: github.com/matzehuels/stackgantt/pkg/source/mongo.Store
package source

import (
	"context"

	"github.com/matzehuels/stackgantt/pkg/task"
)

// Source yields a validated task snapshot.
type Source interface {
	// Name describes the source for logs, e.g. a file path.
	Name() string
	Load(ctx context.Context) (task.Snapshot, error)
}

// Store is a Source that can be written back.
type Store interface {
	Source
	// Save replaces the stored set with snap.
	Save(ctx context.Context, snap task.Snapshot) error
	// Delete removes one task. Deleting a missing task is not an error.
	Delete(ctx context.Context, id string) error
}
