package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stackgantt/pkg/observability"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Load reads and validates the task set from src.
func (r *Runner) Load(ctx context.Context, src source.Source) (task.Snapshot, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()

	snap, err := src.Load(ctx)
	hooks.OnLoadComplete(ctx, src.Name(), snap.Len(), time.Since(start), err)
	if err != nil {
		return task.Snapshot{}, err
	}

	r.Logger.Debug("loaded tasks", "source", src.Name(), "tasks", snap.Len(), "duration", time.Since(start))
	return snap, nil
}
