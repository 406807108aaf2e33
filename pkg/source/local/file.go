// Package local stores tasks in a file on disk.
package local

import (
	"context"
	"time"

	gio "github.com/matzehuels/stackgantt/pkg/io"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// File is a task file. The format follows the extension.
type File struct {
	Path string
	// Location resolves zone-less dates. Nil means UTC.
	Location *time.Location
}

// New returns a File store for path.
func New(path string, loc *time.Location) *File {
	return &File{Path: path, Location: loc}
}

func (f *File) Name() string { return f.Path }

// Load reads and validates the file.
func (f *File) Load(ctx context.Context) (task.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return task.Snapshot{}, err
	}
	return gio.Import(f.Path, f.Location)
}

// Save rewrites the whole file.
func (f *File) Save(ctx context.Context, snap task.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return gio.Export(snap, f.Path)
}

// Delete loads the file, removes id and writes it back.
func (f *File) Delete(ctx context.Context, id string) error {
	snap, err := f.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := snap.Get(id); !ok {
		return nil
	}
	if snap, err = snap.Remove(id); err != nil {
		return err
	}
	return f.Save(ctx, snap)
}

var _ source.Store = (*File)(nil)
