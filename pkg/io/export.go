package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Write encodes tasks in format f. The output can be read back with
// [Read].
func Write(w io.Writer, tasks []task.Task, f Format) error {
	out := file{Tasks: make([]record, len(tasks))}
	for i, t := range tasks {
		out.Tasks[i] = fromTask(t)
	}

	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(out); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(out)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown task file format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// Export writes the snapshot's tasks to path in the format named by its
// extension.
func Export(snap task.Snapshot, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(fh, snap.Tasks(), f); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
