package io

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Read decodes a task file from r. Zone-less dates are read in loc; a nil
// loc means UTC. The tasks are not cross-checked; use [task.NewSnapshot]
// or [Import] for that. Read does not close r.
func Read(r io.Reader, f Format, loc *time.Location) ([]task.Task, error) {
	if loc == nil {
		loc = time.UTC
	}

	var data file
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&data)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&data)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown task file format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}

	tasks := make([]task.Task, 0, len(data.Tasks))
	for _, rec := range data.Tasks {
		t, err := rec.toTask(loc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Import reads the task file at path, picking the format from its
// extension, and validates it into a snapshot.
func Import(path string, loc *time.Location) (task.Snapshot, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return task.Snapshot{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return task.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer fh.Close()

	tasks, err := Read(fh, f, loc)
	if err != nil {
		return task.Snapshot{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return task.NewSnapshot(tasks)
}
