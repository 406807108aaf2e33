package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/render/deps"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/sink"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Render generates gantt artifacts from a layout in the requested formats.
func Render(l Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderGantt(l, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderGantt(l Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l.Chart, l.Header, opts.svgOptions()...), nil
	case FormatJSON:
		return sink.RenderJSON(l.Chart, l.Header,
			sink.WithJSONLocale(opts.Locale),
			sink.WithJSONSelected(opts.Selected))
	case FormatPDF:
		return sink.RenderPDF(l.Chart, l.Header, sink.WithPDFSVGOptions(opts.svgOptions()...))
	case FormatPNG:
		return sink.RenderPNG(l.Chart, l.Header,
			sink.WithPNGSVGOptions(opts.svgOptions()...),
			sink.WithScale(opts.Scale))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported gantt format: %s", format)
}

// RenderDeps generates dependency graph artifacts for snap.
func RenderDeps(ctx context.Context, snap task.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	dot := deps.ToDOT(snap, deps.Options{Detailed: opts.Detailed, LeftToRight: true})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = deps.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = deps.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = deps.RenderPDF(ctx, dot)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported deps format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// MarshalLayout serializes a layout for caching.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout restores a cached layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}
