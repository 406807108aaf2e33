package deps

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackgantt/pkg/errors"
	"github.com/matzehuels/stackgantt/pkg/render"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed adds dates and progress to node labels.
	Detailed bool
	// LeftToRight lays the graph out horizontally, the way a gantt chart
	// reads. The default is top to bottom.
	LeftToRight bool
}

// ToDOT converts the task snapshot to Graphviz DOT. Each dependency
// becomes an edge from the predecessor to the dependent task, and
// project children are grouped in a cluster per project.
func ToDOT(snap task.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.LeftToRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeGroup(&buf, snap, "", "  ", opts)

	buf.WriteString("\n")
	for _, t := range snap.Tasks() {
		for _, dep := range t.Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dep, t.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeGroup writes the tasks whose project is parent, recursing into
// projects as clusters.
func writeGroup(buf *bytes.Buffer, snap task.Snapshot, parent, indent string, opts Options) {
	for _, t := range snap.Tasks() {
		if t.Project != parent {
			continue
		}
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, t.ID, strings.Join(fmtAttrs(t, opts.Detailed), ", "))
		if !t.IsProject() || len(snap.Children(t.ID)) == 0 {
			continue
		}
		fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+t.ID)
		fmt.Fprintf(buf, "%s  label=%q;\n%s  style=\"rounded,dashed\";\n", indent, t.Name, indent)
		writeGroup(buf, snap, t.ID, indent+"  ", opts)
		fmt.Fprintf(buf, "%s}\n", indent)
	}
}

func fmtLabel(t task.Task, detailed bool) string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	if !detailed {
		return name
	}
	parts := []string{
		name,
		t.Start.Format("2006-01-02") + " → " + t.End.Format("2006-01-02"),
	}
	if !t.IsMilestone() {
		parts = append(parts, fmt.Sprintf("%.0f%%", t.Progress))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(t task.Task, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(t, detailed))}
	switch {
	case t.IsMilestone():
		attrs = append(attrs, "shape=diamond", "fillcolor=\"#f1c453\"")
	case t.IsProject():
		attrs = append(attrs, "fillcolor=\"#fac465\"")
	}
	if t.IsDisabled {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
