// Package render provides the output side of stackgantt.
//
// # Overview
//
// Rendering is split into pure layout and output sinks:
//
//   - [gantt/ticks]: the column dates of a timeline
//   - [gantt/calendar]: the two-band calendar header
//   - [gantt/chart]: bars, dependency arrows and the grid
//   - [gantt/sink]: SVG, JSON, PDF and PNG output
//   - [deps]: a task dependency diagram drawn by Graphviz
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the chart sinks and
// the dependency diagram use them.
//
//	svg := sink.RenderSVG(chart, header, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [gantt/ticks]: github.com/matzehuels/stackgantt/pkg/render/gantt/ticks
// [gantt/calendar]: github.com/matzehuels/stackgantt/pkg/render/gantt/calendar
// [gantt/chart]: github.com/matzehuels/stackgantt/pkg/render/gantt/chart
// [gantt/sink]: github.com/matzehuels/stackgantt/pkg/render/gantt/sink
// [deps]: github.com/matzehuels/stackgantt/pkg/render/deps
package render
