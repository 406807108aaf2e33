// Package sink writes a computed gantt chart and calendar header to
// output formats.
//
// SVG is produced directly. PDF and PNG go through SVG and the
// rsvg-convert tool (see [render.ToPDF]). JSON exports the raw geometry
// so another front end can draw it.
//
// All renderers are pure functions of their inputs and safe for
// concurrent use.
package sink
