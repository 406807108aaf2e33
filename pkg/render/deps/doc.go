// Package deps draws the task dependency graph as a node-link diagram.
//
// [ToDOT] produces Graphviz DOT text; [RenderSVG] lays it out with the
// embedded Graphviz build from go-graphviz, so no system install is
// needed for SVG. PDF and PNG additionally require rsvg-convert.
package deps
