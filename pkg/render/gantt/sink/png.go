package sink

import (
	"github.com/matzehuels/stackgantt/pkg/render"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions forwards options to the intermediate SVG.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// WithScale sets the raster scale factor. The default is 2.
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// RenderPNG renders the chart to SVG and rasterizes it with rsvg-convert.
func RenderPNG(c chart.Chart, h calendar.Header, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(RenderSVG(c, h, r.svgOpts...), r.scale)
}
