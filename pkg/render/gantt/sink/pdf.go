package sink

import (
	"github.com/matzehuels/stackgantt/pkg/render"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
)

// PDFOption configures PDF rendering via [RenderPDF].
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions forwards options to the intermediate SVG.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// RenderPDF renders the chart to SVG and converts it with rsvg-convert.
func RenderPDF(c chart.Chart, h calendar.Header, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPDF(RenderSVG(c, h, r.svgOpts...))
}
