package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	locale   string
	selected string
}

// WithJSONLocale records the locale the header was formatted in.
func WithJSONLocale(l string) JSONOption { return func(r *jsonRenderer) { r.locale = l } }

// WithJSONSelected records the selected task id.
func WithJSONSelected(id string) JSONOption { return func(r *jsonRenderer) { r.selected = id } }

type jsonOutput struct {
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Locale   string          `json:"locale,omitempty"`
	Selected string          `json:"selected,omitempty"`
	Header   calendar.Header `json:"header"`
	Chart    chart.Chart     `json:"chart"`
}

// RenderJSON exports the computed header and chart geometry as a
// pretty-printed JSON document, suitable for drawing with another
// front end.
func RenderJSON(c chart.Chart, h calendar.Header, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		Width:    h.Width,
		Height:   h.Height + c.Height,
		Locale:   r.locale,
		Selected: r.selected,
		Header:   h,
		Chart:    c,
	}
	return json.MarshalIndent(out, "", "  ")
}
