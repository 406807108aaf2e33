package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
)

// RenderHeaderSVG draws only the calendar header as a standalone document.
func RenderHeaderSVG(h calendar.Header, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s" font-size="%.1f">`+"\n",
		h.Width, h.Height, h.Width, h.Height, styles.EscapeXML(r.theme.FontFamily), styles.ParseFontSize(r.theme.FontSize))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", ganttCSS)
	renderHeader(&buf, h, r.theme)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderHeader(buf *bytes.Buffer, h calendar.Header, th styles.Theme) {
	line := styles.EscapeXML(th.HeaderLine)
	fmt.Fprintf(buf, `    <rect class="calendar-frame" x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1.4"/>`+"\n",
		h.Width, h.Height, styles.EscapeXML(th.HeaderBackground), line)

	for _, hl := range h.Highlights {
		fmt.Fprintf(buf, `    <rect class="calendar-today" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			hl.X, hl.Y, hl.Width, hl.Height, styles.EscapeXML(hl.Fill))
	}

	for _, l := range h.Bottom {
		renderLabel(buf, "calendar-bottom", l, th.HeaderText)
	}
	for _, p := range h.Top {
		renderTopPart(buf, p, th.HeaderLine, th.HeaderText)
	}
}

// renderTopPart draws one top-band entry: its boundary line, if any, and
// its label.
func renderTopPart(buf *bytes.Buffer, p calendar.TopPart, lineColor, textColor string) {
	if m := p.Marker; m != nil {
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			m.X, m.Y1, m.X, m.Y2, styles.EscapeXML(lineColor))
	}
	renderLabel(buf, "calendar-top", p.Label, textColor)
}

func renderLabel(buf *bytes.Buffer, class string, l calendar.Label, color string) {
	if l.Text == "" {
		return
	}
	weight := ""
	if l.Bold {
		weight = ` font-weight="bold"`
	}
	title := ""
	if l.FullText != "" {
		title = "<title>" + styles.EscapeXML(l.FullText) + "</title>"
	}
	fmt.Fprintf(buf, `    <text class="%s" x="%.2f" y="%.2f" text-anchor="%s" fill="%s"%s>%s%s</text>`+"\n",
		class, l.X, l.Y, anchorOrMiddle(l.Anchor), styles.EscapeXML(color), weight, title, styles.EscapeXML(l.Text))
}

func anchorOrMiddle(a string) string {
	if a == "" {
		return calendar.AnchorMiddle
	}
	return a
}
