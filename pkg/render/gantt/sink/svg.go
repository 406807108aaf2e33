package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/matzehuels/stackgantt/pkg/datefmt"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/styles"
	"github.com/matzehuels/stackgantt/pkg/task"
)

const ganttCSS = `
    .bar-label { pointer-events: none; dominant-baseline: central; }
    .calendar-bottom, .calendar-top { text-anchor: middle; dominant-baseline: central; user-select: none; }
    .task-list text { dominant-baseline: central; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme       styles.Theme
	listWidth   float64
	showList    bool
	ganttHeight float64
	selected    string
	locale      string
	rtl         bool
	formatters  *datefmt.Cache
}

func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t.WithDefaults() } }
func WithSelected(id string) SVGOption   { return func(r *svgRenderer) { r.selected = id } }
func WithLocale(l string) SVGOption      { return func(r *svgRenderer) { r.locale = l } }
func WithRTL() SVGOption                 { return func(r *svgRenderer) { r.rtl = true } }

// WithTaskList adds the Name/From/To table; cellWidth is a CSS length
// such as "155px".
func WithTaskList(cellWidth string) SVGOption {
	return func(r *svgRenderer) {
		r.showList = true
		r.listWidth = styles.ParseLength(cellWidth, DefaultListCellWidth)
	}
}

// WithGanttHeight bounds the chart body; rows beyond it are clipped.
// Zero shows every row.
func WithGanttHeight(h float64) SVGOption { return func(r *svgRenderer) { r.ganttHeight = h } }

// WithFormatters sets the formatter cache used for task list dates.
func WithFormatters(c *datefmt.Cache) SVGOption { return func(r *svgRenderer) { r.formatters = c } }

// DefaultListCellWidth is the width of one task list column in pixels.
const DefaultListCellWidth = 155.0

// RenderSVG draws the header over the chart body, with the task list
// beside it when enabled.
func RenderSVG(c chart.Chart, h calendar.Header, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	bodyHeight := c.Height
	if r.ganttHeight > 0 && r.ganttHeight < bodyHeight {
		bodyHeight = r.ganttHeight
	}
	listWidth := 0.0
	if r.showList {
		listWidth = r.listWidth * 3
	}
	width := listWidth + h.Width
	height := h.Height + bodyHeight
	fontSize := styles.ParseFontSize(r.theme.FontSize)

	chartX, listX := listWidth, 0.0
	if r.rtl {
		chartX, listX = 0, h.Width
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s" font-size="%.1f">`+"\n",
		width, height, width, height, styles.EscapeXML(r.theme.FontFamily), fontSize)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", ganttCSS)

	if r.showList {
		fmt.Fprintf(&buf, `  <g class="task-list" transform="translate(%.2f,0)">`+"\n", listX)
		renderTaskList(&buf, &r, c, h.Height, bodyHeight, fontSize)
		buf.WriteString("  </g>\n")
	}

	fmt.Fprintf(&buf, `  <g class="calendar" transform="translate(%.2f,0)">`+"\n", chartX)
	renderHeader(&buf, h, r.theme)
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <svg class="gantt" x="%.2f" y="%.2f" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n",
		chartX, h.Height, h.Width, bodyHeight, h.Width, bodyHeight)
	renderGrid(&buf, c, r.theme)
	renderArrows(&buf, c, r.theme)
	renderBars(&buf, &r, c, fontSize)
	buf.WriteString("  </svg>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: styles.DefaultTheme(), listWidth: DefaultListCellWidth}
	for _, opt := range opts {
		opt(&r)
	}
	if r.formatters == nil {
		r.formatters = datefmt.Default()
	}
	return r
}

func renderGrid(buf *bytes.Buffer, c chart.Chart, th styles.Theme) {
	buf.WriteString(`    <g class="grid">` + "\n")
	for i, row := range c.Grid.Rows {
		fill := th.RowBackground
		if i%2 == 1 {
			fill = th.RowStripe
		}
		fmt.Fprintf(buf, `      <rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			row.Y, c.Width, row.Height, styles.EscapeXML(fill))
		fmt.Fprintf(buf, `      <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			row.Y+row.Height, c.Width, row.Y+row.Height, styles.EscapeXML(th.GridLine))
	}
	for _, x := range c.Grid.Ticks {
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			x, x, c.Height, styles.EscapeXML(th.GridLine))
	}
	if t := c.Grid.Today; t != nil {
		fmt.Fprintf(buf, `      <rect class="today" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			t.X, t.Y, t.Width, t.Height, styles.EscapeXML(t.Fill))
	}
	buf.WriteString("    </g>\n")
}

func renderArrows(buf *bytes.Buffer, c chart.Chart, th styles.Theme) {
	if len(c.Arrows) == 0 {
		return
	}
	fmt.Fprintf(buf, `    <g class="arrows" fill="%s" stroke="%s">`+"\n", styles.EscapeXML(th.Arrow), styles.EscapeXML(th.Arrow))
	for _, a := range c.Arrows {
		fmt.Fprintf(buf, `      <g class="arrow" data-from="%s" data-to="%s">`+"\n", styles.EscapeXML(a.From), styles.EscapeXML(a.To))
		fmt.Fprintf(buf, `        <path stroke-width="1.5" fill="none" d="%s"/>`+"\n", a.Path)
		fmt.Fprintf(buf, `        <polygon points="%s"/>`+"\n", a.Triangle)
		buf.WriteString("      </g>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderBars(buf *bytes.Buffer, r *svgRenderer, c chart.Chart, fontSize float64) {
	buf.WriteString(`    <g class="bars">` + "\n")
	for _, b := range c.Bars {
		fmt.Fprintf(buf, `      <g class="bar" id="bar-%s">`+"\n", styles.EscapeXML(b.TaskID))
		if b.IsMilestone() {
			renderMilestone(buf, r, b, c.BarHeight)
		} else {
			renderBar(buf, r, b)
		}
		renderBarLabel(buf, r, b, c.BarHeight, fontSize)
		buf.WriteString("      </g>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderBar(buf *bytes.Buffer, r *svgRenderer, b chart.Bar) {
	bg, progress := barColors(r.theme, b, b.TaskID == r.selected)
	stroke := ""
	if r.theme.BarStroke != "" {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%.1f"`, styles.EscapeXML(r.theme.BarStroke), r.theme.BarStrokeWidth)
	}
	rad := r.theme.BarCornerRadius
	fmt.Fprintf(buf, `        <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="%s"%s/>`+"\n",
		b.X1, b.Y, b.Width(), b.Height, rad, rad, styles.EscapeXML(bg), stroke)
	if b.ProgressWidth > 0 {
		fmt.Fprintf(buf, `        <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n",
			b.ProgressX, b.Y, b.ProgressWidth, b.Height, rad, rad, styles.EscapeXML(progress))
	}
}

func renderMilestone(buf *bytes.Buffer, r *svgRenderer, b chart.Bar, barHeight float64) {
	fill := r.theme.Milestone
	if b.TaskID == r.selected {
		fill = r.theme.MilestoneSelected
	}
	if b.Styles != nil && b.Styles.Background != "" {
		fill = b.Styles.Background
	}
	size := b.Height
	cx := b.X1 + size/2
	cy := b.Y + barHeight/2
	fmt.Fprintf(buf, `        <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" ry="%.1f" fill="%s" transform="rotate(45 %.2f %.2f)"/>`+"\n",
		b.X1, cy-size/2, size, size, r.theme.BarCornerRadius, r.theme.BarCornerRadius, styles.EscapeXML(fill), cx, cy)
}

func barColors(th styles.Theme, b chart.Bar, selected bool) (bg, progress string) {
	switch {
	case b.Type == task.TypeProject && selected:
		bg, progress = th.ProjectBarSelected, th.ProjectProgressSelected
	case b.Type == task.TypeProject:
		bg, progress = th.ProjectBar, th.ProjectProgress
	case selected:
		bg, progress = th.BarSelected, th.BarProgressSelected
	default:
		bg, progress = th.Bar, th.BarProgress
	}
	if s := b.Styles; s != nil {
		pick := func(cur, normal, sel string) string {
			if selected && sel != "" {
				return sel
			}
			if normal != "" {
				return normal
			}
			return cur
		}
		bg = pick(bg, s.Background, s.BackgroundSelected)
		progress = pick(progress, s.Progress, s.ProgressSelected)
	}
	return bg, progress
}

// renderBarLabel puts the name inside the bar when it fits, otherwise
// beside it on the side facing away from the bar's start.
func renderBarLabel(buf *bytes.Buffer, r *svgRenderer, b chart.Bar, barHeight, fontSize float64) {
	if b.Name == "" {
		return
	}
	cy := b.Y + barHeight/2
	if !b.IsMilestone() && styles.ApproxTextWidth(b.Name, fontSize) < b.Width() {
		fmt.Fprintf(buf, `        <text class="bar-label" x="%.2f" y="%.2f" text-anchor="middle" fill="%s">%s</text>`+"\n",
			b.X1+b.Width()/2, cy, styles.EscapeXML(r.theme.BarText), styles.EscapeXML(b.Name))
		return
	}
	x, anchor := b.X2+labelGap, "start"
	if r.rtl {
		x, anchor = b.X1-labelGap, "end"
	}
	fmt.Fprintf(buf, `        <text class="bar-label" x="%.2f" y="%.2f" text-anchor="%s" fill="%s">%s</text>`+"\n",
		x, cy, anchor, styles.EscapeXML(r.theme.HeaderText), styles.EscapeXML(b.Name))
}

const labelGap = 24.0

func renderTaskList(buf *bytes.Buffer, r *svgRenderer, c chart.Chart, headerHeight, bodyHeight, fontSize float64) {
	w := r.listWidth
	th := r.theme
	fmt.Fprintf(buf, `    <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
		w*3, headerHeight, styles.EscapeXML(th.HeaderBackground), styles.EscapeXML(th.HeaderLine))
	for i, title := range []string{"Name", "From", "To"} {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s">%s</text>`+"\n",
			float64(i)*w+listPadding, headerHeight/2, styles.EscapeXML(th.HeaderText), title)
		if i > 0 {
			fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
				float64(i)*w, headerHeight*0.25, float64(i)*w, headerHeight*0.75, styles.EscapeXML(th.HeaderLine))
		}
	}

	fmt.Fprintf(buf, `    <svg x="0" y="%.2f" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n",
		headerHeight, w*3, bodyHeight, w*3, bodyHeight)
	for i, b := range c.Bars {
		y := float64(i) * c.RowHeight
		fill := th.RowBackground
		if i%2 == 1 {
			fill = th.RowStripe
		}
		fmt.Fprintf(buf, `      <rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			y, w*3, c.RowHeight, styles.EscapeXML(fill))

		name := b.Name
		if b.Type == task.TypeProject {
			mark := "▼ "
			if b.HideChildren {
				mark = "▶ "
			}
			name = mark + name
		}
		cells := []string{
			styles.FitWithEllipsis(name, w-2*listPadding, fontSize),
			styles.FitWithEllipsis(r.listDate(b.Start), w-2*listPadding, fontSize),
			styles.FitWithEllipsis(r.listDate(b.End), w-2*listPadding, fontSize),
		}
		for k, text := range cells {
			if text == "" {
				continue
			}
			title := ""
			if k == 0 && text != name {
				title = "<title>" + styles.EscapeXML(name) + "</title>"
			}
			fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" fill="%s">%s%s</text>`+"\n",
				float64(k)*w+listPadding, y+c.RowHeight/2, styles.EscapeXML(th.HeaderText), title, styles.EscapeXML(text))
		}
	}
	buf.WriteString("    </svg>\n")
}

const listPadding = 8.0

// listDate renders "Mon, 5 January 2024" in the renderer's locale.
func (r *svgRenderer) listDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		r.formatters.DayOfWeekName(t, r.locale, datefmt.NameShort),
		t.Day(),
		r.formatters.MonthName(t, r.locale),
		t.Year())
}
