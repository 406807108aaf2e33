package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/calendar"
	"github.com/matzehuels/stackgantt/pkg/render/gantt/chart"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		sf    storeFlags
		flags chartFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [tasks file]",
		Short: "Browse and edit a task set in the terminal",
		Long: `Browse and edit a task set in the terminal.

The preview shows the calendar header and one timeline row per visible
task. Edits go through the same rules as the HTTP API and are written back
with w.

Keys:
  ↑/↓ j/k   move            enter     select
  e space   expand/collapse  v/V       next/previous view mode
  +/-       progress ±10%    h/l       move one day earlier/later
  d         delete (asks)    w         save
  q         quit             Q         quit without saving`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.Logger)
			if err != nil {
				return err
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && sf.mongoURI == "" {
				return errors.New("need a tasks file or --mongo-uri")
			}
			return c.runPreview(cmd.Context(), input, sf, opts)
		},
	}

	sf.register(cmd)
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, sf storeFlags, opts pipeline.Options) error {
	store, closeStore, err := openStore(ctx, input, sf, opts.Location())
	if err != nil {
		return err
	}
	defer closeStore()

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	snap, err := runner.Load(ctx, store)
	if err != nil {
		return fmt.Errorf("load %s: %w", store.Name(), err)
	}

	final, err := tea.NewProgram(
		newPreviewModel(ctx, snap, store, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(previewModel); ok && m.dirty {
		printWarning("Quit with unsaved changes")
	}
	return nil
}

// =============================================================================
// previewModel - Interactive chart preview
// =============================================================================

// cellChars is the number of terminal cells per timeline column.
const cellChars = 2

var (
	previewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	previewTopStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	previewBarStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	previewDoneStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	previewCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// previewModel is the bubbletea model behind the preview command. All
// edits go through the dispatcher so the veto and delete rules match the
// HTTP server.
type previewModel struct {
	ctx        context.Context
	dispatcher *task.Dispatcher
	store      source.Store
	opts       pipeline.Options
	layout     pipeline.Layout

	cursor int
	offset int
	height int
	width  int

	pending *task.DeleteRequest
	dirty   bool
	status  string
	err     error
}

func newPreviewModel(ctx context.Context, snap task.Snapshot, store source.Store, opts pipeline.Options) previewModel {
	m := previewModel{
		ctx:        ctx,
		dispatcher: task.NewDispatcher(snap, task.Handlers{}),
		store:      store,
		opts:       opts,
		height:     15,
		width:      120,
	}
	if err := m.opts.ValidateAndSetDefaults(); err != nil {
		m.err = err
		return m
	}
	m.relayout()
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pending != nil {
			return m.confirmDelete(msg.String())
		}
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-12, 5)
		m.scroll()
	}
	return m, nil
}

func (m previewModel) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status, m.err = "", nil
	rows := m.layout.Chart.Bars

	switch key {
	case "ctrl+c", "Q":
		return m, tea.Quit
	case "q", "esc":
		if m.dirty && m.store != nil {
			m.status = "unsaved changes: w to save, Q to quit anyway"
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "v", "V":
		m.cycleView(key == "v")
	case "w":
		m.save()
	}

	cur, ok := m.current()
	if !ok {
		m.scroll()
		return m, nil
	}

	switch key {
	case "enter":
		id := cur.TaskID
		if m.dispatcher.Selected() == id {
			id = ""
		}
		m.err = m.dispatcher.Select(id)
	case "e", " ":
		if cur.Type == task.TypeProject {
			m.edit(m.dispatcher.ToggleExpander(cur.TaskID))
		}
	case "+", "=":
		m.edit(m.dispatcher.ChangeProgress(cur.TaskID, math.Min(cur.Progress+10, 100)))
	case "-":
		m.edit(m.dispatcher.ChangeProgress(cur.TaskID, math.Max(cur.Progress-10, 0)))
	case "h", "l":
		days := 1
		if key == "h" {
			days = -1
		}
		m.edit(m.dispatcher.ChangeDates(cur.TaskID, cur.Start.AddDate(0, 0, days), cur.End.AddDate(0, 0, days)))
	case "d":
		req, err := m.dispatcher.RequestDelete(cur.TaskID)
		if err != nil {
			m.err = err
			break
		}
		m.pending = &req
	}
	m.scroll()
	return m, nil
}

// confirmDelete answers the pending delete request.
func (m previewModel) confirmDelete(key string) (tea.Model, tea.Cmd) {
	var confirmed bool
	switch key {
	case "y", "Y":
		confirmed = true
	case "n", "N", "esc":
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	req := *m.pending
	m.pending = nil
	_, err := m.dispatcher.ResolveDelete(req, confirmed)
	if err != nil {
		m.err = err
		return m, nil
	}
	if confirmed {
		m.dirty = true
		m.status = fmt.Sprintf("deleted %q", req.Task.Name)
		m.relayout()
	}
	return m, nil
}

func (m *previewModel) edit(_ task.Snapshot, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.dirty = true
	m.relayout()
}

func (m *previewModel) save() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.ctx, m.dispatcher.Snapshot()); err != nil {
		m.err = err
		return
	}
	m.dirty = false
	m.status = "saved to " + m.store.Name()
}

func (m *previewModel) cycleView(forward bool) {
	modes := task.ViewModes()
	i := slices.Index(modes, m.opts.Mode())
	if forward {
		i = (i + 1) % len(modes)
	} else {
		i = (i - 1 + len(modes)) % len(modes)
	}
	m.opts = m.opts.Merge(pipeline.Options{ViewMode: string(modes[i])})
	m.relayout()
}

// relayout recomputes the chart after an edit or view change.
func (m *previewModel) relayout() {
	l, err := pipeline.GenerateLayout(m.dispatcher.Snapshot(), m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.layout = l
	if m.cursor >= len(l.Chart.Bars) {
		m.cursor = max(len(l.Chart.Bars)-1, 0)
	}
}

func (m *previewModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m previewModel) current() (chart.Bar, bool) {
	bars := m.layout.Chart.Bars
	if m.cursor < 0 || m.cursor >= len(bars) {
		return chart.Bar{}, false
	}
	return bars[m.cursor], true
}

func (m previewModel) View() string {
	var b strings.Builder

	title := "Preview"
	if m.store != nil {
		title += " · " + m.store.Name()
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %d columns", m.layout.ViewMode, len(m.layout.Ticks))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  ⏎ select  e expand  v view  +/- progress  h/l shift  d delete  w save  q quit"))
	b.WriteString("\n\n")

	span := m.timelineWidth()
	top, bottom := headerStrip(m.layout.Header, span)
	b.WriteString(previewTopStyle.Render(top))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(bottom))
	b.WriteString("\n")

	bars := m.layout.Chart.Bars
	end := min(m.offset+m.height, len(bars))
	selected := m.dispatcher.Selected()
	colW := m.opts.ColumnWidth

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		bar := bars[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		name := bar.Name
		if bar.Type == task.TypeProject {
			if bar.HideChildren {
				name = "▶ " + name
			} else {
				name = "▼ " + name
			}
		} else if bar.Project != "" {
			name = "  " + name
		}
		if bar.TaskID == selected {
			name += " *"
		}
		rows = append(rows, []string{
			cursor,
			name,
			shortDate(bar.Start),
			shortDate(bar.End),
			fmt.Sprintf("%3.0f%%", bar.Progress),
			timeline(bar, colW, span),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Task", "Start", "End", "Done", "Timeline").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return previewHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(bars) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch {
			case bars[idx].IsDisabled:
				base = base.Foreground(colorDim)
			case col == 5:
				base = previewBarStyle
			case col == 4 && bars[idx].Progress >= 100:
				base = previewDoneStyle
			}
			if idx == m.cursor && col != 5 {
				return previewCursorStyle
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(bars)), len(bars))))
	b.WriteString("\n")

	switch {
	case m.pending != nil:
		b.WriteString(previewPromptStyle.Render(fmt.Sprintf("Delete %q? y/n", m.pending.Task.Name)))
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
	}
	b.WriteString("\n")
	return b.String()
}

// timelineWidth is the number of cells left for the timeline column.
func (m previewModel) timelineWidth() int {
	full := len(m.layout.Ticks) * cellChars
	avail := m.width - 70
	if avail < 20 {
		avail = 20
	}
	return min(full, avail)
}

// headerStrip renders the top band and the bottom labels as two lines of
// span cells. Top labels take the width of their segment.
func headerStrip(h calendar.Header, span int) (string, string) {
	var top strings.Builder
	for _, p := range h.Top {
		if p.Segment < 0 || p.Segment >= len(h.Segments) {
			continue
		}
		w := h.Segments[p.Segment].Len() * cellChars
		text := p.Label.Text
		if p.Label.FullText != "" {
			text = p.Label.FullText
		}
		top.WriteString(fitCells("│"+text, w))
	}

	var bottom strings.Builder
	for _, l := range h.Bottom {
		bottom.WriteString(fitCells(l.Text, cellChars))
	}
	return clipCells(top.String(), span), clipCells(bottom.String(), span)
}

// timeline draws one bar across span cells. Progress is solid, the rest
// shaded; milestones are a single diamond.
func timeline(b chart.Bar, colW float64, span int) string {
	cells := []rune(strings.Repeat("·", span))
	if colW <= 0 || span == 0 {
		return string(cells)
	}
	toCell := func(x float64) int { return int(x / colW * cellChars) }

	if b.IsMilestone() {
		if c := toCell((b.X1 + b.X2) / 2); c >= 0 && c < span {
			cells[c] = '◆'
		}
		return string(cells)
	}

	from := toCell(b.X1)
	to := int(math.Ceil(b.X2 / colW * cellChars))
	done := toCell(b.X1 + b.Width()*b.Progress/100)
	fill, rest := '▓', '░'
	if b.Type == task.TypeProject {
		fill, rest = '━', '─'
	}
	for i := max(from, 0); i < min(to, span); i++ {
		if i < done {
			cells[i] = fill
		} else {
			cells[i] = rest
		}
	}
	return string(cells)
}

// fitCells pads or cuts s to exactly w cells.
func fitCells(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}

func clipCells(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s
}

func shortDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}
