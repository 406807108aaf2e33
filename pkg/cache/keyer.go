package cache

// Key type names passed to the cache hooks.
const (
	KindLayout   = "layout"
	KindArtifact = "artifact"
	KindGraph    = "graph"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the header and chart geometry for a task set.
	LayoutKey(tasksHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// GraphKey identifies a rendered dependency graph.
	GraphKey(tasksHash string, opts GraphKeyOpts) string
}

// LayoutKeyOpts lists the options that change the layout.
type LayoutKeyOpts struct {
	ViewMode     string  `json:"view_mode"`
	Locale       string  `json:"locale"`
	Timezone     string  `json:"timezone"`
	RTL          bool    `json:"rtl"`
	FitLabels    bool    `json:"fit_labels"`
	ColumnWidth  float64 `json:"column_width"`
	RowHeight    float64 `json:"row_height"`
	HeaderHeight float64 `json:"header_height"`
	BarFill      float64 `json:"bar_fill"`
	PreSteps     int     `json:"pre_steps"`
	Formatter    string  `json:"formatter"` // Hash of the label layouts
	Today        string  `json:"today"`     // Date of the today highlight, empty when off
	Style        string  `json:"style"`     // Hash of the theme fields the layout reads
}

// ArtifactKeyOpts lists the options that change a rendered file.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Theme         string  `json:"theme"` // Hash of the theme
	Selected      string  `json:"selected"`
	TaskList      bool    `json:"task_list"`
	ListCellWidth string  `json:"list_cell_width"`
	GanttHeight   float64 `json:"gantt_height"`
	Scale         float64 `json:"scale"`
}

// GraphKeyOpts lists the options that change a dependency graph.
type GraphKeyOpts struct {
	Format      string `json:"format"`
	Detailed    bool   `json:"detailed"`
	LeftToRight bool   `json:"left_to_right"`
}

// DefaultKeyer hashes options into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(tasksHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, tasksHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, layoutHash, opts)
}

func (DefaultKeyer) GraphKey(tasksHash string, opts GraphKeyOpts) string {
	return hashKey(KindGraph, tasksHash, opts)
}
