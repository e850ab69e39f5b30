package tui

import (
	"log/slog"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"trailmapper/internal/geom"
	"trailmapper/internal/georef"
	"trailmapper/internal/pairs"
	"trailmapper/internal/raster"
)

// pasteKind selects what the paste box edits.
type pasteKind int

const (
	pasteSource pasteKind = iota
	pasteTarget
	pasteScale
)

// Options configures a new Model.
type Options struct {
	// MetersPerPixel is the initial source scale.
	MetersPerPixel float64
	// ExportDir receives pair exports and fit reports.
	ExportDir string
	Logger    *slog.Logger
	// Now is used for export file names; defaults to time.Now.
	Now func() time.Time
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Pairs and the current fit
	pairs     *pairs.Set
	scale     float64
	fit       georef.FitResult
	raster    *raster.Info
	exportDir string
	log       *slog.Logger
	now       func() time.Time

	// plot extent in projected metres
	bbox geom.BBox

	// paste mode
	pasteMode bool
	pasteKind pasteKind
	ta        textarea.Model

	// layer visibility
	showTargets bool
	showVectors bool

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLat    float64
	hoverLng    float64

	// pairs table
	showTable bool
	tbl       table.Model
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "trailmapper ready",
		showTargets: true,
		showVectors: true,
		pairs:       pairs.New(),
		scale:       opts.MetersPerPixel,
		exportDir:   opts.ExportDir,
		log:         opts.Logger,
		now:         opts.Now,
	}
	if m.scale <= 0 {
		m.scale = 1
	}
	if m.exportDir == "" {
		m.exportDir = "."
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	m.ta.ShowLineNumbers = false
	// pairs table setup
	m.tbl = table.New(table.WithColumns(pairColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.resolve()
	return m
}

// NewWithPath preloads a file at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// resolve re-runs the fit from scratch on a snapshot of the pairs and refreshes
// everything derived from it.
func (m *Model) resolve() {
	m.fit = georef.Solve(m.pairs.Pairs(), m.scale)
	total, complete := m.pairs.Counts()
	switch m.fit.Status {
	case georef.StatusSolved:
		m.log.Info("fit solved", "pairs", total, "complete", complete, "scale", m.scale, "rms_m", m.fit.RMSError)
	case georef.StatusUnsolved:
		m.log.Debug("fit unsolved", "pairs", total, "complete", complete)
	default:
		m.log.Warn("fit failed", "status", m.fit.Status.String(), "reason", m.fit.Reason, "complete", complete)
	}
	m.refitBBox()
	m.refreshTable()
}

// predicted maps a pair's source through the current fit.
func (m Model) predicted(p geom.PointPair) (geom.PlanarPoint, bool) {
	if !m.fit.Solved() || p.Source == nil {
		return geom.PlanarPoint{}, false
	}
	return m.fit.Params.Apply(p.Scaled(m.scale)), true
}

// refitBBox sizes the plot to every target and prediction.
func (m *Model) refitBBox() {
	var bb geom.BBox
	ok := false
	for _, p := range m.pairs.Pairs() {
		if p.Target != nil {
			if t := p.Projected(); t.Finite() {
				bb, ok = bb.Extend(t.X, t.Y, ok), true
			}
		}
		if q, has := m.predicted(p); has && q.Finite() {
			bb, ok = bb.Extend(q.X, q.Y, ok), true
		}
	}
	if !ok {
		m.bbox = geom.BBox{}
		return
	}
	m.bbox = bb.Pad(0.08, 50)
}
