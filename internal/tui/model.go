// Package tui is an interactive terminal viewer: a poly mapper drawing a
// dataset into a braille canvas, with a file sidebar, a WKT paste box and a
// table of the mapped point colors.
package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/config"
	"polymap/internal/geom"
	"polymap/internal/lut"
	"polymap/internal/mapper"
	"polymap/internal/polydata"
	"polymap/internal/term"
)

// watchInterval is how often the view is redrawn so that edits to the
// loaded file show up without a key press.
const watchInterval = time.Second

type tickMsg time.Time

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

	// Pipeline
	cfg      config.Config
	mapper   *mapper.PolyMapper
	table    *lut.LookupTable
	data     *polydata.PolyData
	source   *geom.FileSource
	target   *term.Target
	watchErr error

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// mapper dump popup
	infoPopup string

	// hover state
	hoverHasGeo bool
	hoverX      float64
	hoverY      float64

	// point color table
	showAttrs bool
	tbl       table.Model
}

// New returns a viewer with nothing loaded, configured by cfg.
func New(cfg config.Config) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "polyview ready",
		cfg:         cfg,
		mapper:      mapper.New(),
		table:       lut.New(),
		target:      term.New(1, 1),
	}
	cfg.Apply(m.mapper, m.table)
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
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, TRIANGLE, ...). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

// NewWithData shows d, which is not backed by a file.
func NewWithData(cfg config.Config, d *polydata.PolyData, name string) Model {
	m := New(cfg)
	m.setData(d, nil)
	m.status = "loaded: " + name + "  " + countsLabel(d)
	return m
}

// Mapper returns the mapper driving the view.
func (m Model) Mapper() *mapper.PolyMapper { return m.mapper }

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// setData makes d the mapper input and resets the view onto it.
func (m *Model) setData(d *polydata.PolyData, src *geom.FileSource) {
	m.data, m.source = d, src
	m.mapper.SetInput(d)
	m.cfg.Apply(m.mapper, m.table)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.infoPopup = ""
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
