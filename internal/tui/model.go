package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/geom"
	"github.com/ErnestoTSantos/Topografia/internal/session"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer (DXF drawings to submit)
	cwd   string
	l     list.Model
	items []list.Item

	// Backend + session state
	client     *api.Client
	sess       *session.Session
	displaySeq int

	// Upload name prompt
	nameMode    bool
	pendingPath string
	ti          textinput.Model

	// Display regions below the map
	metrics   string
	reportURL string

	// Viewport over the current overlay
	bbox geom.BBox

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// layer visibility
	showLines bool
	showPolys bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverFeat   int

	// per-feature attributes table
	showAttrs bool
	tbl       table.Model
}

func New(client *api.Client) Model {
	m := Model{
		showSidebar: true,
		helpVisible: true,
		zoom:        1.0,
		status:      "topografia pronto ─ selecione uma planta DXF",
		showLines:   true,
		showPolys:   true,
		client:      client,
		sess:        session.New(),
		hoverFeat:   -1,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Plantas DXF"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// name prompt setup
	m.ti = textinput.New()
	m.ti.Placeholder = "nome da planta"
	m.ti.CharLimit = 120
	m.ti.Width = 40
	// attributes table setup (rows come from the rendered overlay)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath opens the upload prompt for a DXF file given on the command line.
func NewWithPath(client *api.Client, path string) Model {
	m := New(client)
	m.startNamePrompt(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
