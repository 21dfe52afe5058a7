package tui

import (
	"errors"
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; will be refined in View
		}

	case uploadResultMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrMissingFile) {
				m.status = "nenhum arquivo DXF selecionado"
			} else {
				m.status = "erro no envio: " + msg.err.Error()
			}
			return m, nil
		}
		// id stored only on success; then the display pipeline runs with it
		m.sess.SetCurrentPlant(msg.id)
		m.displaySeq++
		m.status = "planta enviada (id " + msg.id + "), carregando geometria..."
		return m, m.fetchGeometryCmd(msg.id, m.displaySeq)

	case geometryMsg:
		if msg.seq != m.displaySeq {
			// a newer display invocation superseded this one
			return m, nil
		}
		if msg.err != nil {
			// prior overlay stays untouched on this path
			m.status = "erro ao carregar geometria: " + msg.err.Error()
			return m, nil
		}
		popups := make([]string, len(msg.col.Features))
		for i, f := range msg.col.Features {
			popups[i] = FeatureAnnotation(f)
		}
		m.sess.SwapOverlay(&session.Overlay{Plant: msg.id, Data: msg.col, Popups: popups})
		// fit viewport to the new overlay's extent
		m.bbox = msg.col.BBox
		m.zoom = 1.0
		m.offsetX, m.offsetY = 0, 0
		m.showPolys = len(msg.col.Polygons()) > 0
		m.showLines = len(msg.col.Lines()) > 0
		m.metrics = MetricsLine(msg.geo.Metadata)
		m.reportURL = ""
		m.inspectPopup = ""
		m.hoverFeat = -1
		m.status = fmt.Sprintf("planta %s carregada  feições: %d", msg.id, len(msg.col.Features))
		if m.showAttrs {
			m.refreshAttrsFromOverlay()
		}
		return m, m.fetchReportCmd(msg.id, msg.seq)

	case reportMsg:
		if msg.seq != m.displaySeq {
			return m, nil
		}
		if msg.err != nil {
			// best-effort: the link just stays hidden
			return m, nil
		}
		m.reportURL = msg.url
		return m, nil

	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.nameMode {
			switch msg.String() {
			case "esc":
				m.nameMode = false
				m.pendingPath = ""
				m.ti.Blur()
				m.status = "envio cancelado"
				return m, nil
			case "enter":
				name := strings.TrimSpace(m.ti.Value())
				if name == "" {
					m.status = "informe um nome para a planta"
					return m, nil
				}
				path := m.pendingPath
				m.nameMode = false
				m.pendingPath = ""
				m.ti.Blur()
				m.status = "enviando " + name + "..."
				return m, m.uploadCmd(path, name)
			}
			var cmd tea.Cmd
			m.ti, cmd = m.ti.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("linhas: %v", m.showLines)
		case "2":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polígonos: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "v":
			// show last result: re-display the current plant
			id := m.sess.CurrentPlant()
			if id == "" {
				m.status = "nenhuma planta enviada ainda"
				return m, nil
			}
			m.displaySeq++
			m.status = "carregando planta " + id + "..."
			return m, m.fetchGeometryCmd(id, m.displaySeq)
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromOverlay()
			}
		case "i":
			idx, lon, lat, ok := m.inspectNearest()
			if ok {
				ov := m.sess.Overlay()
				meta := []string{
					fmt.Sprintf("planta: %s", ov.Plant),
					fmt.Sprintf("feição: %d de %d", idx+1, len(ov.Data.Features)),
					ov.Popups[idx],
					fmt.Sprintf("vértice próximo: x=%.3f y=%.3f", lon, lat),
				}
				m.inspectPopup = strings.Join(meta, "\n")
				m.status = "inspecionando feição"
			} else {
				m.inspectPopup = "nenhuma feição próxima"
				m.status = m.inspectPopup
			}
		case "esc":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.startNamePrompt(it.path)
					return m, nil
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}

	case tea.MouseMsg:
		// track hover over map area
		// compute map origin and size (must match View layout)
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = 28
		}
		headerHeight := 1
		infoHeight := 2
		footerHeight := 2
		contentHeight := m.height - headerHeight - infoHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		// Update list size with accurate content height when sidebar visible
		if m.showSidebar {
			m.l.SetSize(28-2, contentHeight-2)
		}

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth
		if m.showSidebar {
			mapOriginX++
		}
		mapOriginY := headerHeight
		// mouse cell within map?
		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			m.hoverCellX = cx - mapOriginX
			m.hoverCellY = cy - mapOriginY
			// drawing coordinates for the footer
			if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
				m.hoverHasGeo = true
				m.hoverLon = lon
				m.hoverLat = lat
			} else {
				m.hoverHasGeo = false
			}
			m.trackNearestVertex(mapWidth, mapHeight)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// trackNearestVertex finds the overlay vertex closest to the hovered cell and
// remembers which feature it belongs to.
func (m *Model) trackNearestVertex(mapWidth, mapHeight int) {
	ov := m.sess.Overlay()
	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	feat := -1
	if ov != nil {
		consider := func(i int, p [2]float64) {
			mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
			if !ok {
				return
			}
			dx := mx - hxMic
			dy := my - hyMic
			d := dx*dx + dy*dy
			if d < best {
				best = d
				bx, by = mx, my
				feat = i
			}
		}
		for i, f := range ov.Data.Features {
			for _, p := range f.Line {
				consider(i, p)
			}
			for _, ring := range f.Polygon {
				for _, p := range ring {
					consider(i, p)
				}
			}
		}
	}
	m.hoverMicX, m.hoverMicY = bx, by
	m.hoverFeat = feat
}
