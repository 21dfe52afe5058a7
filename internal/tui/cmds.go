package tui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/geom"
)

type uploadResultMsg struct {
	id  string
	err error
}

type geometryMsg struct {
	seq int
	id  string
	geo *api.Geometry
	col geom.Collection
	err error
}

type reportMsg struct {
	seq int
	url string
	err error
}

// uploadCmd submits a DXF drawing and reports the id the backend assigned.
func (m Model) uploadCmd(path, name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadResultMsg{err: err}
		}
		defer f.Close()
		id, err := client.Upload(context.Background(), name, filepath.Base(path), f)
		return uploadResultMsg{id: id, err: err}
	}
}

// fetchGeometryCmd loads a plant's geometry and metadata. seq ties the result
// to the display invocation that requested it; a later invocation supersedes
// this one.
func (m Model) fetchGeometryCmd(id string, seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		geo, err := client.Coordinates(context.Background(), id)
		if err != nil {
			return geometryMsg{seq: seq, id: id, err: err}
		}
		col, err := geom.ParseCollection(geo.GeoJSON)
		if err != nil {
			return geometryMsg{seq: seq, id: id, err: err}
		}
		return geometryMsg{seq: seq, id: id, geo: geo, col: col}
	}
}

// fetchReportCmd asks for the plant's report link. The caller discards the
// error variant: reporting is best-effort and never disturbs the render.
func (m Model) fetchReportCmd(id string, seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		url, err := client.Report(context.Background(), id)
		return reportMsg{seq: seq, url: url, err: err}
	}
}
