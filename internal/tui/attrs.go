package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromOverlay rebuilds the attribute table from the rendered
// overlay's features.
func (m *Model) refreshAttrsFromOverlay() {
	ov := m.sess.Overlay()
	if ov == nil || len(ov.Data.Features) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "nenhuma planta carregada"
		return
	}
	tcols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "tipo", Width: 10},
		{Title: "área (m²)", Width: 14},
		{Title: "perímetro (m)", Width: 14},
		{Title: "vértices", Width: 9},
	}
	trows := make([]table.Row, 0, len(ov.Data.Features))
	for i, f := range ov.Data.Features {
		kind := "linha"
		verts := len(f.Line)
		if len(f.Polygon) > 0 {
			kind = "polígono"
			verts = len(f.Polygon[0])
		}
		trows = append(trows, table.Row{
			fmt.Sprintf("%d", i+1),
			kind,
			FormatMetric(f.Area),
			FormatMetric(f.Perimeter),
			fmt.Sprintf("%d", verts),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
