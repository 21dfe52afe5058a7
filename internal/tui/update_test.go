package tui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/geom"
)

func testModel() Model {
	return New(api.NewClient("http://127.0.0.1:0"))
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	res, cmd := m.Update(msg)
	mm, ok := res.(Model)
	if !ok {
		t.Fatalf("Update returned %T", res)
	}
	return mm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testCollection() geom.Collection {
	return geom.Collection{
		Features: []geom.Feature{{
			Polygon:   [][][2]float64{{{0, 0}, {4, 0}, {4, 3}, {0, 3}}},
			Area:      fp(12.5),
			Perimeter: fp(9.0),
		}},
		BBox: geom.BBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3},
	}
}

func testGeometry() *api.Geometry {
	return &api.Geometry{Metadata: api.Metadata{Area: fp(12.5), Perimeter: fp(9.0)}}
}

func TestShowLastResultWithoutUpload(t *testing.T) {
	m := testModel()
	m, cmd := step(t, m, keyMsg("v"))
	if cmd != nil {
		t.Error("no network step should start without a prior upload")
	}
	if m.status != "nenhuma planta enviada ainda" {
		t.Errorf("expected precondition notice, got %q", m.status)
	}
}

func TestUploadSuccessStoresIDAndStartsDisplay(t *testing.T) {
	m := testModel()
	m, cmd := step(t, m, uploadResultMsg{id: "p1"})
	if m.sess.CurrentPlant() != "p1" {
		t.Errorf("expected stored id 'p1', got '%s'", m.sess.CurrentPlant())
	}
	if cmd == nil {
		t.Error("upload success must trigger the geometry fetch")
	}
	if m.displaySeq != 1 {
		t.Errorf("expected display generation 1, got %d", m.displaySeq)
	}
}

func TestUploadFailureLeavesSessionUntouched(t *testing.T) {
	m := testModel()
	m, cmd := step(t, m, uploadResultMsg{err: &api.StatusError{Op: "upload", Code: http.StatusBadRequest}})
	if cmd != nil {
		t.Error("no display attempt after a failed upload")
	}
	if m.sess.CurrentPlant() != "" {
		t.Errorf("failed upload must not store an id, got '%s'", m.sess.CurrentPlant())
	}
	if m.status == "" {
		t.Error("the user must be notified of the failure")
	}
}

func TestUploadMissingFileNotice(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{err: api.ErrMissingFile})
	if m.status != "nenhum arquivo DXF selecionado" {
		t.Errorf("expected missing-file notice, got %q", m.status)
	}
}

func TestGeometrySuccessRendersOverlay(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	m, cmd := step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})

	ov := m.sess.Overlay()
	if ov == nil || ov.Plant != "p1" {
		t.Fatalf("overlay not installed: %+v", ov)
	}
	if len(ov.Popups) != 1 || ov.Popups[0] != "Área: 12.500 m²\nPerímetro: 9.000 m" {
		t.Errorf("unexpected popups: %q", ov.Popups)
	}
	if m.metrics != "Área total: 12.500 m² | Perímetro total: 9.000 m" {
		t.Errorf("unexpected metrics text: %q", m.metrics)
	}
	if m.bbox != (geom.BBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3}) {
		t.Errorf("viewport not fit to the overlay: %+v", m.bbox)
	}
	if m.zoom != 1.0 || m.offsetX != 0 || m.offsetY != 0 {
		t.Error("viewport should reset on render")
	}
	if cmd == nil {
		t.Error("render must be followed by the report fetch")
	}
	if m.reportURL != "" {
		t.Error("report link stays hidden until the report fetch succeeds")
	}
}

func TestDisplayIdempotent(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	msg := geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()}
	m, _ = step(t, m, msg)
	first := m.metrics
	m, _ = step(t, m, msg)
	if m.sess.Overlay() == nil || m.sess.Overlay().Plant != "p1" {
		t.Fatal("overlay lost on repeated render")
	}
	if m.metrics != first {
		t.Errorf("metrics changed on repeated render: %q vs %q", first, m.metrics)
	}
}

func TestGeometryFailureKeepsPriorOverlay(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	m, _ = step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})
	prevMetrics := m.metrics

	// re-display fails
	m, _ = step(t, m, keyMsg("v"))
	m, cmd := step(t, m, geometryMsg{seq: 2, id: "p1", err: &api.StatusError{Op: "coordinates", Code: 500}})
	if cmd != nil {
		t.Error("no report fetch after a failed geometry fetch")
	}
	if m.sess.Overlay() == nil || m.sess.Overlay().Plant != "p1" {
		t.Error("prior overlay must stay untouched on fetch failure")
	}
	if m.metrics != prevMetrics {
		t.Error("metrics must stay untouched on fetch failure")
	}
}

func TestStaleGeometryDropped(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"}) // generation 1
	m, _ = step(t, m, uploadResultMsg{id: "p2"}) // generation 2 supersedes it
	m, cmd := step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})
	if cmd != nil {
		t.Error("stale geometry must not trigger a report fetch")
	}
	if m.sess.Overlay() != nil {
		t.Error("stale geometry must not install an overlay")
	}
}

func TestReportFailureSwallowed(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	m, _ = step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})
	status := m.status

	m, cmd := step(t, m, reportMsg{seq: 1, err: &api.StatusError{Op: "report", Code: 404}})
	if cmd != nil {
		t.Error("report failure is terminal")
	}
	if m.reportURL != "" {
		t.Error("report link must stay hidden on failure")
	}
	if m.status != status {
		t.Errorf("report failure must not surface a notice, status changed to %q", m.status)
	}
	if m.sess.Overlay() == nil {
		t.Error("render must survive a report failure")
	}
}

func TestReportSuccessShowsLink(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	m, _ = step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})
	m, _ = step(t, m, reportMsg{seq: 1, url: "http://media/reports/p1_report.pdf"})
	if m.reportURL != "http://media/reports/p1_report.pdf" {
		t.Errorf("report link not shown: %q", m.reportURL)
	}
}

func TestStaleReportDropped(t *testing.T) {
	m := testModel()
	m, _ = step(t, m, uploadResultMsg{id: "p1"})
	m, _ = step(t, m, geometryMsg{seq: 1, id: "p1", geo: testGeometry(), col: testCollection()})
	m, _ = step(t, m, uploadResultMsg{id: "p2"}) // generation 2
	m, _ = step(t, m, reportMsg{seq: 1, url: "http://media/reports/p1_report.pdf"})
	if m.reportURL != "" {
		t.Error("stale report link must not be shown")
	}
}
