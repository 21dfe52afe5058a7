package geom

import "testing"

func TestParseCollectionFeatureCollection(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,3],[0,3],[0,0]]]},
				"properties": {"area": 12.5, "perimeter": 9.0}
			},
			{
				"type": "Feature",
				"geometry": {"type": "LineString", "coordinates": [[1,1],[2,2]]},
				"properties": {}
			}
		]
	}`)
	c, err := ParseCollection(data)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if len(c.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(c.Features))
	}
	poly := c.Features[0]
	if len(poly.Polygon) != 1 || len(poly.Polygon[0]) != 5 {
		t.Errorf("unexpected polygon shape: %v", poly.Polygon)
	}
	if poly.Area == nil || *poly.Area != 12.5 {
		t.Errorf("unexpected area: %v", poly.Area)
	}
	if poly.Perimeter == nil || *poly.Perimeter != 9.0 {
		t.Errorf("unexpected perimeter: %v", poly.Perimeter)
	}
	line := c.Features[1]
	if len(line.Line) != 2 {
		t.Errorf("unexpected line: %v", line.Line)
	}
	if line.Area != nil || line.Perimeter != nil {
		t.Error("missing properties should stay nil")
	}
	want := BBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3}
	if c.BBox != want {
		t.Errorf("unexpected bbox: %+v", c.BBox)
	}
}

func TestParseCollectionBareGeometry(t *testing.T) {
	data := []byte(`{"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,0]]]}`)
	c, err := ParseCollection(data)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if len(c.Features) != 1 || len(c.Features[0].Polygon) != 1 {
		t.Fatalf("expected a single polygon feature, got %+v", c.Features)
	}
	if c.Features[0].Area != nil {
		t.Error("bare geometry carries no metrics")
	}
}

func TestParseCollectionMalformedMetrics(t *testing.T) {
	data := []byte(`{
		"type": "Feature",
		"geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,0]]]},
		"properties": {"area": "doze", "perimeter": null}
	}`)
	c, err := ParseCollection(data)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	f := c.Features[0]
	if f.Area != nil || f.Perimeter != nil {
		t.Errorf("malformed metrics should stay nil: %+v", f)
	}
}

func TestParseCollectionMultiPolygon(t *testing.T) {
	data := []byte(`{"type": "MultiPolygon", "coordinates": [
		[[[0,0],[1,0],[1,1],[0,0]]],
		[[[2,2],[3,2],[3,3],[2,2]]]
	]}`)
	c, err := ParseCollection(data)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if len(c.Features) != 2 {
		t.Errorf("expected one feature per polygon, got %d", len(c.Features))
	}
}

func TestParseCollectionEmpty(t *testing.T) {
	if _, err := ParseCollection([]byte(`{"type": "FeatureCollection", "features": []}`)); err == nil {
		t.Error("expected error for empty collection")
	}
	if _, err := ParseCollection([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestCollectionAccessors(t *testing.T) {
	c := Collection{Features: []Feature{
		{Polygon: [][][2]float64{{{0, 0}, {1, 0}, {1, 1}}}},
		{Line: [][2]float64{{0, 0}, {1, 1}}},
	}}
	if len(c.Polygons()) != 1 {
		t.Errorf("expected 1 polygon, got %d", len(c.Polygons()))
	}
	if len(c.Lines()) != 1 {
		t.Errorf("expected 1 line, got %d", len(c.Lines()))
	}
}
