package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Feature is one shape extracted from a plant drawing: either a polygon with
// rings (first outer, following holes) or a loose line string. Area and
// Perimeter come from the GeoJSON properties and are nil when the backend did
// not compute them.
type Feature struct {
	Polygon   [][][2]float64
	Line      [][2]float64
	Area      *float64
	Perimeter *float64
}

// Collection is the renderable geometry of one plant.
type Collection struct {
	Features []Feature
	BBox     BBox
}

// Polygons returns the ring sets of the polygon features.
func (c Collection) Polygons() [][][][2]float64 {
	var out [][][][2]float64
	for _, f := range c.Features {
		if len(f.Polygon) > 0 {
			out = append(out, f.Polygon)
		}
	}
	return out
}

// Lines returns the loose line features.
func (c Collection) Lines() [][][2]float64 {
	var out [][][2]float64
	for _, f := range c.Features {
		if len(f.Line) > 0 {
			out = append(out, f.Line)
		}
	}
	return out
}
