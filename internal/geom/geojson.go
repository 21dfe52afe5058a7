package geom

import (
	"encoding/json"
	"errors"
)

// ParseCollection decodes the GeoJSON a plant's coordinates call returns into
// renderable features. Accepts a FeatureCollection, a single Feature, or a
// bare geometry (the DXF parser emits a bare Polygon for simple drawings).
// Supported geometries: Polygon, MultiPolygon, LineString, MultiLineString.
func ParseCollection(data []byte) (Collection, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Collection{}, err
	}
	var c Collection
	seen := 0
	grow := func(pt [2]float64) {
		if seen == 0 {
			c.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		} else {
			if pt[0] < c.BBox.MinX {
				c.BBox.MinX = pt[0]
			}
			if pt[1] < c.BBox.MinY {
				c.BBox.MinY = pt[1]
			}
			if pt[0] > c.BBox.MaxX {
				c.BBox.MaxX = pt[0]
			}
			if pt[1] > c.BBox.MaxY {
				c.BBox.MaxY = pt[1]
			}
		}
		seen++
	}
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return [2]float64{x, y}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (pts [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts, true
	}
	parsePolygon := func(v any) (poly [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, ring := range arr {
			if pts, ok := parseRing(ring); ok && len(pts) >= 3 {
				poly = append(poly, pts)
			}
		}
		return poly, len(poly) > 0
	}
	// metric reads an optional numeric property; anything non-numeric stays nil
	metric := func(props map[string]any, key string) *float64 {
		if props == nil {
			return nil
		}
		if v, ok := props[key].(float64); ok {
			return &v
		}
		return nil
	}
	addGeom := func(g map[string]any, props map[string]any) {
		gt, _ := g["type"].(string)
		area := metric(props, "area")
		per := metric(props, "perimeter")
		switch gt {
		case "Polygon":
			if poly, ok := parsePolygon(g["coordinates"]); ok {
				c.Features = append(c.Features, Feature{Polygon: poly, Area: area, Perimeter: per})
				for _, ring := range poly {
					for _, p := range ring {
						grow(p)
					}
				}
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if poly, ok := parsePolygon(el); ok {
						c.Features = append(c.Features, Feature{Polygon: poly, Area: area, Perimeter: per})
						for _, ring := range poly {
							for _, p := range ring {
								grow(p)
							}
						}
					}
				}
			}
		case "LineString":
			if pts, ok := parseRing(g["coordinates"]); ok && len(pts) >= 2 {
				c.Features = append(c.Features, Feature{Line: pts, Area: area, Perimeter: per})
				for _, p := range pts {
					grow(p)
				}
			}
		case "MultiLineString":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if pts, ok := parseRing(el); ok && len(pts) >= 2 {
						c.Features = append(c.Features, Feature{Line: pts, Area: area, Perimeter: per})
						for _, p := range pts {
							grow(p)
						}
					}
				}
			}
		}
	}
	addFeature := func(fm map[string]any) {
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		props, _ := fm["properties"].(map[string]any)
		addGeom(g, props)
	}
	t, _ := raw["type"].(string)
	switch t {
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					addFeature(fm)
				}
			}
		}
	case "Feature":
		addFeature(raw)
	default:
		addGeom(raw, nil)
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("no geometries found")
	}
	return c, nil
}
