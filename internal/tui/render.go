package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellToLonLat converts a map cell coordinate back to drawing coordinates
// using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	ov := m.sess.Overlay()
	if ov == nil {
		return strings.Join(lines, "\n")
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	// Draw polygons (fill then edges)
	if m.showPolys {
		for _, poly := range ov.Data.Polygons() {
			// project rings to the microgrid
			var ringsMic [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			// fill using even-odd rule per scanline on outer ring (holes ignored for now)
			outerMic := ringsMic[0]
			hMic := h * 4
			for yMic := 0; yMic < hMic; yMic++ {
				var xs []int
				for i := 0; i < len(outerMic); i++ {
					a := outerMic[i]
					b := outerMic[(i+1)%len(outerMic)]
					if a[1] == b[1] { // horizontal edge: skip
						continue
					}
					y0, y1 := a[1], b[1]
					x0, x1 := a[0], b[0]
					if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
						t := float64(yMic-y0) / float64(y1-y0)
						xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
					}
				}
				if len(xs) >= 2 {
					sort.Ints(xs)
					for i := 0; i+1 < len(xs); i += 2 {
						xstart, xend := xs[i], xs[i+1]
						if xstart > xend {
							xstart, xend = xend, xstart
						}
						for xMic := max(0, xstart); xMic <= xend; xMic++ {
							br.setPixel(xMic, yMic)
						}
					}
				}
			}
			// draw edges (high-res)
			for _, r := range ringsMic {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	// Draw loose line strings (high-res)
	if m.showLines {
		for _, ls := range ov.Data.Lines() {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		if len(braLines[y]) == 0 {
			continue
		}
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering && m.hoverFeat >= 0 {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				// rebuild line with ANSI sequence at position cx
				pre := string(r[:cx])
				post := string(r[cx+1:])
				lines[cy] = pre + circle + post
			}
		}
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps drawing coordinates into a 2x4 microgrid per cell for
// braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps drawing coordinates to screen cells considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest picks the feature with a vertex closest to the viewport
// center (or to the hovered cell when the mouse is over the map).
func (m Model) inspectNearest() (feat int, lon, lat float64, ok bool) {
	ov := m.sess.Overlay()
	if ov == nil {
		return -1, 0, 0, false
	}
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	if m.hovering && m.hoverFeat >= 0 {
		cx, cy = m.hoverCellX, m.hoverCellY
	}
	bestD := 1<<31 - 1
	best := -1
	var bp [2]float64
	consider := func(i int, p [2]float64) {
		sx, sy, ok2 := m.screenXY(p[0], p[1], w, h)
		if !ok2 {
			return
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = i
			bp = p
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
	if best < 0 {
		return -1, 0, 0, false
	}
	return best, bp[0], bp[1], true
}
