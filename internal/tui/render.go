package tui

import (
	"fmt"
	"strings"

	"trailmapper/internal/geom"
)

const (
	sidebarWidth = 28
	panelWidth   = 38
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
	panelW             int
}

func (m Model) layout() layout {
	l := layout{contentW: max(10, m.width), contentH: max(4, m.height-headerHeight-footerHeight)}
	l.mapY = headerHeight
	if m.showSidebar {
		l.mapX = sidebarWidth + 1
	}
	l.panelW = panelWidth
	if l.contentW-l.mapX-l.panelW < 20 {
		l.panelW = 0
	}
	l.mapW = max(10, l.contentW-l.mapX-l.panelW)
	l.mapH = l.contentH
	return l
}

// cellToPlanar converts a map cell back to projected metres using bbox, zoom, and pan.
func (m Model) cellToPlanar(cx, cy, w, h int) (geom.PlanarPoint, bool) {
	if m.bbox.Empty() || w <= 1 || h <= 1 {
		return geom.PlanarPoint{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return geom.PlanarPoint{
		X: m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX),
		Y: m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY),
	}, true
}

// screenXYMicro maps projected metres into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(p geom.PlanarPoint, w, h int) (int, int, bool) {
	if m.bbox.Empty() || !p.Finite() {
		return 0, 0, false
	}
	nx := (p.X - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (p.Y - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// nearestPair returns the pair whose target (or prediction) is closest to the
// micro coordinate, with its squared micro distance.
func (m Model) nearestPair(mx, my, w, h int) (id, bx, by, dist int, ok bool) {
	dist = 1<<31 - 1
	for _, p := range m.pairs.Pairs() {
		var cands []geom.PlanarPoint
		if p.Target != nil {
			cands = append(cands, p.Projected())
		}
		if q, has := m.predicted(p); has {
			cands = append(cands, q)
		}
		for _, c := range cands {
			px, py, vis := m.screenXYMicro(c, w, h)
			if !vis {
				continue
			}
			dx, dy := px-mx, py-my
			if d := dx*dx + dy*dy; d < dist {
				id, bx, by, dist, ok = p.ID, px, py, d, true
			}
		}
	}
	return id, bx, by, dist, ok
}

// renderAsciiMap plots map targets as small blocks, and once solved draws a
// vector from each pair's predicted position to its target.
func (m Model) renderAsciiMap(w, h int) string {
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	if m.bbox.Empty() {
		msg := "pick map points to plot them here"
		if y := h / 2; y < h && len(msg) < w {
			lines[y] = strings.Repeat(" ", (w-len(msg))/2) + dimStyle.Render(msg)
		}
		return strings.Join(lines, "\n")
	}
	br := newBrailleBuf(w, h)

	type mark struct{ cx, cy int }
	var selected []mark
	selID := m.pairs.SelectedID()
	for _, p := range m.pairs.Pairs() {
		var tx, ty int
		hasT := false
		if p.Target != nil && m.showTargets {
			tx, ty, hasT = m.screenXYMicro(p.Projected(), w, h)
			if hasT {
				br.block(tx, ty)
			}
		}
		q, hasQ := m.predicted(p)
		if hasQ && m.showVectors {
			if qx, qy, vis := m.screenXYMicro(q, w, h); vis {
				if hasT {
					br.drawLineMicro(qx, qy, tx, ty)
				} else {
					// source-only pair: show where the fit puts it
					br.setPixel(qx, qy)
				}
				if p.ID == selID && !hasT {
					selected = append(selected, mark{qx / 2, qy / 4})
				}
			}
		}
		if p.ID == selID && hasT {
			selected = append(selected, mark{tx / 2, ty / 4})
		}
	}

	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Styled glyphs go in last, one per row, since they break rune indexing.
	type glyphAt struct {
		x     int
		glyph string
	}
	overlay := map[int]glyphAt{}
	for _, s := range selected {
		overlay[s.cy] = glyphAt{s.cx, selStyle.Render("◆")}
	}
	if m.hovering {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if _, taken := overlay[cy]; !taken {
			overlay[cy] = glyphAt{cx, hoverStyle.Render("◯")}
		}
	}
	for cy, o := range overlay {
		if cy < 0 || cy >= len(lines) {
			continue
		}
		r := []rune(lines[cy])
		if o.x < 0 || o.x >= len(r) {
			continue
		}
		lines[cy] = string(r[:o.x]) + o.glyph + string(r[o.x+1:])
	}
	return strings.Join(lines, "\n")
}

// renderFitPanel lists the fit status, parameters and per-pair residuals.
func (m Model) renderFitPanel(w, h int) string {
	total, complete := m.pairs.Counts()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fit") + "\n")
	b.WriteString(m.fit.Summary() + "\n")
	fmt.Fprintf(&b, "%d pair(s), %d complete\n", total, complete)
	fmt.Fprintf(&b, "scale %.4f m/px\n", m.scale)
	if m.raster != nil {
		b.WriteString(dimStyle.Render("image "+m.raster.String()) + "\n")
	}
	if m.fit.Solved() {
		p := m.fit.Params
		fmt.Fprintf(&b, "a=%.6f b=%.6f\n", p[0], p[1])
		fmt.Fprintf(&b, "c=%.2f\n", p[2])
		fmt.Fprintf(&b, "d=%.6f e=%.6f\n", p[3], p[4])
		fmt.Fprintf(&b, "f=%.2f\n", p[5])
	}
	b.WriteString("\n" + titleStyle.Render("Pairs") + "\n")
	selID := m.pairs.SelectedID()
	for _, p := range m.pairs.Pairs() {
		cur := "  "
		if p.ID == selID {
			cur = "> "
		}
		line := fmt.Sprintf("%s#%-3d %s", cur, p.ID, p.State())
		if e, ok := m.fit.Residual(p.ID); ok {
			line += fmt.Sprintf("  %8.2f m", e)
		}
		if p.ID == selID {
			line = selStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if sel, ok := m.pairs.Selected(); ok {
		b.WriteString("\n" + dimStyle.Render("src "+fmtSource(sel.Source)) + "\n")
		b.WriteString(dimStyle.Render("map "+fmtTarget(sel.Target)) + "\n")
	}
	return boxStyle.Width(w - 2).Height(h - 2).Render(strings.TrimRight(b.String(), "\n"))
}
