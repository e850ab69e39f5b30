package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"trailmapper/internal/geom"
	"trailmapper/internal/report"
)

// pickRadius is the squared micro-pixel distance a click may land from a point.
const pickRadius = 36

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		l := m.layout()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, l.contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.closePaste("view mode")
				return m, nil
			case "enter":
				m.submitPaste(strings.TrimSpace(m.ta.Value()))
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showTable {
			switch msg.String() {
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				if row := m.tbl.SelectedRow(); row != nil {
					if id, err := strconv.Atoi(row[0]); err == nil {
						_ = m.pairs.Select(id)
					}
				}
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showTargets = !m.showTargets
			m.status = fmt.Sprintf("targets: %v", m.showTargets)
		case "2":
			m.showVectors = !m.showVectors
			m.status = fmt.Sprintf("residual vectors: %v", m.showVectors)
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
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				l := m.layout()
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, l.contentH-2)
			}
		case "n":
			id := m.pairs.Add()
			m.status = fmt.Sprintf("added pair #%d", id)
			m.resolve()
		case "]":
			id := m.pairs.SelectNext(1)
			m.status = fmt.Sprintf("selected pair #%d", id)
			m.refreshTable()
		case "[":
			id := m.pairs.SelectNext(-1)
			m.status = fmt.Sprintf("selected pair #%d", id)
			m.refreshTable()
		case "x":
			m.pairs.ClearSelected()
			m.status = fmt.Sprintf("cleared pair #%d", m.pairs.SelectedID())
			m.resolve()
		case "s":
			m.openPaste(pasteSource, "source pixel for pair #%d: x y")
		case "t":
			m.openPaste(pasteTarget, "map point for pair #%d: lat lng or WKT POINT")
		case "m":
			m.openPaste(pasteScale, "metres per pixel")
			m.ta.SetValue(strconv.FormatFloat(m.scale, 'g', -1, 64))
		case "e":
			m.exportPairs()
		case "r":
			m.writeReport()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showTable = !m.showTable
			if m.showTable {
				m.refreshTable()
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
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
		l := m.layout()
		cx, cy := msg.X, msg.Y
		if !m.showTable && !m.pasteMode && cx >= l.mapX && cx < l.mapX+l.mapW && cy >= l.mapY && cy < l.mapY+l.mapH {
			hx, hy := cx-l.mapX, cy-l.mapY
			m.hovering = false
			m.hoverHasGeo = false
			if p, ok := m.cellToPlanar(hx, hy, l.mapW, l.mapH); ok {
				lat, lng := geom.Unproject(p)
				m.hoverHasGeo = true
				m.hoverLat, m.hoverLng = lat, lng
			}
			if id, bx, by, d, ok := m.nearestPair(hx*2, hy*4, l.mapW, l.mapH); ok {
				m.hovering = true
				m.hoverMicX, m.hoverMicY = bx, by
				if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && d <= pickRadius {
					_ = m.pairs.Select(id)
					m.status = fmt.Sprintf("selected pair #%d", id)
					m.refreshTable()
				}
			}
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

func (m *Model) openPaste(kind pasteKind, prompt string) {
	m.pasteMode = true
	m.pasteKind = kind
	m.ta.SetValue("")
	if strings.Contains(prompt, "%d") {
		prompt = fmt.Sprintf(prompt, m.pairs.SelectedID())
	}
	m.ta.Placeholder = prompt
	m.status = "paste: " + prompt
	m.ta.Focus()
}

func (m *Model) closePaste(status string) {
	m.pasteMode = false
	m.ta.Blur()
	m.status = status
}

// submitPaste applies the paste box to the selected pair or the scale. The box
// stays open on a parse error so the input can be fixed.
func (m *Model) submitPaste(v string) {
	if v == "" {
		m.status = "paste: empty"
		return
	}
	id := m.pairs.SelectedID()
	switch m.pasteKind {
	case pasteSource:
		p, err := parseSource(v)
		if err != nil {
			m.status = "source error: " + err.Error()
			return
		}
		if m.raster != nil && !m.raster.Contains(p) {
			m.status = fmt.Sprintf("source error: %.1f, %.1f is outside %s", p.X, p.Y, m.raster.String())
			return
		}
		if err := m.pairs.SetSource(p); err != nil {
			m.status = "source error: " + err.Error()
			return
		}
		m.closePaste(fmt.Sprintf("pair #%d source %s", id, fmtSource(&p)))
	case pasteTarget:
		g, err := parseTarget(v)
		if err != nil {
			m.status = "target error: " + err.Error()
			return
		}
		if err := m.pairs.SetTarget(g); err != nil {
			m.status = "target error: " + err.Error()
			return
		}
		m.closePaste(fmt.Sprintf("pair #%d target %s", id, fmtTarget(&g)))
	case pasteScale:
		s, err := strconv.ParseFloat(v, 64)
		if err != nil || !(s > 0) || s > 1e9 {
			m.status = "scale error: metres per pixel must be a positive number"
			return
		}
		m.scale = s
		m.closePaste(fmt.Sprintf("scale %.4f m/px", s))
	}
	m.resolve()
}

// writeReport saves the current fit as a spreadsheet in the export dir.
func (m *Model) writeReport() {
	now := m.now()
	path := filepath.Join(m.exportDir, report.FileName(now))
	if err := report.WriteXLSX(path, m.pairs.Pairs(), m.scale, m.fit, now); err != nil {
		m.fail("report error", err)
		return
	}
	m.status = "wrote report " + filepath.Base(path)
	m.log.Info("report written", "path", path, "status", m.fit.Status.String())
}
