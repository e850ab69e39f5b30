package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"trailmapper/internal/geom"
)

func pairColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "St", Width: 3},
		{Title: "Source px", Width: 18},
		{Title: "Target lat, lng", Width: 24},
		{Title: "Error m", Width: 10},
	}
}

// refreshTable rebuilds the pairs table rows from the current set and fit.
func (m *Model) refreshTable() {
	ps := m.pairs.Pairs()
	rows := make([]table.Row, 0, len(ps))
	cursor := 0
	for i, p := range ps {
		if p.ID == m.pairs.SelectedID() {
			cursor = i
		}
		errCell := ""
		if e, ok := m.fit.Residual(p.ID); ok {
			errCell = fmt.Sprintf("%.2f", e)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.ID),
			p.State(),
			fmtSource(p.Source),
			fmtTarget(p.Target),
			errCell,
		})
	}
	// rows must never outnumber columns during SetColumns, so clear first
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(pairColumns())
	m.tbl.SetRows(rows)
	m.tbl.SetCursor(cursor)
}

func fmtSource(p *geom.ImagePoint) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f, %.1f", p.X, p.Y)
}

func fmtTarget(g *geom.GeoPoint) string {
	if g == nil {
		return "-"
	}
	return fmt.Sprintf("%.6f, %.6f", g.Lat, g.Lng)
}
