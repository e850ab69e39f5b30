// Package report writes a georeferencing fit to a spreadsheet.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"trailmapper/internal/geom"
	"trailmapper/internal/georef"
)

const (
	fitSheet       = "Fit"
	residualsSheet = "Residuals"
)

// FileName is the default report name for a report taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("trailmapper-fit-%d.xlsx", now.UnixMilli())
}

// WriteXLSX writes the fit summary and one residual row per pair to path.
// Pairs without a residual (incomplete, or an unsolved fit) are listed with an
// empty error cell.
func WriteXLSX(path string, pairs []geom.PointPair, scale float64, fit georef.FitResult, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the summary so it stays first and active
	f.SetSheetName("Sheet1", fitSheet)
	sw, err := f.NewStreamWriter(fitSheet)
	if err != nil {
		return err
	}
	total := len(pairs)
	rows := [][]interface{}{
		{"Generated", now.UTC().Format(time.RFC3339)},
		{"Status", fit.Status.String()},
		{"Summary", fit.Summary()},
		{"Pairs", total},
		{"Complete pairs", fit.Pairs},
		{"Metres per pixel", scale},
	}
	if fit.Solved() {
		rows = append(rows, []interface{}{"RMS error (m)", fit.RMSError})
		for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
			rows = append(rows, []interface{}{name, fit.Params[i]})
		}
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := sw.SetRow(cell, r); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if _, err := f.NewSheet(residualsSheet); err != nil {
		return err
	}
	sw, err = f.NewStreamWriter(residualsSheet)
	if err != nil {
		return err
	}
	headers := []interface{}{
		"Pair", "Source X (px)", "Source Y (px)", "Latitude", "Longitude", "Elevation",
		"Projected X (m)", "Projected Y (m)", "Error (m)",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}
	for i, p := range pairs {
		row := make([]interface{}, len(headers))
		row[0] = p.ID
		if p.Source != nil {
			row[1], row[2] = p.Source.X, p.Source.Y
		}
		if p.Target != nil {
			row[3], row[4] = p.Target.Lat, p.Target.Lng
			if p.Target.Elevation != nil {
				row[5] = *p.Target.Elevation
			}
			if t := p.Projected(); t.Finite() {
				row[6], row[7] = t.X, t.Y
			}
		}
		if e, ok := fit.Residual(p.ID); ok {
			row[8] = e
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
