package report

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"trailmapper/internal/geom"
	"trailmapper/internal/georef"
)

func TestWriteXLSX(t *testing.T) {
	ele := 42.0
	pairs := []geom.PointPair{
		{ID: 1, Source: &geom.ImagePoint{X: 10, Y: 20}, Target: &geom.GeoPoint{Lat: 49.8, Lng: -124.5, Elevation: &ele}},
		{ID: 2, Source: &geom.ImagePoint{X: 30, Y: 40}},
	}
	fit := georef.FitResult{
		Status:    georef.StatusSolved,
		Params:    georef.Identity,
		Residuals: []georef.Residual{{PairID: 1, Error: 1.25}},
		RMSError:  1.25,
		Pairs:     1,
	}
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), FileName(now))
	if err := WriteXLSX(path, pairs, 0.5, fit, now); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != fitSheet || got[1] != residualsSheet {
		t.Fatalf("sheets = %v", got)
	}
	summary, err := f.GetRows(fitSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 13 || summary[1][1] != "solved" || summary[6][0] != "RMS error (m)" {
		t.Fatalf("summary rows = %v", summary)
	}

	rows, err := f.GetRows(residualsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("residual rows = %v", rows)
	}
	if rows[1][0] != "1" || rows[1][5] != "42" {
		t.Errorf("first row = %v", rows[1])
	}
	if e, err := strconv.ParseFloat(rows[1][8], 64); err != nil || e != 1.25 {
		t.Errorf("error cell = %q", rows[1][8])
	}
	if len(rows[2]) > 3 {
		t.Errorf("incomplete pair row has target/error cells: %v", rows[2])
	}
}

func TestWriteXLSXUnsolved(t *testing.T) {
	fit := georef.Solve(nil, 1)
	path := filepath.Join(t.TempDir(), "unsolved.xlsx")
	if err := WriteXLSX(path, nil, 1, fit, time.Now()); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	summary, err := f.GetRows(fitSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 6 || summary[2][1] != "Need 3 completed point pairs." {
		t.Fatalf("summary = %v", summary)
	}
}
