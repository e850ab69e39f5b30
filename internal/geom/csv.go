package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadPairsCSV reads control point pairs from a CSV file.
func LoadPairsCSV(path string) ([]PointPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPairsCSV(f)
}

// ReadPairsCSV reads pairs from CSV with a header row.
// Column detection (case-insensitive): id, x|px|sourcex, y|py|sourcey,
// lat|latitude, lon|lng|long|longitude, ele|elevation|alt.
// Empty source or target cells leave that side of the pair unset.
func ReadPairsCSV(r io.Reader) ([]PointPair, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxID, idxX, idxY, idxLat, idxLon, idxEle := -1, -1, -1, -1, -1, -1
	first := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			first(&idxID, i)
		case "x", "px", "sourcex":
			first(&idxX, i)
		case "y", "py", "sourcey":
			first(&idxY, i)
		case "lat", "latitude":
			first(&idxLat, i)
		case "lon", "lng", "long", "longitude":
			first(&idxLon, i)
		case "ele", "elevation", "alt":
			first(&idxEle, i)
		}
	}
	hasSource := idxX != -1 && idxY != -1
	hasTarget := idxLat != -1 && idxLon != -1
	if !hasSource && !hasTarget {
		return nil, errors.New("csv: no x/y or latitude/longitude columns found")
	}
	cell := func(row []string, i int) (float64, bool) {
		if i < 0 || i >= len(row) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		return v, err == nil
	}
	var pairs []PointPair
	seen := map[int]bool{}
	next := 1
	for _, row := range recs[1:] {
		p := PointPair{}
		if id, ok := cell(row, idxID); ok && id > 0 && !seen[int(id)] {
			p.ID = int(id)
		}
		if hasSource {
			x, okx := cell(row, idxX)
			y, oky := cell(row, idxY)
			if okx && oky {
				p.Source = &ImagePoint{X: x, Y: y}
			}
		}
		if hasTarget {
			lat, oka := cell(row, idxLat)
			lon, oko := cell(row, idxLon)
			if oka && oko {
				p.Target = &GeoPoint{Lat: lat, Lng: lon}
				if ele, ok := cell(row, idxEle); ok {
					p.Target.Elevation = &ele
				}
			}
		}
		if p.Source == nil && p.Target == nil {
			continue
		}
		if p.ID == 0 {
			for seen[next] {
				next++
			}
			p.ID = next
		}
		seen[p.ID] = true
		pairs = append(pairs, p)
	}
	if len(pairs) == 0 {
		return nil, errors.New("csv: no valid pairs parsed")
	}
	return pairs, nil
}
