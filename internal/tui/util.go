package tui

import (
	"fmt"
	"strconv"
	"strings"

	"trailmapper/internal/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fields splits "a b", "a, b" or "a;b" into numbers.
func fields(s string) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseSource reads a pixel position "x y".
func parseSource(s string) (geom.ImagePoint, error) {
	v, err := fields(s)
	if err != nil {
		return geom.ImagePoint{}, err
	}
	if len(v) != 2 {
		return geom.ImagePoint{}, fmt.Errorf("want x y, got %d value(s)", len(v))
	}
	return geom.ImagePoint{X: v[0], Y: v[1]}, nil
}

// parseTarget reads "lat lng [elevation]" or a WKT POINT (lng lat order).
func parseTarget(s string) (geom.GeoPoint, error) {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] < '0' || s[0] > '9') && s[0] != '-' && s[0] != '+' && s[0] != '.' {
		pts, err := geom.ParseWKT(s)
		if err != nil {
			return geom.GeoPoint{}, err
		}
		return pts[0], nil
	}
	v, err := fields(s)
	if err != nil {
		return geom.GeoPoint{}, err
	}
	if len(v) < 2 || len(v) > 3 {
		return geom.GeoPoint{}, fmt.Errorf("want lat lng, got %d value(s)", len(v))
	}
	if v[0] < -90 || v[0] > 90 || v[1] < -180 || v[1] > 180 {
		return geom.GeoPoint{}, fmt.Errorf("lat/lng out of range: %g, %g", v[0], v[1])
	}
	g := geom.GeoPoint{Lat: v[0], Lng: v[1]}
	if len(v) == 3 {
		e := v[2]
		g.Elevation = &e
	}
	return g, nil
}
