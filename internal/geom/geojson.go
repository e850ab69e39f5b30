package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// LoadGeoJSON extracts target points from a GeoJSON file.
func LoadGeoJSON(path string) ([]GeoPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGeoJSON(f)
}

// ReadGeoJSON supports Point, MultiPoint, Feature and FeatureCollection of
// Points/MultiPoints. GeoJSON positions are [lon, lat(, elevation)].
func ReadGeoJSON(r io.Reader) ([]GeoPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, errors.New("invalid geojson: missing type")
	}

	var points []GeoPoint
	parsePoint := func(v any) (GeoPoint, bool) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return GeoPoint{}, false
		}
		lon, lok := a[0].(float64)
		lat, aok := a[1].(float64)
		if !lok || !aok {
			return GeoPoint{}, false
		}
		g := GeoPoint{Lat: lat, Lng: lon}
		if len(a) > 2 {
			if ele, ok := a[2].(float64); ok {
				g.Elevation = &ele
			}
		}
		return g, true
	}
	walkGeom := func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				points = append(points, pt)
			}
		case "MultiPoint":
			arr, _ := g["coordinates"].([]any)
			for _, el := range arr {
				if pt, ok := parsePoint(el); ok {
					points = append(points, pt)
				}
			}
		}
	}

	switch t {
	case "Point", "MultiPoint":
		walkGeom(raw)
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			fm, _ := f.(map[string]any)
			if g, ok := fm["geometry"].(map[string]any); ok {
				walkGeom(g)
			}
		}
	default:
		return nil, errors.New("unsupported geojson type: " + t)
	}

	if len(points) == 0 {
		return nil, errors.New("no points found in geojson")
	}
	return points, nil
}
