package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT parses POINT, POINT Z and MULTIPOINT into target points.
// WKT axis order is "lon lat [elevation]".
func ParseWKT(wkt string) ([]GeoPoint, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	if !strings.HasPrefix(up, "POINT") && !strings.HasPrefix(up, "MULTIPOINT") {
		return nil, errors.New("unsupported wkt type")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, errors.New("wkt point: invalid")
	}
	// MULTIPOINT((1 2), (3 4)) and MULTIPOINT(1 2, 3 4) are both valid
	block := strings.NewReplacer("(", " ", ")", " ").Replace(s[i+1 : j])

	var points []GeoPoint
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		g := GeoPoint{Lat: y, Lng: x}
		if len(parts) > 2 {
			if z, err := strconv.ParseFloat(parts[2], 64); err == nil {
				g.Elevation = &z
			}
		}
		points = append(points, g)
	}
	if len(points) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return points, nil
}
