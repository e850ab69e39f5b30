package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts target points from a KML file (Placemark > Point > coordinates).
func LoadKML(path string) ([]GeoPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKML(f)
}

// ReadKML parses KML placemark points. KML coordinates are "lon,lat[,alt]";
// altitude becomes the point's elevation.
func ReadKML(r io.Reader) ([]GeoPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
			Folders    []struct {
				Placemarks []kmlPlacemark `xml:"Placemark"`
			} `xml:"Folder"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	all := append([]kmlPlacemark{}, doc.Placemarks...)
	all = append(all, doc.Document.Placemarks...)
	for _, f := range doc.Document.Folders {
		all = append(all, f.Placemarks...)
	}

	var points []GeoPoint
	for _, pm := range all {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by spaces
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			g := GeoPoint{Lat: lat, Lng: lon}
			if len(vals) > 2 {
				if alt, err := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64); err == nil {
					g.Elevation = &alt
				}
			}
			points = append(points, g)
		}
	}
	if len(points) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return points, nil
}
