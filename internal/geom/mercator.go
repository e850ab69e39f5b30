package geom

import "math"

// MercatorExtent is half the spherical Web Mercator (EPSG:3857) extent at the
// equator in metres.
const MercatorExtent = 20037508.34

// MaxLatitude is the latitude at which Web Mercator becomes square.
var MaxLatitude = 2*math.Atan(math.Exp(math.Pi))*180/math.Pi - 90

// Project converts a geographic coordinate to spherical Web Mercator metres.
// At or beyond the poles Y is ±Inf (floating-point tan would otherwise give a
// large finite value at +90); callers must check Finite.
func Project(lat, lng float64) PlanarPoint {
	x := lng * MercatorExtent / 180
	if lat >= 90 {
		return PlanarPoint{X: x, Y: math.Inf(1)}
	}
	if lat <= -90 {
		return PlanarPoint{X: x, Y: math.Inf(-1)}
	}
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	return PlanarPoint{X: x, Y: y * MercatorExtent / 180}
}

// Unproject is the inverse of Project.
func Unproject(p PlanarPoint) (lat, lng float64) {
	lng = p.X * 180 / MercatorExtent
	y := p.Y * 180 / MercatorExtent
	lat = 360/math.Pi*math.Atan(math.Exp(y*math.Pi/180)) - 90
	return lat, lng
}
