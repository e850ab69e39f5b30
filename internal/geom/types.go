package geom

import "math"

// GeoPoint is a WGS84 position picked on the reference map.
type GeoPoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// ImagePoint is a pixel position in the source raster's native resolution.
type ImagePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlanarPoint is a projected position in metres.
type PlanarPoint struct {
	X float64
	Y float64
}

// Finite reports whether both coordinates are finite.
func (p PlanarPoint) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Distance returns the Euclidean distance to q.
func (p PlanarPoint) Distance(q PlanarPoint) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointPair links a source pixel to a map position. Either side may be missing
// while the user is still picking.
type PointPair struct {
	ID     int         `json:"id"`
	Source *ImagePoint `json:"source"`
	Target *GeoPoint   `json:"target"`
}

// Complete reports whether both ends of the pair are set.
func (p PointPair) Complete() bool { return p.Source != nil && p.Target != nil }

// State is the short S/M marker shown next to a pair id.
func (p PointPair) State() string {
	s, t := "-", "-"
	if p.Source != nil {
		s = "S"
	}
	if p.Target != nil {
		t = "M"
	}
	return s + t
}

// Scaled returns the source point multiplied by metres per pixel.
func (p PointPair) Scaled(scale float64) PlanarPoint {
	return PlanarPoint{X: p.Source.X * scale, Y: p.Source.Y * scale}
}

// Projected returns the target in Web Mercator metres.
func (p PointPair) Projected() PlanarPoint {
	return Project(p.Target.Lat, p.Target.Lng)
}

// CompletePairs returns the complete pairs in input order.
func CompletePairs(pairs []PointPair) []PointPair {
	out := make([]PointPair, 0, len(pairs))
	for _, p := range pairs {
		if p.Complete() {
			out = append(out, p)
		}
	}
	return out
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Empty reports whether the box has no area.
func (b BBox) Empty() bool { return !(b.MaxX > b.MinX && b.MaxY > b.MinY) }

// Extend grows b to include (x, y). ok is false on the first call, in which case
// the box collapses onto the point.
func (b BBox) Extend(x, y float64, ok bool) BBox {
	if !ok {
		return BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
	}
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Pad widens the box by frac of its size on each side, and gives degenerate boxes
// a minimum extent of minSize so a single point can still be plotted.
func (b BBox) Pad(frac, minSize float64) BBox {
	w, h := b.MaxX-b.MinX, b.MaxY-b.MinY
	if w < minSize {
		cx := (b.MinX + b.MaxX) / 2
		b.MinX, b.MaxX = cx-minSize/2, cx+minSize/2
		w = minSize
	}
	if h < minSize {
		cy := (b.MinY + b.MaxY) / 2
		b.MinY, b.MaxY = cy-minSize/2, cy+minSize/2
		h = minSize
	}
	b.MinX -= w * frac
	b.MaxX += w * frac
	b.MinY -= h * frac
	b.MaxY += h * frac
	return b
}
