package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

// SchemaVersion is written into every pairs export.
const SchemaVersion = 1

// Import is the result of reading a pairs file.
type Import struct {
	Pairs []PointPair
	// MetersPerPixel is zero when the file carries no usable scale.
	MetersPerPixel float64
	Units          string
}

type rawImport struct {
	Pairs  []exportPair `json:"pairs"`
	Points []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"points"`
	ControlPoints []struct {
		SourceX float64 `json:"sourceX"`
		SourceY float64 `json:"sourceY"`
	} `json:"controlPoints"`
	MetersPerPixel *float64 `json:"metersPerPixel"`
	Units          string   `json:"units"`
}

// LoadPairs reads a pairs JSON file.
func LoadPairs(path string) (Import, error) {
	f, err := os.Open(path)
	if err != nil {
		return Import{}, err
	}
	defer f.Close()
	return ReadPairs(f)
}

// ReadPairs accepts either an export document or a plain list of source points
// ("points" with x/y, or "controlPoints" with sourceX/sourceY). Plain source
// lists get sequential ids starting at 1.
func ReadPairs(r io.Reader) (Import, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Import{}, err
	}
	var raw rawImport
	if err := json.Unmarshal(data, &raw); err != nil {
		return Import{}, fmt.Errorf("pairs: %w", err)
	}
	imp := Import{Units: raw.Units}
	if imp.Units == "" {
		imp.Units = "assumed metres"
	}
	if raw.MetersPerPixel != nil {
		if v := *raw.MetersPerPixel; v > 0 && !math.IsInf(v, 0) {
			imp.MetersPerPixel = v
		}
	}
	switch {
	case len(raw.Pairs) > 0:
		// ids must stay unique; missing or repeated ones are renumbered past the largest
		next := 0
		for _, ep := range raw.Pairs {
			next = max(next, ep.ID)
		}
		seen := make(map[int]bool, len(raw.Pairs))
		for _, ep := range raw.Pairs {
			id := ep.ID
			if id <= 0 || seen[id] {
				next++
				id = next
			}
			seen[id] = true
			imp.Pairs = append(imp.Pairs, PointPair{ID: id, Source: ep.Source, Target: ep.Target})
		}
	case len(raw.Points) > 0:
		for i, pt := range raw.Points {
			imp.Pairs = append(imp.Pairs, PointPair{ID: i + 1, Source: &ImagePoint{X: pt.X, Y: pt.Y}})
		}
	default:
		for i, cp := range raw.ControlPoints {
			imp.Pairs = append(imp.Pairs, PointPair{ID: i + 1, Source: &ImagePoint{X: cp.SourceX, Y: cp.SourceY}})
		}
	}
	if len(imp.Pairs) == 0 {
		return Import{}, errors.New("pairs: no points found")
	}
	return imp, nil
}

type exportPair struct {
	ID       int         `json:"id"`
	Source   *ImagePoint `json:"source"`
	Target   *GeoPoint   `json:"target"`
	Complete bool        `json:"complete"`
}

// Export is the flat pairs document written by WritePairs.
type Export struct {
	ExportedAt     time.Time    `json:"exportedAt"`
	SchemaVersion  int          `json:"schemaVersion"`
	Units          string       `json:"units"`
	MetersPerPixel float64      `json:"metersPerPixel"`
	Pairs          []exportPair `json:"pairs"`
}

// NewExport snapshots pairs for writing.
func NewExport(pairs []PointPair, scale float64, now time.Time) Export {
	doc := Export{
		ExportedAt:     now.UTC(),
		SchemaVersion:  SchemaVersion,
		Units:          "metres",
		MetersPerPixel: scale,
		Pairs:          make([]exportPair, 0, len(pairs)),
	}
	for _, p := range pairs {
		doc.Pairs = append(doc.Pairs, exportPair{ID: p.ID, Source: p.Source, Target: p.Target, Complete: p.Complete()})
	}
	return doc
}

// CompleteCount returns how many exported pairs are complete.
func (e Export) CompleteCount() int {
	n := 0
	for _, p := range e.Pairs {
		if p.Complete {
			n++
		}
	}
	return n
}

// WritePairs writes doc as indented JSON.
func WritePairs(w io.Writer, doc Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportFileName is the default name for an export taken at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("trailmapper-pairs-%d.json", now.UnixMilli())
}
