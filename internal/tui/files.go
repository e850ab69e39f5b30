package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"trailmapper/internal/geom"
	"trailmapper/internal/raster"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// pairFormats are read as point pairs or map targets.
var pairFormats = map[string]bool{".json": true, ".geojson": true, ".csv": true, ".kml": true, ".wkt": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		ext := strings.ToLower(filepath.Ext(name))
		if pairFormats[ext] || raster.IsRaster(name) {
			items = append(items, fileItem{title: name, desc: ext, path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath imports a pairs file, a target list, or a source raster, then re-runs
// the fit.
func (m *Model) loadPath(p string) {
	m.selPath = p
	name := filepath.Base(p)
	if raster.IsRaster(p) {
		info, err := raster.Open(p)
		if err != nil {
			m.fail("load error", err)
			return
		}
		m.raster = &info
		m.status = "loaded image: " + info.String()
		m.log.Info("raster loaded", "path", p, "format", info.Format, "width", info.Width, "height", info.Height)
		return
	}
	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".json":
		imp, err := geom.LoadPairs(p)
		if err != nil {
			// plain GeoJSON files share the extension
			if pts, gerr := geom.LoadGeoJSON(p); gerr == nil {
				m.assignTargets(name, pts)
				return
			}
			m.fail("load error", err)
			return
		}
		m.pairs.Replace(imp.Pairs)
		if imp.MetersPerPixel > 0 {
			m.scale = imp.MetersPerPixel
		}
		m.status = fmt.Sprintf("Imported %d source points from %s. Units: %s.", len(imp.Pairs), name, imp.Units)
		m.log.Info("pairs imported", "path", p, "pairs", len(imp.Pairs), "scale", m.scale)
	case ".csv":
		ps, err := geom.LoadPairsCSV(p)
		if err != nil {
			m.fail("load error", err)
			return
		}
		m.pairs.Replace(ps)
		m.status = fmt.Sprintf("Imported %d pair(s) from %s.", len(ps), name)
		m.log.Info("pairs imported", "path", p, "pairs", len(ps))
	case ".geojson":
		pts, err := geom.LoadGeoJSON(p)
		if err != nil {
			m.fail("load error", err)
			return
		}
		m.assignTargets(name, pts)
	case ".kml":
		pts, err := geom.LoadKML(p)
		if err != nil {
			m.fail("load error", err)
			return
		}
		m.assignTargets(name, pts)
	case ".wkt":
		data, err := os.ReadFile(p)
		if err != nil {
			m.fail("load error", err)
			return
		}
		pts, err := geom.ParseWKT(string(data))
		if err != nil {
			m.fail("wkt error", err)
			return
		}
		m.assignTargets(name, pts)
	default:
		m.status = "unsupported file: " + ext
		return
	}
	m.resolve()
}

// assignTargets fills map positions into pairs in id order.
func (m *Model) assignTargets(name string, pts []geom.GeoPoint) {
	n := m.pairs.AssignTargets(pts)
	m.status = fmt.Sprintf("Placed %d of %d map point(s) from %s.", n, len(pts), name)
	m.log.Info("targets assigned", "file", name, "points", len(pts), "placed", n)
}

func (m *Model) fail(prefix string, err error) {
	m.status = prefix + ": " + err.Error()
	m.log.Error(prefix, "path", m.selPath, "err", err)
}

// exportPairs writes every pair to a timestamped JSON file in the export dir.
func (m *Model) exportPairs() {
	now := m.now()
	doc := geom.NewExport(m.pairs.Pairs(), m.scale, now)
	path := filepath.Join(m.exportDir, geom.ExportFileName(now))
	f, err := os.Create(path)
	if err != nil {
		m.fail("export error", err)
		return
	}
	if err := geom.WritePairs(f, doc); err != nil {
		f.Close()
		m.fail("export error", err)
		return
	}
	if err := f.Close(); err != nil {
		m.fail("export error", err)
		return
	}
	m.status = fmt.Sprintf("Exported %d pair(s), %d complete, to %s.", len(doc.Pairs), doc.CompleteCount(), filepath.Base(path))
	m.log.Info("pairs exported", "path", path, "pairs", len(doc.Pairs))
}
