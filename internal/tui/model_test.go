package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trailmapper/internal/geom"
	"trailmapper/internal/georef"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(Options{
		MetersPerPixel: 1,
		ExportDir:      t.TempDir(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:            func() time.Time { return time.UnixMilli(1700000000000) },
	})
}

func key(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

// paste opens the paste box with k, fills it with v and submits.
func paste(m Model, k, v string) Model {
	m = key(m, k)
	m.ta.SetValue(v)
	return key(m, "enter")
}

// pick fills the selected pair with a source pixel and the map point an exact
// known affine transform puts it at.
func pick(m Model, x, y float64) Model {
	lat, lng := geom.Unproject(geom.PlanarPoint{X: -13862026 + 2*x, Y: 6417784 - 2*y})
	m = paste(m, "s", ftoa(x)+" "+ftoa(y))
	return paste(m, "t", ftoa(lat)+", "+ftoa(lng))
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func TestNewStartsUnsolved(t *testing.T) {
	m := newTestModel(t)
	if m.fit.Status != georef.StatusUnsolved {
		t.Fatalf("status = %v", m.fit.Status)
	}
	if got := m.fit.Summary(); got != "Need 3 completed point pairs." {
		t.Fatalf("summary = %q", got)
	}
	if m.pairs.Len() != 1 || m.pairs.SelectedID() != 1 {
		t.Fatalf("pairs = %d selected %d", m.pairs.Len(), m.pairs.SelectedID())
	}
}

func TestPickPairsSolves(t *testing.T) {
	m := newTestModel(t)
	m = pick(m, 0, 0)
	m = key(m, "n")
	m = pick(m, 100, 0)
	if m.fit.Solved() {
		t.Fatal("solved with two pairs")
	}
	m = key(m, "n")
	m = pick(m, 0, 100)
	if !m.fit.Solved() {
		t.Fatalf("status = %v (%s), last status %q", m.fit.Status, m.fit.Reason, m.status)
	}
	if m.fit.RMSError > 0.01 {
		t.Errorf("rms = %v", m.fit.RMSError)
	}
	if m.bbox.Empty() {
		t.Error("bbox not fitted to targets")
	}
	if !strings.Contains(m.renderFitPanel(60, 30), "Solved with 3 points") {
		t.Error("fit panel missing summary")
	}
}

func TestPasteRejectsBadInput(t *testing.T) {
	m := newTestModel(t)
	m = paste(m, "s", "12")
	if !m.pasteMode || !strings.HasPrefix(m.status, "source error") {
		t.Fatalf("pasteMode=%v status=%q", m.pasteMode, m.status)
	}
	m = key(m, "esc")
	m = paste(m, "t", "91 10")
	if !strings.HasPrefix(m.status, "target error") {
		t.Fatalf("status = %q", m.status)
	}
	m = key(m, "esc")
	m = paste(m, "m", "-2")
	if m.scale != 1 || !strings.HasPrefix(m.status, "scale error") {
		t.Fatalf("scale = %v status = %q", m.scale, m.status)
	}
	m = key(m, "esc")
	m = paste(m, "t", "POINT (-124.5 49.8)")
	sel, _ := m.pairs.Selected()
	if sel.Target == nil || sel.Target.Lat != 49.8 || sel.Target.Lng != -124.5 {
		t.Fatalf("target = %+v", sel.Target)
	}
}

func TestSelectAndClear(t *testing.T) {
	m := newTestModel(t)
	m = key(m, "n")
	m = key(m, "n")
	if m.pairs.SelectedID() != 3 {
		t.Fatalf("selected = %d", m.pairs.SelectedID())
	}
	m = key(m, "]")
	if m.pairs.SelectedID() != 1 {
		t.Fatalf("wrap selected = %d", m.pairs.SelectedID())
	}
	m = paste(m, "s", "5 6")
	m = key(m, "x")
	if sel, _ := m.pairs.Selected(); sel.Source != nil {
		t.Fatal("source not cleared")
	}
}

func TestExportAndReport(t *testing.T) {
	m := newTestModel(t)
	m = pick(m, 10, 20)
	m = key(m, "e")
	path := filepath.Join(m.exportDir, "trailmapper-pairs-1700000000000.json")
	imp, err := geom.LoadPairs(path)
	if err != nil {
		t.Fatalf("%v (status %q)", err, m.status)
	}
	if len(imp.Pairs) != 1 || !imp.Pairs[0].Complete() || imp.MetersPerPixel != 1 {
		t.Fatalf("import = %+v", imp)
	}
	m = key(m, "r")
	if _, err := os.Stat(filepath.Join(m.exportDir, "trailmapper-fit-1700000000000.xlsx")); err != nil {
		t.Fatalf("%v (status %q)", err, m.status)
	}
}

func TestLoadPathPairsAndTargets(t *testing.T) {
	dir := t.TempDir()
	pairsJSON := `{"metersPerPixel": 2, "points": [{"x": 1, "y": 2}, {"x": 3, "y": 4}]}`
	if err := os.WriteFile(filepath.Join(dir, "scan.json"), []byte(pairsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	wkt := "MULTIPOINT ((-124.5 49.8), (-124.4 49.9), (-124.3 49.7))"
	if err := os.WriteFile(filepath.Join(dir, "picks.wkt"), []byte(wkt), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t)
	m.loadPath(filepath.Join(dir, "scan.json"))
	if m.pairs.Len() != 2 || m.scale != 2 {
		t.Fatalf("pairs = %d scale = %v status %q", m.pairs.Len(), m.scale, m.status)
	}
	m.loadPath(filepath.Join(dir, "picks.wkt"))
	total, complete := m.pairs.Counts()
	if total != 3 || complete != 2 {
		t.Fatalf("total = %d complete = %d status %q", total, complete, m.status)
	}
	m.loadPath(filepath.Join(dir, "nope.txt"))
	if !strings.HasPrefix(m.status, "unsupported file") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m = pick(m, 0, 0)
	out := m.View()
	if !strings.Contains(out, "trailmapper") || !strings.Contains(out, "Need 3 completed point pairs.") {
		t.Fatalf("view missing header or summary:\n%s", out)
	}
}
