package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"trailmapper/internal/geom"
)

func writeImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img := image.NewGray(image.Rect(0, 0, w, h))
	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(f, img)
	case ".tif":
		err = tiff.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"scan.png", "png"},
		{"scan.tif", "tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Open(writeImage(t, tt.name, 120, 80))
			if err != nil {
				t.Fatal(err)
			}
			if info.Width != 120 || info.Height != 80 || info.Format != tt.format {
				t.Fatalf("info = %+v", info)
			}
			if !IsRaster(info.Path) {
				t.Errorf("IsRaster(%q) = false", info.Path)
			}
		})
	}
}

func TestOpenRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.png")
	if err := os.WriteFile(path, []byte(`{"points":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestContains(t *testing.T) {
	info := Info{Width: 100, Height: 50}
	tests := []struct {
		p    geom.ImagePoint
		want bool
	}{
		{geom.ImagePoint{X: 0, Y: 0}, true},
		{geom.ImagePoint{X: 100, Y: 50}, true},
		{geom.ImagePoint{X: 100.5, Y: 10}, false},
		{geom.ImagePoint{X: 10, Y: -1}, false},
	}
	for _, tt := range tests {
		if got := info.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v", tt.p, got)
		}
	}
	if IsRaster("pairs.json") {
		t.Error("json reported as raster")
	}
}
