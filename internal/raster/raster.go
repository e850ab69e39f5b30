// Package raster reads the dimensions of the scanned source map.
package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"trailmapper/internal/geom"
)

// Info describes a source raster without holding its pixels.
type Info struct {
	Path   string
	Format string
	Width  int
	Height int
}

// Open decodes only the image header.
func Open(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("raster: %s: %w", filepath.Base(path), err)
	}
	return Info{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// IsRaster reports whether the file extension is one Open can decode.
func IsRaster(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return true
	}
	return false
}

// Contains reports whether p lies on the raster, edges included.
func (i Info) Contains(p geom.ImagePoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= float64(i.Width) && p.Y <= float64(i.Height)
}

func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d %s", filepath.Base(i.Path), i.Width, i.Height, i.Format)
}
