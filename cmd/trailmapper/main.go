package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"trailmapper/internal/config"
	"trailmapper/internal/logging"
	"trailmapper/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// the alt screen owns stdout, so logs go to a file
	lf, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer lf.Close()
	logger := logging.Setup(lf, cfg.Log.Level, cfg.Log.Format)
	logger.Info("starting trailmapper", "meters_per_pixel", cfg.Scale.MetersPerPixel, "export_dir", cfg.Export.Dir)

	opts := tui.Options{
		MetersPerPixel: cfg.Scale.MetersPerPixel,
		ExportDir:      cfg.Export.Dir,
		Logger:         logger,
	}
	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(opts, os.Args[1])
	} else {
		m = tui.New(opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("program exited", "err", err)
		log.Fatal(err)
	}
}
