package main

import (
	"fmt"
	"os"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/config"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/logger"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup, err := logger.Setup(logger.Config{Dir: cfg.OutputDir, Debug: cfg.Debug})
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	if err := tui.Run(cfg, logger.L()); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
