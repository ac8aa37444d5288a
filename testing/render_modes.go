package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/app"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/config"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/logger"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/render"
)

// End-to-end exercise: load a real savegame, render every map mode to PNG
// and export a YAML snapshot, printing diagnostics along the way.
// Usage: go run ./testing [savefile]
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cleanup, err := logger.Setup(logger.Config{Dir: cfg.OutputDir, Debug: true})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer cleanup()

	saveName := ""
	if len(os.Args) > 1 {
		saveName = os.Args[1]
	} else {
		saves, err := app.ListSaves(cfg)
		if err != nil || len(saves) == 0 {
			log.Fatalf("No savefiles found in %s", cfg.SavesFolder)
		}
		saveName = saves[0]
	}

	fmt.Printf("--- Loading %s ---\n", saveName)
	a, err := app.Load(cfg, saveName, logger.L())
	if err != nil {
		log.Fatalf("Failed to load save: %v", err)
	}

	w := a.World
	fmt.Printf("Provinces: %d, countries: %d, areas: %d, regions: %d, superregions: %d\n",
		len(w.Provinces), len(w.Countries), len(w.Areas), len(w.Regions), len(w.Superregions))
	fmt.Printf("Max development: %.0f\n\n", w.MaxDevelopment())

	fmt.Println("--- Rendering every map mode ---")
	for _, mode := range render.Modes() {
		path, err := a.RenderToFile(mode, true)
		if err != nil {
			log.Fatalf("Failed to render %s map: %v", mode, err)
		}
		fmt.Printf("%-12s -> %s\n", mode, path)
	}

	base := strings.TrimSuffix(saveName, filepath.Ext(saveName))
	snapshotPath := filepath.Join(cfg.OutputDir, base+"_snapshot.yaml")
	if err := w.Export(snapshotPath); err != nil {
		log.Fatalf("Failed to export snapshot: %v", err)
	}
	fmt.Printf("\nSnapshot written to %s\n", snapshotPath)

	warnings := a.Warnings()
	fmt.Printf("\n--- %d warnings ---\n", len(warnings))
	for _, d := range warnings {
		fmt.Println(d)
	}
}
