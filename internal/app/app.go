package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/config"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/hierarchy"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/render"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/world"
)

// App wires one loaded savegame (model, palette and renderer) behind the
// read-only query interface the viewer and CLI consume.
type App struct {
	Config   *config.Config
	World    *world.World
	Renderer *render.Renderer
	Palette  *palette.Assigner
	Index    *render.PixelIndex
	SaveName string
	Log      *slog.Logger
}

// ListSaves returns the savegame files available in the saves folder.
func ListSaves(cfg *config.Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.SavesFolder)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var saves []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".eu4") || strings.HasSuffix(e.Name(), ".txt") {
			saves = append(saves, e.Name())
		}
	}
	sort.Strings(saves)
	return saves, nil
}

// Load builds the full pipeline for one savegame: static hierarchy and
// color tables, the parsed save, and the pixel index over the base bitmap.
func Load(cfg *config.Config, saveName string, log *slog.Logger) (*App, error) {
	pal := palette.NewAssigner()

	table, err := hierarchy.Load(cfg.MapFolder)
	if err != nil {
		return nil, fmt.Errorf("loading hierarchy tables: %w", err)
	}

	colorToID, definitions, err := hierarchy.LoadDefinitions(cfg.MapFolder)
	if err != nil {
		return nil, fmt.Errorf("loading province definitions: %w", err)
	}

	// Static tag data is optional: without it every country falls back to
	// save data plus generated palette colors.
	tags, err := world.LoadTags(cfg.TagsFile)
	if err != nil {
		log.Warn("tag table unavailable, using generated country colors", "path", cfg.TagsFile, "err", err)
		tags = nil
	}

	builder := &world.Builder{Hierarchy: table, Palette: pal, Tags: tags, Log: log}
	w, err := builder.BuildFile(cfg.SavePath(saveName))
	if err != nil {
		return nil, fmt.Errorf("building world from %s: %w", saveName, err)
	}

	bitmap, err := render.LoadBaseBitmap(cfg.BitmapPath())
	if err != nil {
		return nil, fmt.Errorf("loading base bitmap: %w", err)
	}
	idx := render.NewPixelIndex(bitmap, colorToID)

	missing := 0
	for id := range definitions {
		if _, ok := w.ProvinceByID(id); !ok {
			missing++
		}
	}
	log.Info("pixel index built",
		"provinces", len(idx.ProvinceIDs()),
		"definitions_without_save_entry", missing,
		"unknown_colors", len(idx.Mismatches()))

	return &App{
		Config:   cfg,
		World:    w,
		Renderer: render.New(idx, w, pal),
		Palette:  pal,
		Index:    idx,
		SaveName: saveName,
		Log:      log,
	}, nil
}

// RenderToFile renders one map mode and writes it under the output dir.
func (a *App) RenderToFile(mode render.Mode, borders bool) (string, error) {
	img := a.Renderer.Render(mode, borders)

	base := strings.TrimSuffix(a.SaveName, filepath.Ext(a.SaveName))
	path := filepath.Join(a.Config.OutputDir, fmt.Sprintf("%s_%s.png", base, mode))
	if err := render.WritePNG(img, path); err != nil {
		return "", err
	}
	a.Log.Info("map rendered", "mode", mode, "borders", borders, "path", path)
	return path, nil
}

// Warnings merges model diagnostics with bitmap color mismatches.
func (a *App) Warnings() []world.Diagnostic {
	diags := a.World.Warnings()
	for c, n := range a.Index.Mismatches() {
		diags = append(diags, world.Diagnostic{
			Kind:    world.DiagAssetMismatch,
			Message: fmt.Sprintf("bitmap color (%d,%d,%d) on %d pixels has no definition entry", c.R, c.G, c.B, n),
		})
	}
	return diags
}

// ProvinceSummary formats the info-panel view of one province: its fields
// plus the full hierarchy chain and area development.
func (a *App) ProvinceSummary(p *world.Province) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (#%d), %s\n", p.Name, p.ID, p.Type)

	if p.Owner != "" {
		owner := p.Owner
		if c, ok := a.World.CountryByTag(p.Owner); ok {
			owner = c.Name
		}
		fmt.Fprintf(&sb, "Owner: %s", owner)
		if p.Controller != "" && p.Controller != p.Owner {
			fmt.Fprintf(&sb, " (occupied by %s)", p.Controller)
		}
		sb.WriteByte('\n')
	}

	if p.IsLand() {
		fmt.Fprintf(&sb, "Development: %.0f (%.0f/%.0f/%.0f)\n",
			p.Development(), p.BaseTax, p.BaseProduction, p.BaseManpower)
		if p.Religion != "" {
			fmt.Fprintf(&sb, "Religion: %s\n", p.Religion)
		}
		if p.Culture != "" {
			fmt.Fprintf(&sb, "Culture: %s\n", p.Culture)
		}
		if p.TradeGoods != "" {
			fmt.Fprintf(&sb, "Trade goods: %s\n", p.TradeGoods)
		}
	}

	if area, ok := a.World.AreaContaining(p.ID); ok {
		fmt.Fprintf(&sb, "Area: %s (%.0f dev)\n", area.Name, a.World.AreaDevelopment(area.ID))
		if region, ok := a.World.RegionContaining(area.ID); ok {
			fmt.Fprintf(&sb, "Region: %s", region.Name)
			if religion := a.World.RegionDominantReligion(region.ID); religion != "" {
				fmt.Fprintf(&sb, ", mostly %s", religion)
			}
			sb.WriteByte('\n')
			if sr, ok := a.World.SuperregionContaining(region.ID); ok {
				fmt.Fprintf(&sb, "Superregion: %s\n", sr.Name)
			}
		}
	} else {
		sb.WriteString("Not in any mapped area\n")
	}

	return sb.String()
}
