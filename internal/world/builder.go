package world

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/hierarchy"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/parser"
)

// Builder materializes the typed world model from a parsed save tree and
// the static hierarchy tables. The parsed tree is only needed for the
// duration of Build; the returned World is the long-lived artifact.
type Builder struct {
	Hierarchy *hierarchy.Table
	Palette   *palette.Assigner
	Tags      *TagTable
	Log       *slog.Logger
}

// BuildFile parses and builds a savegame from disk.
func (b *Builder) BuildFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return b.BuildReader(f)
}

// BuildReader parses and builds a savegame from a stream.
func (b *Builder) BuildReader(r io.Reader) (*World, error) {
	save, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return b.Build(save)
}

// Build walks the parsed save's country and province sections and joins
// them against the static hierarchy. Field-level problems degrade to
// defaults with a recorded diagnostic; only a missing provinces section is
// fatal.
func (b *Builder) Build(save parser.Map) (*World, error) {
	w := &World{
		Provinces:    make(map[int]*Province),
		Countries:    make(map[string]*Country),
		Areas:        make(map[string]*Area),
		Regions:      make(map[string]*Region),
		Superregions: make(map[string]*Superregion),
		hier:         b.Hierarchy,
		pal:          b.Palette,
	}

	b.loadStaticCountries(w)
	b.loadSaveCountries(w, save)

	provinces, ok := save.FirstMap("provinces")
	if !ok {
		return nil, fmt.Errorf("save has no provinces section")
	}
	for _, pair := range provinces.Pairs {
		b.buildProvince(w, pair)
	}

	b.buildHierarchy(w)

	if b.Log != nil {
		b.Log.Info("world built",
			"provinces", len(w.Provinces),
			"countries", len(w.Countries),
			"areas", len(w.Areas),
			"warnings", len(w.diags))
	}
	return w, nil
}

// loadStaticCountries seeds the country table from the static tag data.
// Tags with an authoritative color register it with the palette; the rest
// are left for generated assignment.
func (b *Builder) loadStaticCountries(w *World) {
	if b.Tags == nil {
		return
	}
	for tag, name := range b.Tags.Names {
		c := &Country{Tag: tag, Name: strings.ReplaceAll(name, "_", " ")}
		if color, ok := b.Tags.Colors[tag]; ok {
			c.Color = color
			c.HasColor = true
			b.Palette.SetAuthoritative(tag, color)
		}
		w.Countries[tag] = c
	}
}

// loadSaveCountries overlays the save's countries section: display names
// and explicit map colors for nations created during the game (colonial
// nations, client states, custom nations).
func (b *Builder) loadSaveCountries(w *World, save parser.Map) {
	countries, ok := save.FirstMap("countries")
	if !ok {
		return
	}

	for _, pair := range countries.Pairs {
		block, ok := pair.Value.(parser.Map)
		if !ok {
			continue
		}

		c := w.Countries[pair.Key]
		if c == nil {
			c = &Country{Tag: pair.Key, Name: pair.Key}
			w.Countries[pair.Key] = c
		}
		if name, ok := block.FirstScalar("name"); ok {
			c.Name = name
		}

		colors, ok := block.FirstMap("colors")
		if !ok {
			continue
		}
		mapColor, ok := colors.FirstList("map_color")
		if !ok {
			continue
		}
		if rgb, ok := colorFromScalars(mapColor.Scalars()); ok {
			c.Color = rgb
			c.HasColor = true
			b.Palette.SetAuthoritative(c.Tag, rgb)
		}
	}
}

// buildProvince extracts one province entry. Save keys are negated ids
// ("-15"); entries without a name are reserved slots and skipped.
func (b *Builder) buildProvince(w *World, pair parser.Pair) {
	id, err := strconv.Atoi(strings.TrimPrefix(pair.Key, "-"))
	if err != nil {
		w.record(DiagFieldDecode, fmt.Sprintf("province key %q is not numeric", pair.Key))
		return
	}

	block, ok := pair.Value.(parser.Map)
	if !ok {
		w.record(DiagFieldDecode, fmt.Sprintf("province %d is not a block of fields", id))
		return
	}

	name, ok := block.FirstScalar("name")
	if !ok || strings.HasPrefix(name, "PROV") {
		return
	}

	p := &Province{ID: id, Name: name}
	p.Owner, _ = block.FirstScalar("owner")
	p.Controller, _ = block.FirstScalar("controller")
	p.Capital, _ = block.FirstScalar("capital")
	p.Culture, _ = block.FirstScalar("culture")
	p.Religion, _ = block.FirstScalar("religion")
	p.TradeGoods, _ = block.FirstScalar("trade_goods")

	p.BaseTax = b.scalarFloat(w, block, id, "base_tax")
	p.BaseProduction = b.scalarFloat(w, block, id, "base_production")
	p.BaseManpower = b.scalarFloat(w, block, id, "base_manpower")
	p.NativeSize = int(b.scalarFloat(w, block, id, "native_size"))

	// Cores appear either as a cores={ TAG TAG } block or, in older saves,
	// as repeated core=TAG entries.
	if l, ok := block.FirstList("cores"); ok {
		p.Cores = append(p.Cores, l.Scalars()...)
	}
	for _, n := range block.Get("core") {
		if s, ok := n.(parser.Scalar); ok {
			p.Cores = append(p.Cores, s.Value)
		}
	}

	_, hasPatrol := block.First("patrol")
	p.Type = classify(p, hasPatrol)

	if p.Owner != "" {
		b.materializeCountry(w, p.Owner)
	}
	if p.Controller != "" {
		b.materializeCountry(w, p.Controller)
	}

	w.Provinces[id] = p
}

// classify mirrors the save's own rules: only land provinces carry
// development, and every sea province carries a patrol value.
func classify(p *Province, hasPatrol bool) ProvinceType {
	developed := p.BaseTax > 0 || p.BaseProduction > 0 || p.BaseManpower > 0
	switch {
	case developed && p.Owner != "":
		return ProvinceOwned
	case developed:
		return ProvinceNative
	case hasPatrol:
		return ProvinceSea
	default:
		return ProvinceWasteland
	}
}

// materializeCountry creates a country record for a tag first seen as a
// province owner. Common for native federations and custom nations that
// have no static definition; they get a generated palette color.
func (b *Builder) materializeCountry(w *World, tag string) {
	if _, ok := w.Countries[tag]; ok {
		return
	}
	w.Countries[tag] = &Country{Tag: tag, Name: tag}
}

// scalarFloat reads a numeric field, defaulting to zero. A field that is
// present but malformed is a FieldDecodeWarning, not a failure.
func (b *Builder) scalarFloat(w *World, block parser.Map, id int, key string) float64 {
	raw, ok := block.FirstScalar(key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		w.record(DiagFieldDecode, fmt.Sprintf("province %d: %s=%q is not numeric, defaulted to 0", id, key, raw))
		return 0
	}
	return v
}

// buildHierarchy materializes areas, regions and superregions from the
// static tables, keeping only province ids that exist in this save, and
// records a gap warning for every province the tables do not know.
func (b *Builder) buildHierarchy(w *World) {
	if b.Hierarchy == nil {
		return
	}

	for areaID, ids := range b.Hierarchy.AreaProvinces {
		present := make([]int, 0, len(ids))
		for _, id := range ids {
			if _, ok := w.Provinces[id]; ok {
				present = append(present, id)
			}
		}
		sort.Ints(present)
		w.Areas[areaID] = &Area{
			ID:          areaID,
			Name:        DisplayName(areaID),
			ProvinceIDs: present,
			Inactive:    b.Hierarchy.Inactive(areaID),
		}
	}

	for regionID, areaIDs := range b.Hierarchy.RegionAreas {
		sorted := append([]string(nil), areaIDs...)
		sort.Strings(sorted)
		w.Regions[regionID] = &Region{
			ID:       regionID,
			Name:     DisplayName(regionID),
			AreaIDs:  sorted,
			Inactive: b.Hierarchy.Inactive(regionID),
		}
	}

	for superregionID, regionIDs := range b.Hierarchy.SuperregionRegions {
		sorted := append([]string(nil), regionIDs...)
		sort.Strings(sorted)
		w.Superregions[superregionID] = &Superregion{
			ID:        superregionID,
			Name:      DisplayName(superregionID),
			RegionIDs: sorted,
			Inactive:  b.Hierarchy.Inactive(superregionID),
		}
	}

	for id, p := range w.Provinces {
		if _, ok := b.Hierarchy.AreaOf(id); !ok {
			w.record(DiagHierarchyGap, fmt.Sprintf("province %d (%s) has no area mapping", id, p.Name))
		}
	}
}
