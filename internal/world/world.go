package world

import (
	"sort"
	"strings"
	"sync"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/hierarchy"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
)

// World is the fully resolved model for one savegame: provinces joined
// against countries and the static geographic hierarchy. It is immutable
// once built; derived aggregates are memoized on first query.
type World struct {
	Provinces    map[int]*Province
	Countries    map[string]*Country
	Areas        map[string]*Area
	Regions      map[string]*Region
	Superregions map[string]*Superregion

	hier *hierarchy.Table
	pal  *palette.Assigner

	diagMu sync.Mutex
	diags  []Diagnostic

	aggOnce sync.Once
	agg     *aggregates
}

func (w *World) record(kind DiagnosticKind, msg string) {
	w.diagMu.Lock()
	defer w.diagMu.Unlock()
	w.diags = append(w.diags, Diagnostic{Kind: kind, Message: msg})
}

// Warnings returns every diagnostic recorded while building the model.
func (w *World) Warnings() []Diagnostic {
	w.diagMu.Lock()
	defer w.diagMu.Unlock()
	return append([]Diagnostic(nil), w.diags...)
}

// ProvinceByID looks up a province.
func (w *World) ProvinceByID(id int) (*Province, bool) {
	p, ok := w.Provinces[id]
	return p, ok
}

// CountryByTag looks up a country.
func (w *World) CountryByTag(tag string) (*Country, bool) {
	c, ok := w.Countries[tag]
	return c, ok
}

// AreaContaining returns the area a province belongs to.
func (w *World) AreaContaining(provinceID int) (*Area, bool) {
	if w.hier == nil {
		return nil, false
	}
	id, ok := w.hier.AreaOf(provinceID)
	if !ok {
		return nil, false
	}
	a, ok := w.Areas[id]
	return a, ok
}

// RegionContaining returns the region an area belongs to.
func (w *World) RegionContaining(areaID string) (*Region, bool) {
	if w.hier == nil {
		return nil, false
	}
	id, ok := w.hier.RegionOf(areaID)
	if !ok {
		return nil, false
	}
	r, ok := w.Regions[id]
	return r, ok
}

// SuperregionContaining returns the superregion a region belongs to.
func (w *World) SuperregionContaining(regionID string) (*Superregion, bool) {
	if w.hier == nil {
		return nil, false
	}
	id, ok := w.hier.SuperregionOf(regionID)
	if !ok {
		return nil, false
	}
	s, ok := w.Superregions[id]
	return s, ok
}

// CountryColor returns the display color for a tag: the authoritative color
// when the data provides one, a generated palette color otherwise.
func (w *World) CountryColor(tag string) palette.RGB {
	if c, ok := w.Countries[tag]; ok && c.HasColor {
		return c.Color
	}
	return w.pal.ColorFor(palette.ClassCountry, tag)
}

// SearchByName returns provinces whose name matches the query, ordered by
// name then id. Matching is case-insensitive; exact mode requires full
// equality after case folding.
func (w *World) SearchByName(query string, exact bool) []*Province {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []*Province
	for _, p := range w.Provinces {
		name := strings.ToLower(p.Name)
		if exact {
			if name == query {
				matches = append(matches, p)
			}
		} else if strings.Contains(name, query) {
			matches = append(matches, p)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}
