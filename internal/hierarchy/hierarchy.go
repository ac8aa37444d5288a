package hierarchy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/parser"
)

// Table is the static geographic hierarchy: superregion → region → area →
// province, plus the inverse maps for O(1) upward lookup. It is loaded once
// per process and treated as read-only configuration afterwards.
type Table struct {
	SuperregionRegions map[string][]string
	RegionAreas        map[string][]string
	AreaProvinces      map[string][]int

	areaOf        map[int]string
	regionOf      map[string]string
	superregionOf map[string]string

	inactive map[string]bool
}

// Load reads area.txt, region.txt and superregion.txt from the map folder.
func Load(mapFolder string) (*Table, error) {
	areas, err := os.Open(filepath.Join(mapFolder, "area.txt"))
	if err != nil {
		return nil, err
	}
	defer areas.Close()

	regions, err := os.Open(filepath.Join(mapFolder, "region.txt"))
	if err != nil {
		return nil, err
	}
	defer regions.Close()

	superregions, err := os.Open(filepath.Join(mapFolder, "superregion.txt"))
	if err != nil {
		return nil, err
	}
	defer superregions.Close()

	return LoadFrom(areas, regions, superregions)
}

// LoadFrom parses the three hierarchy tables. All three use the same
// brace grammar as the save file itself.
func LoadFrom(areas, regions, superregions io.Reader) (*Table, error) {
	t := &Table{
		SuperregionRegions: make(map[string][]string),
		RegionAreas:        make(map[string][]string),
		AreaProvinces:      make(map[string][]int),
		areaOf:             make(map[int]string),
		regionOf:           make(map[string]string),
		superregionOf:      make(map[string]string),
		inactive:           make(map[string]bool),
	}

	if err := t.loadAreas(areas); err != nil {
		return nil, fmt.Errorf("area table: %w", err)
	}
	if err := t.loadRegions(regions); err != nil {
		return nil, fmt.Errorf("region table: %w", err)
	}
	if err := t.loadSuperregions(superregions); err != nil {
		return nil, fmt.Errorf("superregion table: %w", err)
	}
	return t, nil
}

// loadAreas reads entries of the form `name = { 182 183 185 }`. Some areas
// carry a nested color block before the ids; it is schema noise here and
// skipped. Empty areas are retained so coverage checks stay total.
func (t *Table) loadAreas(r io.Reader) error {
	doc, err := parser.Parse(r)
	if err != nil {
		return err
	}

	for _, pair := range doc.Pairs {
		name := pair.Key
		t.flagIfUnused(name)

		var ids []int
		if l, ok := pair.Value.(parser.List); ok {
			for _, raw := range l.Scalars() {
				id, err := strconv.Atoi(raw)
				if err != nil {
					continue
				}
				ids = append(ids, id)
			}
		}

		t.AreaProvinces[name] = ids
		for _, id := range ids {
			t.areaOf[id] = name
		}
	}
	return nil
}

// loadRegions reads entries of the form `name = { areas = { a b c } }`.
func (t *Table) loadRegions(r io.Reader) error {
	doc, err := parser.Parse(r)
	if err != nil {
		return err
	}

	for _, pair := range doc.Pairs {
		name := pair.Key
		t.flagIfUnused(name)

		var areas []string
		switch v := pair.Value.(type) {
		case parser.Map:
			if l, ok := v.FirstList("areas"); ok {
				areas = l.Scalars()
			}
		case parser.List:
			areas = v.Scalars()
		}

		t.RegionAreas[name] = areas
		for _, area := range areas {
			t.regionOf[area] = name
		}
	}
	return nil
}

// loadSuperregions reads entries of the form `name = { region_a region_b }`.
func (t *Table) loadSuperregions(r io.Reader) error {
	doc, err := parser.Parse(r)
	if err != nil {
		return err
	}

	for _, pair := range doc.Pairs {
		name := pair.Key
		t.flagIfUnused(name)

		var regions []string
		if l, ok := pair.Value.(parser.List); ok {
			for _, raw := range l.Scalars() {
				// restrict_charter is a schema keyword, not a region name.
				if raw == "restrict_charter" {
					continue
				}
				regions = append(regions, raw)
			}
		}

		t.SuperregionRegions[name] = regions
		for _, region := range regions {
			t.superregionOf[region] = name
		}
	}
	return nil
}

func (t *Table) flagIfUnused(name string) {
	if strings.HasPrefix(strings.ToLower(name), "unused") {
		t.inactive[name] = true
	}
}

// AreaOf returns the area containing the province.
func (t *Table) AreaOf(provinceID int) (string, bool) {
	area, ok := t.areaOf[provinceID]
	return area, ok
}

// RegionOf returns the region containing the area.
func (t *Table) RegionOf(area string) (string, bool) {
	region, ok := t.regionOf[area]
	return region, ok
}

// SuperregionOf returns the superregion containing the region.
func (t *Table) SuperregionOf(region string) (string, bool) {
	superregion, ok := t.superregionOf[region]
	return superregion, ok
}

// Inactive reports whether the entry is present in the source data but
// marked unused there.
func (t *Table) Inactive(name string) bool {
	return t.inactive[name]
}
