package hierarchy

import (
	"strings"
	"testing"
)

const areaDoc = `
ile_de_france_area = { #Champagne and Ile de France
	182 183 185
}
normandy_area = {
	167 168
}
unused_area_1 = {
	900
}
empty_area = {
}
`

const regionDoc = `
france_region = {
	areas = {
		ile_de_france_area
		normandy_area
	}
}
unused_region_1 = {
	areas = {
		unused_area_1
	}
}
`

const superregionDoc = `
europe_superregion = {
	restrict_charter
	france_region
	unused_region_1
}
`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := LoadFrom(
		strings.NewReader(areaDoc),
		strings.NewReader(regionDoc),
		strings.NewReader(superregionDoc),
	)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	return table
}

func TestUpwardLookups(t *testing.T) {
	table := loadTestTable(t)

	area, ok := table.AreaOf(183)
	if !ok || area != "ile_de_france_area" {
		t.Errorf("AreaOf(183) = %q, %v", area, ok)
	}
	region, ok := table.RegionOf(area)
	if !ok || region != "france_region" {
		t.Errorf("RegionOf(%s) = %q, %v", area, region, ok)
	}
	superregion, ok := table.SuperregionOf(region)
	if !ok || superregion != "europe_superregion" {
		t.Errorf("SuperregionOf(%s) = %q, %v", region, superregion, ok)
	}
}

// Every province in the tables must resolve through area and region to
// exactly one superregion.
func TestHierarchyChainIsTotal(t *testing.T) {
	table := loadTestTable(t)

	for areaName, ids := range table.AreaProvinces {
		if len(ids) == 0 {
			continue
		}
		region, ok := table.RegionOf(areaName)
		if !ok {
			t.Errorf("area %s has no region", areaName)
			continue
		}
		if _, ok := table.SuperregionOf(region); !ok {
			t.Errorf("region %s has no superregion", region)
		}
		for _, id := range ids {
			if got, _ := table.AreaOf(id); got != areaName {
				t.Errorf("province %d resolves to %s, want %s", id, got, areaName)
			}
		}
	}
}

func TestUnknownProvinceHasNoArea(t *testing.T) {
	table := loadTestTable(t)
	if _, ok := table.AreaOf(99999); ok {
		t.Error("expected no area for unknown province id")
	}
}

func TestUnusedEntriesRetainedButInactive(t *testing.T) {
	table := loadTestTable(t)

	if _, ok := table.AreaProvinces["unused_area_1"]; !ok {
		t.Error("unused area dropped from the table")
	}
	if !table.Inactive("unused_area_1") {
		t.Error("unused area not flagged inactive")
	}
	if !table.Inactive("unused_region_1") {
		t.Error("unused region not flagged inactive")
	}
	if table.Inactive("normandy_area") {
		t.Error("active area flagged inactive")
	}
}

func TestRestrictCharterIsNotARegion(t *testing.T) {
	table := loadTestTable(t)
	for _, region := range table.SuperregionRegions["europe_superregion"] {
		if region == "restrict_charter" {
			t.Error("schema keyword leaked into the region list")
		}
	}
}

func TestParseDefinitions(t *testing.T) {
	csvDoc := "province;red;green;blue;x;x\n" +
		"1;128;34;64;Stockholm;x\n" +
		"2;0;36;128;Uppland;x\n" +
		"3;16;16;16;Unused1;x\n" +
		"bogus;1;2;3;Skipped;x\n" +
		"4;300;0;0;OutOfRange;x\n" +
		"5;10;-1;10;Negative;x\n"

	colorToID, byID, err := ParseDefinitions(strings.NewReader(csvDoc))
	if err != nil {
		t.Fatalf("ParseDefinitions failed: %v", err)
	}
	if len(byID) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(byID))
	}
	if _, ok := byID[4]; ok {
		t.Error("out-of-range color channel should skip the row, not truncate")
	}
	if _, ok := byID[5]; ok {
		t.Error("negative color channel should skip the row")
	}
	if byID[1].Name != "Stockholm" {
		t.Errorf("definition 1 name = %q", byID[1].Name)
	}
	if !byID[3].Inactive {
		t.Error("unused province slot not flagged inactive")
	}
	if id := colorToID[byID[2].Color]; id != 2 {
		t.Errorf("color lookup for province 2 returned %d", id)
	}
}
