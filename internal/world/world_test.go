package world

import (
	"strings"
	"testing"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/hierarchy"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
)

const testAreas = `
uppland_area = { 1 2 }
finland_area = { 3 }
arctic_area = { 4 }
baltic_sea_area = { 5 }
`

const testRegions = `
scandinavia_region = { areas = { uppland_area finland_area arctic_area } }
baltic_region = { areas = { baltic_sea_area } }
`

const testSuperregions = `
europe_superregion = { scandinavia_region baltic_region }
`

const testSave = `EU4txt
date=1492.3.11
provinces={
	-1={
		name="Stockholm"
		owner="SWE"
		controller="DAN"
		culture=swedish
		religion=catholic
		trade_goods=grain
		base_tax=5.000
		base_production=4.000
		base_manpower=3.000
		cores={ SWE DAN }
	}
	-2={
		name="Uppland"
		owner="SWE"
		controller="SWE"
		culture=swedish
		religion=protestant
		base_tax=2.000
		base_production=2.000
		base_manpower=2.000
	}
	-3={
		name="Tavastland"
		culture=finnish
		religion=animist
		base_tax=1.000
		base_production=1.000
		base_manpower=1.000
		native_size=40
	}
	-4={
		name="Svalbard"
	}
	-5={
		name="Baltic Sea"
		patrol=90
	}
	-6={
		name="Atlantis"
		owner="ATL"
		base_tax=bogus
		base_production=1.000
	}
	-7={
		name="PROV7"
	}
}
countries={
	SWE={
		name="Sweden"
		colors={ map_color={ 8 82 165 } }
	}
	ATL={
	}
}
`

func buildTestWorld(t *testing.T) *World {
	t.Helper()

	table, err := hierarchy.LoadFrom(
		strings.NewReader(testAreas),
		strings.NewReader(testRegions),
		strings.NewReader(testSuperregions),
	)
	if err != nil {
		t.Fatalf("hierarchy load failed: %v", err)
	}

	b := &Builder{
		Hierarchy: table,
		Palette:   palette.NewAssigner(),
		Tags: &TagTable{
			Names:  map[string]string{"SWE": "Sweden", "DAN": "Denmark"},
			Colors: map[string]palette.RGB{"DAN": {R: 200, G: 20, B: 20}},
		},
	}
	w, err := b.BuildReader(strings.NewReader(testSave))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return w
}

func TestProvinceClassification(t *testing.T) {
	w := buildTestWorld(t)

	cases := map[int]ProvinceType{
		1: ProvinceOwned,
		2: ProvinceOwned,
		3: ProvinceNative,
		4: ProvinceWasteland,
		5: ProvinceSea,
	}
	for id, want := range cases {
		p, ok := w.ProvinceByID(id)
		if !ok {
			t.Fatalf("province %d missing", id)
		}
		if p.Type != want {
			t.Errorf("province %d: type %s, want %s", id, p.Type, want)
		}
	}

	if _, ok := w.ProvinceByID(7); ok {
		t.Error("reserved PROV slot should be skipped")
	}
}

func TestProvinceFields(t *testing.T) {
	w := buildTestWorld(t)

	p, _ := w.ProvinceByID(1)
	if p.Owner != "SWE" || p.Controller != "DAN" {
		t.Errorf("owner/controller = %s/%s", p.Owner, p.Controller)
	}
	if p.Development() != 12 {
		t.Errorf("development = %v, want 12", p.Development())
	}
	if len(p.Cores) != 2 || p.Cores[0] != "SWE" || p.Cores[1] != "DAN" {
		t.Errorf("cores = %v", p.Cores)
	}
	if p.TradeGoods != "grain" {
		t.Errorf("trade goods = %q", p.TradeGoods)
	}
}

func TestMalformedNumericDefaultsWithWarning(t *testing.T) {
	w := buildTestWorld(t)

	p, _ := w.ProvinceByID(6)
	if p.BaseTax != 0 {
		t.Errorf("malformed base_tax should default to 0, got %v", p.BaseTax)
	}
	if p.Development() != 1 {
		t.Errorf("development = %v, want 1", p.Development())
	}

	found := false
	for _, d := range w.Warnings() {
		if d.Kind == DiagFieldDecode && strings.Contains(d.Message, "base_tax") {
			found = true
		}
	}
	if !found {
		t.Error("expected a field decode warning for base_tax")
	}
}

func TestHierarchyGapWarning(t *testing.T) {
	w := buildTestWorld(t)

	// Province 6 exists in the save but not in the area tables.
	found := false
	for _, d := range w.Warnings() {
		if d.Kind == DiagHierarchyGap && strings.Contains(d.Message, "province 6") {
			found = true
		}
	}
	if !found {
		t.Error("expected a hierarchy gap warning for province 6")
	}
	if _, ok := w.AreaContaining(6); ok {
		t.Error("unmapped province should have no area")
	}
}

func TestHierarchyChain(t *testing.T) {
	w := buildTestWorld(t)

	area, ok := w.AreaContaining(1)
	if !ok || area.ID != "uppland_area" {
		t.Fatalf("AreaContaining(1) = %v, %v", area, ok)
	}
	region, ok := w.RegionContaining(area.ID)
	if !ok || region.ID != "scandinavia_region" {
		t.Fatalf("RegionContaining = %v, %v", region, ok)
	}
	sr, ok := w.SuperregionContaining(region.ID)
	if !ok || sr.ID != "europe_superregion" {
		t.Fatalf("SuperregionContaining = %v, %v", sr, ok)
	}
	if area.Name != "Uppland" {
		t.Errorf("display name = %q, want Uppland", area.Name)
	}
}

func TestDynamicCountryMaterialized(t *testing.T) {
	w := buildTestWorld(t)

	c, ok := w.CountryByTag("ATL")
	if !ok {
		t.Fatal("owner tag ATL should be materialized")
	}
	if c.HasColor {
		t.Error("dynamic nation should not carry an authoritative color")
	}

	pal := palette.NewAssigner()
	if w.CountryColor("ATL") != pal.ColorFor(palette.ClassCountry, "ATL") {
		t.Error("dynamic nation color should come from the deterministic palette")
	}
}

func TestAuthoritativeCountryColors(t *testing.T) {
	w := buildTestWorld(t)

	swe, _ := w.CountryByTag("SWE")
	if !swe.HasColor || swe.Color != (palette.RGB{R: 8, G: 82, B: 165}) {
		t.Errorf("SWE color from save = %+v", swe.Color)
	}
	if swe.Name != "Sweden" {
		t.Errorf("SWE name = %q", swe.Name)
	}

	dan, _ := w.CountryByTag("DAN")
	if !dan.HasColor || dan.Color != (palette.RGB{R: 200, G: 20, B: 20}) {
		t.Errorf("DAN color from static data = %+v", dan.Color)
	}
}

func TestAggregates(t *testing.T) {
	w := buildTestWorld(t)

	if got := w.AreaDevelopment("uppland_area"); got != 18 {
		t.Errorf("uppland_area development = %v, want 18", got)
	}
	if got := w.RegionDominantReligion("scandinavia_region"); got != "catholic" {
		t.Errorf("dominant religion = %q, want catholic", got)
	}
	if got := w.RegionDominantCulture("scandinavia_region"); got != "swedish" {
		t.Errorf("dominant culture = %q, want swedish", got)
	}
	if got := w.SuperregionDominantReligion("europe_superregion"); got != "catholic" {
		t.Errorf("superregion dominant religion = %q", got)
	}
	if got := w.CountryOwnedDevelopment("SWE"); got != 18 {
		t.Errorf("SWE owned development = %v, want 18", got)
	}
	// DAN controls Stockholm (12) by occupation; SWE keeps Uppland (6).
	if got := w.CountryControlledDevelopment("DAN"); got != 12 {
		t.Errorf("DAN controlled development = %v, want 12", got)
	}
	if got := w.MaxDevelopment(); got != 12 {
		t.Errorf("max development = %v, want 12", got)
	}
}

func TestDominantTieBreaksOnLowestProvinceID(t *testing.T) {
	ta := make(tally)
	ta.add("orthodox", 6, 10)
	ta.add("catholic", 6, 3)
	if got := ta.winner(); got != "catholic" {
		t.Errorf("tie should break to the candidate with lowest province id, got %q", got)
	}
}

func TestSearchByName(t *testing.T) {
	w := buildTestWorld(t)

	matches := w.SearchByName("stockholm", false)
	if len(matches) != 1 || matches[0].Name != "Stockholm" {
		t.Fatalf("substring search = %v", matches)
	}

	if got := w.SearchByName("stock", false); len(got) != 1 {
		t.Errorf("partial match should hit Stockholm, got %d results", len(got))
	}
	if got := w.SearchByName("stock", true); len(got) != 0 {
		t.Errorf("exact search for partial name should be empty, got %d results", len(got))
	}
	if got := w.SearchByName("STOCKHOLM", true); len(got) != 1 {
		t.Errorf("exact search should fold case, got %d results", len(got))
	}
	if got := w.SearchByName("   ", false); got != nil {
		t.Errorf("blank query should return nothing, got %v", got)
	}
}
