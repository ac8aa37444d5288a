package world

import (
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
)

// ProvinceType classifies how a province participates in the game world.
type ProvinceType string

const (
	ProvinceOwned     ProvinceType = "owned"     // land with a country owner
	ProvinceNative    ProvinceType = "native"    // land with no owner
	ProvinceSea       ProvinceType = "sea"       // coastal waters, oceans, inland seas
	ProvinceWasteland ProvinceType = "wasteland" // inhospitable, never ownable
)

// Province is an immutable snapshot of one province at the save's date.
type Province struct {
	ID             int          `yaml:"id"`
	Name           string       `yaml:"name"`
	Type           ProvinceType `yaml:"type"`
	Owner          string       `yaml:"owner,omitempty"`      // country tag
	Controller     string       `yaml:"controller,omitempty"` // may differ during occupation
	Capital        string       `yaml:"capital,omitempty"`
	Cores          []string     `yaml:"cores,omitempty"`
	Culture        string       `yaml:"culture,omitempty"`
	Religion       string       `yaml:"religion,omitempty"`
	TradeGoods     string       `yaml:"trade_goods,omitempty"`
	BaseTax        float64      `yaml:"base_tax"`
	BaseProduction float64      `yaml:"base_production"`
	BaseManpower   float64      `yaml:"base_manpower"`
	NativeSize     int          `yaml:"native_size,omitempty"`
}

// Development is the province's total development.
func (p *Province) Development() float64 {
	return p.BaseTax + p.BaseProduction + p.BaseManpower
}

// IsLand reports whether the province can hold population and development.
func (p *Province) IsLand() bool {
	return p.Type == ProvinceOwned || p.Type == ProvinceNative
}

// Country is one nation present in the save or the static tag tables.
type Country struct {
	Tag      string      `yaml:"tag"`
	Name     string      `yaml:"name"`
	Color    palette.RGB `yaml:"color"`
	HasColor bool        `yaml:"has_color"` // authoritative color from game data
}

// Area is the smallest static grouping of provinces.
type Area struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	ProvinceIDs []int  `yaml:"province_ids"`
	Inactive    bool   `yaml:"inactive,omitempty"`
}

// Region groups areas.
type Region struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	AreaIDs  []string `yaml:"area_ids"`
	Inactive bool     `yaml:"inactive,omitempty"`
}

// Superregion groups regions.
type Superregion struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	RegionIDs []string `yaml:"region_ids"`
	Inactive  bool     `yaml:"inactive,omitempty"`
}

// DisplayName turns an internal id like "ile_de_france_area" into
// "Ile De France".
func DisplayName(id string) string {
	for _, suffix := range []string{"_superregion", "_region", "_area"} {
		if strings.HasSuffix(id, suffix) {
			id = strings.TrimSuffix(id, suffix)
			break
		}
	}

	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
