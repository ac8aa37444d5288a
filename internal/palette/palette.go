package palette

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Class selects the saturation/lightness band for generated colors, so
// countries, areas, regions and religions stay visually distinguishable
// even when their seeds land on nearby hues.
type Class int

const (
	ClassCountry Class = iota
	ClassArea
	ClassRegion
	ClassReligion
)

var bands = [...]struct{ sat, lum float64 }{
	ClassCountry:  {0.58, 0.46},
	ClassArea:     {0.42, 0.64},
	ClassRegion:   {0.72, 0.36},
	ClassReligion: {0.82, 0.56},
}

// Reserved sentinel colors. These are fixed, lie outside every generated
// band, and are never produced by ColorFor.
var (
	SeaColor       = RGB{R: 55, G: 90, B: 220}
	WastelandColor = RGB{R: 128, G: 128, B: 128}
	NativeColor    = RGB{R: 190, G: 160, B: 120}
	UnmappedColor  = RGB{R: 255, G: 0, B: 255}
)

// Assigner hands out display colors for entities that lack an authoritative
// one. Colors are derived from a stable hash of the entity key, memoized,
// and unique within a class. Collision probing is scoped per class, so the
// colors one map mode hands out never depend on which other modes were
// rendered first; within a class, callers resolve keys in sorted id order,
// which makes identical input data reproduce identical colors across runs.
type Assigner struct {
	mu            sync.Mutex
	assigned      map[string]RGB
	taken         map[Class]map[RGB]string
	authoritative map[string]RGB
}

func NewAssigner() *Assigner {
	a := &Assigner{
		assigned:      make(map[string]RGB),
		taken:         make(map[Class]map[RGB]string),
		authoritative: make(map[string]RGB),
	}
	for class := range bands {
		taken := make(map[RGB]string)
		for _, c := range []RGB{SeaColor, WastelandColor, NativeColor, UnmappedColor} {
			taken[c] = "reserved"
		}
		a.taken[Class(class)] = taken
	}
	return a
}

// SetAuthoritative registers an explicit color from the save data. It takes
// precedence over generation for the same key.
func (a *Assigner) SetAuthoritative(key string, c RGB) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authoritative[key] = c
}

// ColorFor returns the display color for the entity key. Authoritative
// colors win; otherwise a color is generated from the key's hash within the
// class band. Calling it twice with the same key always yields the same
// color.
func (a *Assigner) ColorFor(class Class, key string) RGB {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.authoritative[key]; ok {
		return c
	}

	memoKey := fmt.Sprintf("%d|%s", class, key)
	if c, ok := a.assigned[memoKey]; ok {
		return c
	}

	c := a.generate(class, key)
	a.assigned[memoKey] = c
	a.taken[class][c] = memoKey
	return c
}

// generate derives hue plus small saturation/lightness jitter from the
// key's FNV-1a hash. If the quantized color is already in use it rehashes
// with a probe counter until a free one is found.
func (a *Assigner) generate(class Class, key string) RGB {
	band := bands[class]
	for probe := 0; ; probe++ {
		seed := key
		if probe > 0 {
			seed = fmt.Sprintf("%s#%d", key, probe)
		}

		h := fnv.New64a()
		h.Write([]byte(seed))
		sum := h.Sum64()

		hue := float64(sum%(1<<20)) / float64(1<<20) * 360.0
		sat := band.sat + (float64((sum>>20)%128)/127.0-0.5)*0.08
		lum := band.lum + (float64((sum>>27)%128)/127.0-0.5)*0.08

		r, g, b := colorful.Hsl(hue, sat, lum).Clamped().RGB255()
		c := RGB{R: r, G: g, B: b}
		if _, used := a.taken[class][c]; !used {
			return c
		}
	}
}
