package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/world"
)

// Mode selects which attribute of the model a rendered map encodes.
type Mode string

const (
	ModePolitical   Mode = "political"
	ModeArea        Mode = "area"
	ModeRegion      Mode = "region"
	ModeDevelopment Mode = "development"
	ModeReligion    Mode = "religion"
)

// Modes lists every map mode in display order.
func Modes() []Mode {
	return []Mode{ModePolitical, ModeArea, ModeRegion, ModeDevelopment, ModeReligion}
}

// ParseMode validates a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown map mode %q", s)
}

// Renderer repaints the base bitmap for a map mode. Rendering is a pure
// transform: the same model and mode always produce a byte-identical image.
type Renderer struct {
	index *PixelIndex
	world *world.World
	pal   *palette.Assigner
}

func New(index *PixelIndex, w *world.World, pal *palette.Assigner) *Renderer {
	return &Renderer{index: index, world: w, pal: pal}
}

// Render produces the bitmap for one map mode, with or without province
// borders. Province colors are resolved sequentially in id order so palette
// assignment stays reproducible; the pixel writes then fan out across
// workers, which is safe because provinces occupy disjoint pixel sets.
func (r *Renderer) Render(mode Mode, borders bool) *image.RGBA {
	width, height := r.index.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for _, off := range r.index.unmapped {
		writePixel(img, off, palette.UnmappedColor)
	}

	ids := r.index.ProvinceIDs()
	colors := make(map[int]palette.RGB, len(ids))
	for _, id := range ids {
		colors[id] = r.provinceColor(mode, id)
	}

	workers := runtime.NumCPU()
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(ids) + workers - 1) / workers
	for start := 0; start < len(ids); start += chunk {
		end := start + chunk
		if end > len(ids) {
			end = len(ids)
		}
		wg.Add(1)
		go func(ids []int) {
			defer wg.Done()
			for _, id := range ids {
				c := colors[id]
				for _, off := range r.index.Pixels(id) {
					writePixel(img, off, c)
				}
				if borders {
					bc := borderColor(c)
					for _, off := range r.index.Borders(id) {
						writePixel(img, off, bc)
					}
				}
			}
		}(ids[start:end])
	}
	wg.Wait()

	return img
}

// borderColor darkens the province fill so borders read in every mode.
func borderColor(c palette.RGB) palette.RGB {
	return palette.RGB{
		R: uint8(float64(c.R) * 0.6),
		G: uint8(float64(c.G) * 0.6),
		B: uint8(float64(c.B) * 0.6),
	}
}

func writePixel(img *image.RGBA, off int, c palette.RGB) {
	i := off * 4
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 0xff
}

// provinceColor resolves one province's color for the active mode.
// Provinces present in the bitmap but absent from the model use the
// unmapped sentinel.
func (r *Renderer) provinceColor(mode Mode, id int) palette.RGB {
	p, ok := r.world.ProvinceByID(id)
	if !ok {
		return palette.UnmappedColor
	}

	switch p.Type {
	case world.ProvinceSea:
		return palette.SeaColor
	case world.ProvinceWasteland:
		return palette.WastelandColor
	}

	switch mode {
	case ModePolitical:
		if p.Type == world.ProvinceOwned {
			return r.world.CountryColor(p.Owner)
		}
		return palette.NativeColor

	case ModeArea:
		if a, ok := r.world.AreaContaining(p.ID); ok {
			return r.pal.ColorFor(palette.ClassArea, a.ID)
		}
		return palette.UnmappedColor

	case ModeRegion:
		a, ok := r.world.AreaContaining(p.ID)
		if !ok {
			return palette.UnmappedColor
		}
		if reg, ok := r.world.RegionContaining(a.ID); ok {
			return r.pal.ColorFor(palette.ClassRegion, reg.ID)
		}
		return palette.UnmappedColor

	case ModeDevelopment:
		return developmentColor(p.Development(), r.world.MaxDevelopment())

	case ModeReligion:
		religion := p.Religion
		if religion == "" {
			religion = "no_religion"
		}
		return r.pal.ColorFor(palette.ClassReligion, religion)

	default:
		return palette.UnmappedColor
	}
}

// developmentColor is a monotonic green ramp: log-scaled intensity against
// the highest development observed in the model.
func developmentColor(dev, maxDev float64) palette.RGB {
	if maxDev < 2 {
		maxDev = 2
	}
	normalized := math.Log(math.Max(1, dev)) / math.Log(maxDev)
	if normalized > 1 {
		normalized = 1
	}
	return palette.RGB{G: uint8(math.Round(255 * normalized))}
}

// WritePNG saves a rendered map, creating parent directories as needed.
func WritePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
