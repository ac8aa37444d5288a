package render

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
)

// PixelIndex maps province ids to the pixels they occupy in the base
// bitmap, where every province is painted in its unique definition color.
// Built once per bitmap and read-only afterwards.
type PixelIndex struct {
	width  int
	height int

	pixels   map[int][]int // province id → flat offsets (y*width + x)
	borders  map[int][]int // province id → offsets adjacent to other provinces
	unmapped []int         // pixels whose color has no definition entry

	mismatches map[palette.RGB]int // unknown color → pixel count
}

// LoadBaseBitmap reads the province identity bitmap from disk.
func LoadBaseBitmap(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return bmp.Decode(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

// NewPixelIndex scans the bitmap once. Pixel colors missing from the
// definition table degrade to the unmapped bucket and are recorded as
// mismatches rather than failing the scan. Border pixels are derived in the
// same pass: a pixel is a border when any of its eight neighbors belongs to
// a different province, with the image edge counting as outside.
func NewPixelIndex(img image.Image, colorToID map[palette.RGB]int) *PixelIndex {
	bounds := img.Bounds()
	idx := &PixelIndex{
		width:      bounds.Dx(),
		height:     bounds.Dy(),
		pixels:     make(map[int][]int),
		borders:    make(map[int][]int),
		mismatches: make(map[palette.RGB]int),
	}

	grid := make([]int, idx.width*idx.height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			rgb := palette.RGB{R: c.R, G: c.G, B: c.B}
			off := (y-bounds.Min.Y)*idx.width + (x - bounds.Min.X)

			if id, ok := colorToID[rgb]; ok {
				grid[off] = id
				idx.pixels[id] = append(idx.pixels[id], off)
			} else {
				grid[off] = -1
				idx.unmapped = append(idx.unmapped, off)
				idx.mismatches[rgb]++
			}
		}
	}

	for off, id := range grid {
		if id >= 0 && isBorder(grid, idx.width, idx.height, off, id) {
			idx.borders[id] = append(idx.borders[id], off)
		}
	}
	return idx
}

var neighborhood = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func isBorder(grid []int, width, height, off, id int) bool {
	x, y := off%width, off/width
	for _, d := range neighborhood {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			return true
		}
		if grid[ny*width+nx] != id {
			return true
		}
	}
	return false
}

// Size returns the bitmap dimensions.
func (idx *PixelIndex) Size() (width, height int) {
	return idx.width, idx.height
}

// ProvinceIDs returns the indexed province ids in ascending order.
func (idx *PixelIndex) ProvinceIDs() []int {
	ids := make([]int, 0, len(idx.pixels))
	for id := range idx.pixels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Pixels returns the flat pixel offsets occupied by a province.
func (idx *PixelIndex) Pixels(id int) []int {
	return idx.pixels[id]
}

// Borders returns the flat offsets of a province's border pixels.
func (idx *PixelIndex) Borders(id int) []int {
	return idx.borders[id]
}

// Mismatches returns the bitmap colors that had no definition entry and
// how many pixels carried each.
func (idx *PixelIndex) Mismatches() map[palette.RGB]int {
	out := make(map[palette.RGB]int, len(idx.mismatches))
	for c, n := range idx.mismatches {
		out[c] = n
	}
	return out
}
