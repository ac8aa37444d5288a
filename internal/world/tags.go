package world

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/parser"
)

// TagTable maps country tags to their display names and, where the game
// data provides one, their authoritative map colors. Dynamically created
// nations never appear here; they are materialized during the build with a
// generated palette color.
type TagTable struct {
	Names  map[string]string
	Colors map[string]palette.RGB
}

// LoadTags reads a tag index of the form `SWE = "countries/Sweden.txt"` and
// resolves each referenced country file for its color block. A country file
// that is missing or has no color block leaves the tag without an
// authoritative color; that is normal and handled by palette assignment.
func LoadTags(tagsPath string) (*TagTable, error) {
	f, err := os.Open(tagsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}

	table := &TagTable{
		Names:  make(map[string]string),
		Colors: make(map[string]palette.RGB),
	}

	baseDir := filepath.Dir(tagsPath)
	for _, pair := range doc.Pairs {
		tag := pair.Key
		ref, ok := pair.Value.(parser.Scalar)
		if !ok {
			continue
		}

		name := strings.TrimSuffix(filepath.Base(ref.Value), ".txt")
		table.Names[tag] = name

		if c, ok := readCountryColor(filepath.Join(baseDir, filepath.FromSlash(ref.Value))); ok {
			table.Colors[tag] = c
		}
	}
	return table, nil
}

func readCountryColor(path string) (palette.RGB, bool) {
	f, err := os.Open(path)
	if err != nil {
		return palette.RGB{}, false
	}
	defer f.Close()

	doc, err := parser.Parse(f)
	if err != nil {
		return palette.RGB{}, false
	}

	l, ok := doc.FirstList("color")
	if !ok {
		return palette.RGB{}, false
	}
	return colorFromScalars(l.Scalars())
}

func colorFromScalars(raw []string) (palette.RGB, bool) {
	if len(raw) < 3 {
		return palette.RGB{}, false
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(raw[i])
		if err != nil || v < 0 || v > 255 {
			return palette.RGB{}, false
		}
		channels[i] = uint8(v)
	}
	return palette.RGB{R: channels[0], G: channels[1], B: channels[2]}, true
}
