package hierarchy

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/palette"
)

// Definition is one row of definition.csv: the bitmap color that identifies
// a province, plus its default name. Rows for reserved province slots are
// kept but flagged inactive.
type Definition struct {
	ID       int
	Color    palette.RGB
	Name     string
	Inactive bool
}

// LoadDefinitions reads the province color table from the map folder.
func LoadDefinitions(mapFolder string) (map[palette.RGB]int, map[int]Definition, error) {
	f, err := os.Open(filepath.Join(mapFolder, "definition.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseDefinitions(f)
}

// ParseDefinitions parses definition.csv rows of the form
// `id;red;green;blue;name;x`. Rows whose id column is not numeric (such as
// the header) are skipped, matching how the table is distributed.
func ParseDefinitions(r io.Reader) (map[palette.RGB]int, map[int]Definition, error) {
	reader := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	colorToID := make(map[palette.RGB]int)
	byID := make(map[int]Definition)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(row) < 4 {
			continue
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		channels, ok := parseChannels(row[1:4])
		if !ok {
			continue
		}

		name := ""
		if len(row) > 4 {
			name = strings.TrimSpace(row[4])
		}

		def := Definition{
			ID:       id,
			Color:    palette.RGB{R: channels[0], G: channels[1], B: channels[2]},
			Name:     name,
			Inactive: strings.HasPrefix(strings.ToLower(name), "unused"),
		}
		colorToID[def.Color] = id
		byID[id] = def
	}

	return colorToID, byID, nil
}

// parseChannels rejects rows whose color values fall outside 0-255; a
// truncated channel would silently collide with another province's color.
func parseChannels(raw []string) ([3]uint8, bool) {
	var channels [3]uint8
	for i, s := range raw {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 255 {
			return channels, false
		}
		channels[i] = uint8(v)
	}
	return channels, true
}
