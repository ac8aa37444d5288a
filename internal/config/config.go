package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration: where the static game data
// lives, where savegames are picked up, and where rendered maps go.
type Config struct {
	MapFolder   string `yaml:"map_folder"`   // area/region/superregion tables, definition.csv, provinces.bmp
	SavesFolder string `yaml:"saves_folder"` // user savegames
	TagsFile    string `yaml:"tags_file"`    // country tag index
	OutputDir   string `yaml:"output_dir"`   // rendered PNGs and snapshots
	Debug       bool   `yaml:"debug"`
}

const configFile = "euview.yaml"

// LoadConfig reads euview.yaml from the working directory if present, then
// applies .env and environment overrides (EUVIEW_MAP_FOLDER and friends).
// Every field has a working default, so a missing config file is fine.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		MapFolder:   "eu4",
		SavesFolder: "saves",
		OutputDir:   "out",
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// The tags default follows the configured map folder, so it is only
	// resolved once the file has had its say.
	if cfg.TagsFile == "" {
		cfg.TagsFile = filepath.Join(cfg.MapFolder, "00_countries.txt")
	}

	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()
	overrideString(&cfg.MapFolder, "EUVIEW_MAP_FOLDER")
	overrideString(&cfg.SavesFolder, "EUVIEW_SAVES_FOLDER")
	overrideString(&cfg.TagsFile, "EUVIEW_TAGS_FILE")
	overrideString(&cfg.OutputDir, "EUVIEW_OUTPUT_DIR")
	if v, ok := os.LookupEnv("EUVIEW_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// BitmapPath is the province identity bitmap inside the map folder.
func (c *Config) BitmapPath() string {
	return filepath.Join(c.MapFolder, "provinces.bmp")
}

// SavePath resolves a savefile name inside the saves folder.
func (c *Config) SavePath(name string) string {
	return filepath.Join(c.SavesFolder, name)
}
