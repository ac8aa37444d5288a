package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MapFolder != "eu4" || cfg.SavesFolder != "saves" || cfg.OutputDir != "out" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TagsFile != filepath.Join("eu4", "00_countries.txt") {
		t.Errorf("tags default = %q", cfg.TagsFile)
	}
}

func TestTagsDefaultFollowsConfiguredMapFolder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	doc := "map_folder: gamedata\n"
	if err := os.WriteFile(filepath.Join(dir, "euview.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MapFolder != "gamedata" {
		t.Errorf("map folder = %q", cfg.MapFolder)
	}
	if want := filepath.Join("gamedata", "00_countries.txt"); cfg.TagsFile != want {
		t.Errorf("tags file = %q, want %q", cfg.TagsFile, want)
	}
}

func TestExplicitTagsFileWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	doc := "map_folder: gamedata\ntags_file: custom/tags.txt\n"
	if err := os.WriteFile(filepath.Join(dir, "euview.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TagsFile != "custom/tags.txt" {
		t.Errorf("tags file = %q", cfg.TagsFile)
	}
}
