package world

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML-exportable view of a built world, ordered so that
// exporting the same model twice produces identical files.
type Snapshot struct {
	Provinces []*Province  `yaml:"provinces"`
	Countries []*Country   `yaml:"countries"`
	Warnings  []Diagnostic `yaml:"warnings,omitempty"`
}

// Snapshot collects the model into a stable, serializable form.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{Warnings: w.Warnings()}

	for _, p := range w.Provinces {
		s.Provinces = append(s.Provinces, p)
	}
	sort.Slice(s.Provinces, func(i, j int) bool { return s.Provinces[i].ID < s.Provinces[j].ID })

	for _, c := range w.Countries {
		s.Countries = append(s.Countries, c)
	}
	sort.Slice(s.Countries, func(i, j int) bool { return s.Countries[i].Tag < s.Countries[j].Tag })

	return s
}

// Export writes the snapshot to a YAML file, creating parent directories
// as needed.
func (w *World) Export(path string) error {
	data, err := yaml.Marshal(w.Snapshot())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
