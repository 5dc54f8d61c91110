// Package manifest writes the persisted project manifest: the ordered,
// enabled list of scenes the runtime loads by index.
package manifest

import (
	"time"

	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/errors"
)

// Entry is one ordered manifest entry. Order is load-index-significant:
// runtime code loads "the next scene" by index.
type Entry struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// Manifest is the persisted Settings/Project.yaml document.
// It is overwritten wholesale on every generation run, never appended to.
type Manifest struct {
	SchemaVersion string  `yaml:"schema_version"`
	Project       string  `yaml:"project"`
	GeneratedBy   string  `yaml:"generated_by"` // generation run id
	GeneratedAt   string  `yaml:"generated_at"`
	Scenes        []Entry `yaml:"scenes"`
}

// Write overwrites the manifest with the given entries, validating that
// paths are unique. Entries keep their given order.
func Write(store *asset.Store, project, runID string, now time.Time, entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Path] {
			return errors.New(errors.EInternal, "duplicate manifest entry: "+e.Path)
		}
		seen[e.Path] = true
	}

	m := Manifest{
		SchemaVersion: asset.SchemaVersion,
		Project:       project,
		GeneratedBy:   runID,
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Scenes:        entries,
	}
	return store.SaveYAML(store.Layout.ManifestPath(), m)
}

// Load reads the manifest back.
func Load(store *asset.Store) (Manifest, error) {
	var m Manifest
	if err := store.LoadYAML(store.Layout.ManifestPath(), &m); err != nil {
		return Manifest{}, err
	}
	if m.SchemaVersion != asset.SchemaVersion {
		return Manifest{}, errors.New(errors.EStorage, "manifest: unsupported schema_version: "+m.SchemaVersion)
	}
	return m, nil
}
