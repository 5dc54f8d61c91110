package asset

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/workspace"
)

// SchemaVersion is the current schema version for all persisted assets.
const SchemaVersion = "1.0"

// Store persists node-graph assets as schema-versioned YAML documents.
// Writes go through temp file + rename; a failed save never leaves a
// partially written asset behind.
type Store struct {
	FS     fs.FS
	Layout workspace.Layout
}

// NewStore creates a Store over the given filesystem and workspace layout.
func NewStore(filesystem fs.FS, layout workspace.Layout) *Store {
	return &Store{FS: filesystem, Layout: layout}
}

// SavePrefab persists a prefab under Prefabs/<Name>.yaml.
func (s *Store) SavePrefab(p *Prefab) error {
	p.SchemaVersion = SchemaVersion
	return s.SaveYAML(s.Layout.PrefabPath(p.Name), p)
}

// LoadPrefab reads a prefab back by name.
// Returns E_STORAGE if the asset is missing, unparseable, or from an
// unsupported schema version.
func (s *Store) LoadPrefab(name string) (*Prefab, error) {
	var p Prefab
	if err := s.LoadYAML(s.Layout.PrefabPath(name), &p); err != nil {
		return nil, err
	}
	if err := checkSchema(p.SchemaVersion, "prefab "+name); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveScene persists a scene under Scenes/<Name>.yaml.
func (s *Store) SaveScene(sc *Scene) error {
	sc.SchemaVersion = SchemaVersion
	return s.SaveYAML(s.Layout.ScenePath(sc.Name), sc)
}

// LoadScene reads a scene back by name.
func (s *Store) LoadScene(name string) (*Scene, error) {
	var sc Scene
	if err := s.LoadYAML(s.Layout.ScenePath(name), &sc); err != nil {
		return nil, err
	}
	if err := checkSchema(sc.SchemaVersion, "scene "+name); err != nil {
		return nil, err
	}
	return &sc, nil
}

// SaveYAML marshals v and writes it atomically to path.
// Used directly by the settings-asset packages (input, layers, manifest).
func (s *Store) SaveYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.EStorage, "failed to marshal "+path, err)
	}
	if err := fs.WriteFileAtomic(s.FS, path, data, 0644); err != nil {
		return errors.Wrap(errors.EStorage, "failed to write "+path, err)
	}
	return nil
}

// LoadYAML reads path and unmarshals it into out.
func (s *Store) LoadYAML(path string, out any) error {
	data, err := s.FS.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.EStorage, path+" not found")
		}
		return errors.Wrap(errors.EStorage, "failed to read "+path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.EStorage, "invalid yaml in "+path, err)
	}
	return nil
}

func checkSchema(version, what string) error {
	if version == "" {
		return errors.New(errors.EStorage, what+": missing schema_version")
	}
	if version != SchemaVersion {
		return errors.New(errors.EStorage, what+": unsupported schema_version: "+version)
	}
	return nil
}
