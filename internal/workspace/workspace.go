// Package workspace defines the generated project layout and its scaffolder.
package workspace

import (
	"path/filepath"

	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
)

// Fixed subdirectory names under the workspace root.
const (
	ScriptsDir  = "Scripts"
	PrefabsDir  = "Prefabs"
	ScenesDir   = "Scenes"
	SettingsDir = "Settings"
)

// Layout holds the workspace root and resolves the fixed subpaths.
type Layout struct {
	Root string
}

// NewLayout creates a Layout for the given root path.
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// Scripts returns the source artifact directory.
func (l Layout) Scripts() string { return filepath.Join(l.Root, ScriptsDir) }

// Prefabs returns the object template directory.
func (l Layout) Prefabs() string { return filepath.Join(l.Root, PrefabsDir) }

// Scenes returns the scene directory.
func (l Layout) Scenes() string { return filepath.Join(l.Root, ScenesDir) }

// Settings returns the settings directory.
func (l Layout) Settings() string { return filepath.Join(l.Root, SettingsDir) }

// BuildDir returns the builder output directory under Scripts.
func (l Layout) BuildDir() string { return filepath.Join(l.Scripts(), ".build") }

// TypeMapPath returns the path of the type map the external builder writes.
func (l Layout) TypeMapPath() string { return filepath.Join(l.BuildDir(), "types.yaml") }

// PrefabPath returns the persisted path for a named prefab.
func (l Layout) PrefabPath(name string) string {
	return filepath.Join(l.Prefabs(), name+".yaml")
}

// ScenePath returns the persisted path for a named scene.
func (l Layout) ScenePath(name string) string {
	return filepath.Join(l.Scenes(), name+".yaml")
}

// SceneRelPath returns the workspace-relative path recorded in the manifest.
func (l Layout) SceneRelPath(name string) string {
	return filepath.Join(ScenesDir, name+".yaml")
}

// BindingsPath returns the path of the persisted input binding asset.
func (l Layout) BindingsPath() string {
	return filepath.Join(l.Settings(), "InputActions.yaml")
}

// LayersPath returns the path of the persisted layer table.
func (l Layout) LayersPath() string {
	return filepath.Join(l.Settings(), "Layers.yaml")
}

// ManifestPath returns the path of the persisted project manifest.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.Settings(), "Project.yaml")
}

// Scaffold creates the root and the four fixed subdirectories.
// Existing directories are left untouched; re-running is a no-op.
// Storage failure is fatal (E_STORAGE): nothing downstream may run
// unless all four subpaths exist.
func Scaffold(fsys fs.FS, l Layout) error {
	dirs := []string{
		l.Root,
		l.Scripts(),
		l.Prefabs(),
		l.Scenes(),
		l.Settings(),
	}
	for _, dir := range dirs {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithDetails(errors.EStorage, "failed to create workspace directory", err,
				map[string]string{"dir": dir})
		}
	}
	return nil
}
