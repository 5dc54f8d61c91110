// Package layers maintains the bounded layer (partition) label table
// persisted at Settings/Layers.yaml.
//
// The table has a fixed number of slots; the first slots are reserved for
// builtin layer names and user layers occupy the first empty slot at or past
// the reserved offset. A full table degrades to a warning, never an error.
package layers

import (
	"os"

	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/errors"
)

// Table bounds.
const (
	TableSize  = 32
	UserOffset = 8 // slots 0..7 are reserved for builtins
)

// Builtin layer names occupying the reserved slots.
var builtins = [UserOffset]string{
	0: "Default",
	1: "TransparentFX",
	2: "IgnoreRaycast",
	4: "Water",
	5: "UI",
}

// Table is the persisted label table. Empty strings are free slots.
type Table struct {
	SchemaVersion string            `yaml:"schema_version"`
	Slots         [TableSize]string `yaml:"slots,flow"`
}

// NewTable returns a table with only the builtin slots occupied.
func NewTable() *Table {
	t := &Table{SchemaVersion: asset.SchemaVersion}
	copy(t.Slots[:UserOffset], builtins[:])
	return t
}

// Index returns the slot index of name, or -1.
func (t *Table) Index(name string) int {
	for i, s := range t.Slots {
		if s != "" && s == name {
			return i
		}
	}
	return -1
}

// EnsureResult describes what Ensure did.
type EnsureResult struct {
	Slot  int  // slot holding the name, -1 when the table was full
	Added bool // true when a new slot was written
	Full  bool // true when the table had no free slot (warning, not fatal)
}

// Ensure makes sure name occupies a slot at or past the user offset.
// Already present: no-op. Free slot: writes the name there. Table full:
// returns Full without mutating - callers log a warning and continue.
func (t *Table) Ensure(name string) EnsureResult {
	if i := t.Index(name); i >= 0 {
		return EnsureResult{Slot: i}
	}
	for i := UserOffset; i < TableSize; i++ {
		if t.Slots[i] == "" {
			t.Slots[i] = name
			return EnsureResult{Slot: i, Added: true}
		}
	}
	return EnsureResult{Slot: -1, Full: true}
}

// Load reads the table from Settings/Layers.yaml, or returns a fresh one if
// the file does not exist yet.
func Load(store *asset.Store) (*Table, error) {
	path := store.Layout.LayersPath()
	if _, err := store.FS.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, errors.Wrap(errors.EStorage, "failed to stat "+path, err)
	}
	var t Table
	if err := store.LoadYAML(path, &t); err != nil {
		return nil, err
	}
	if t.SchemaVersion != asset.SchemaVersion {
		return nil, errors.New(errors.EStorage, path+": unsupported schema_version: "+t.SchemaVersion)
	}
	return &t, nil
}

// Save persists the table.
func Save(store *asset.Store, t *Table) error {
	t.SchemaVersion = asset.SchemaVersion
	return store.SaveYAML(store.Layout.LayersPath(), t)
}
