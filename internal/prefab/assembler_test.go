package prefab

import (
	"os"
	"testing"

	"github.com/HobanGames/Reckless/internal/artifact"
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/build"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/workspace"
)

func newTestStore(t *testing.T) *asset.Store {
	t.Helper()
	layout := workspace.NewLayout(t.TempDir())
	fsys := fs.NewRealFS()
	if err := workspace.Scaffold(fsys, layout); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if err := fsys.MkdirAll(layout.BuildDir(), 0755); err != nil {
		t.Fatalf("mkdir build dir: %v", err)
	}
	return asset.NewStore(fsys, layout)
}

func registryWith(t *testing.T, store *asset.Store, types ...string) *build.Registry {
	t.Helper()
	tm := build.TypeMap{SchemaVersion: asset.SchemaVersion, OK: true, Types: types}
	if err := store.SaveYAML(store.Layout.TypeMapPath(), tm); err != nil {
		t.Fatalf("write type map: %v", err)
	}
	reg, err := build.LoadRegistry(store)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

func allBehaviorTypes() []string {
	return []string{
		artifact.TypePlayerController,
		artifact.TypeEnemyAI,
		artifact.TypeProjectile,
	}
}

func TestAssemblePersistsAllThreeTemplates(t *testing.T) {
	store := newTestStore(t)
	reg := registryWith(t, store, allBehaviorTypes()...)

	handles, err := Assemble(store, reg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if handles.Player == nil || handles.Enemy == nil || handles.Projectile == nil {
		t.Fatal("missing handle")
	}

	for _, name := range []string{PlayerName, EnemyName, ProjectileName} {
		if _, err := store.LoadPrefab(name); err != nil {
			t.Errorf("prefab %s not persisted: %v", name, err)
		}
	}
}

func TestAssemblePatchesForwardReference(t *testing.T) {
	store := newTestStore(t)
	reg := registryWith(t, store, allBehaviorTypes()...)

	handles, err := Assemble(store, reg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	// The in-memory handle carries the patched reference.
	ctrl := handles.Player.Root.Component(artifact.TypePlayerController)
	ref, ok := asset.FieldRef(ctrl, "projectile")
	if !ok || ref.Kind != asset.RefPrefab || ref.Name != ProjectileName {
		t.Errorf("handle projectile ref: %+v ok=%v", ref, ok)
	}

	// So does the persisted asset after the re-save.
	loaded, err := store.LoadPrefab(PlayerName)
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	ref, ok = asset.FieldRef(loaded.Root.Component(artifact.TypePlayerController), "projectile")
	if !ok || ref.Name != ProjectileName {
		t.Errorf("persisted projectile ref: %+v ok=%v", ref, ok)
	}
}

func TestPlayerProjectileUnsetBeforePatch(t *testing.T) {
	player := buildPlayer()
	ctrl := player.Root.Component(artifact.TypePlayerController)
	if _, ok := asset.FieldRef(ctrl, "projectile"); ok {
		t.Error("projectile must be unset until the patch pass")
	}
}

func TestAssembleEnemyTargetLeftUnset(t *testing.T) {
	store := newTestStore(t)
	reg := registryWith(t, store, allBehaviorTypes()...)

	handles, err := Assemble(store, reg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	ai := handles.Enemy.Root.Component(artifact.TypeEnemyAI)
	if _, ok := asset.FieldRef(ai, "target"); ok {
		t.Error("template target must stay unset; it is wired per scene instance")
	}
}

func TestAssembleAbortsBeforePersistOnMissingType(t *testing.T) {
	store := newTestStore(t)
	reg := registryWith(t, store, artifact.TypePlayerController, artifact.TypeProjectile)

	_, err := Assemble(store, reg)
	if errors.GetCode(err) != errors.ETypeResolution {
		t.Fatalf("expected E_TYPE_RESOLUTION, got %v", err)
	}

	// Fail-fast: nothing was persisted, not even the templates whose types
	// did resolve.
	for _, name := range []string{PlayerName, EnemyName, ProjectileName} {
		if _, err := os.Stat(store.Layout.PrefabPath(name)); err == nil {
			t.Errorf("prefab %s persisted despite aborted assembly", name)
		}
	}
}
