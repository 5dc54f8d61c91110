package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HobanGames/Reckless/internal/config"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/exec"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/lock"
	"github.com/HobanGames/Reckless/internal/workspace"
)

const generateConfig = `version: 1
project: demo
root: game
builder:
  command: fakebuild
  timeout_seconds: 10
`

const generateTypeMap = `schema_version: "1.0"
ok: true
types:
  - PlayerController
  - GameManager
  - CameraFollow
  - EnemyAI
  - Projectile
  - HUDController
`

// typeMapRunner plays the external builder for the whole command path.
type typeMapRunner struct {
	root string
}

func (r *typeMapRunner) Run(ctx context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	layout := workspace.NewLayout(r.root)
	if err := os.WriteFile(layout.TypeMapPath(), []byte(generateTypeMap), 0644); err != nil {
		return exec.CmdResult{}, err
	}
	return exec.CmdResult{}, nil
}

func generateCwd(t *testing.T) string {
	t.Helper()
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, config.ConfigFileName), []byte(generateConfig), 0644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return cwd
}

func TestGenerateFullRun(t *testing.T) {
	cwd := generateCwd(t)
	root := filepath.Join(cwd, "game")

	var out bytes.Buffer
	err := Generate(context.Background(), &typeMapRunner{root: root}, fs.NewRealFS(), cwd,
		GenerateOpts{}, &out, io.Discard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	layout := workspace.NewLayout(root)
	for _, path := range []string{
		layout.BindingsPath(),
		layout.LayersPath(),
		layout.ManifestPath(),
		layout.PrefabPath("PlayerTemplate"),
		layout.ScenePath("MainMenu"),
		layout.ScenePath("Gameplay"),
	} {
		if _, statErr := os.Stat(path); statErr != nil {
			t.Errorf("missing output %s", path)
		}
	}

	for _, line := range []string{
		"run_id: ",
		"workspace: " + root,
		"artifacts: 6",
		"scenes: MainMenu, Gameplay",
		"manifest_entries: 2",
		"degraded: none",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("summary missing %q:\n%s", line, out.String())
		}
	}

	// The run lock was released.
	if _, statErr := os.Stat(filepath.Join(cwd, ".game.lock")); !os.IsNotExist(statErr) {
		t.Error("lock file left behind")
	}
}

func TestGenerateRootOverride(t *testing.T) {
	cwd := generateCwd(t)
	root := filepath.Join(cwd, "elsewhere")

	var out bytes.Buffer
	err := Generate(context.Background(), &typeMapRunner{root: root}, fs.NewRealFS(), cwd,
		GenerateOpts{Root: root}, &out, io.Discard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	layout := workspace.NewLayout(root)
	if _, statErr := os.Stat(layout.ManifestPath()); statErr != nil {
		t.Error("manifest not written under the overridden root")
	}
}

func TestGenerateLocked(t *testing.T) {
	cwd := generateCwd(t)
	root := filepath.Join(cwd, "game")

	unlock, err := lock.NewRunLock().Lock(root, "test")
	if err != nil {
		t.Fatalf("seed lock: %v", err)
	}
	defer unlock()

	var out bytes.Buffer
	err = Generate(context.Background(), &typeMapRunner{root: root}, fs.NewRealFS(), cwd,
		GenerateOpts{}, &out, io.Discard)
	if errors.GetCode(err) != errors.ELocked {
		t.Fatalf("expected E_LOCKED, got %v", err)
	}
}

func TestGenerateNoConfig(t *testing.T) {
	cwd := t.TempDir()

	var out bytes.Buffer
	err := Generate(context.Background(), &typeMapRunner{}, fs.NewRealFS(), cwd,
		GenerateOpts{}, &out, io.Discard)
	if errors.GetCode(err) != errors.ENoConfig {
		t.Fatalf("expected E_NO_CONFIG, got %v", err)
	}
}

func TestGenerateWarnsOnMissingFont(t *testing.T) {
	cwd := t.TempDir()
	cfg := generateConfig + "assets:\n  hud_font: fonts/hud.ttf\n"
	if err := os.WriteFile(filepath.Join(cwd, config.ConfigFileName), []byte(cfg), 0644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	root := filepath.Join(cwd, "game")

	var out bytes.Buffer
	err := Generate(context.Background(), &typeMapRunner{root: root}, fs.NewRealFS(), cwd,
		GenerateOpts{}, &out, io.Discard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.String(), "warning: hud_font_missing: fonts/hud.ttf") {
		t.Errorf("expected font warning:\n%s", out.String())
	}
}
