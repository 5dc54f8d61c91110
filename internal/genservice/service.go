// Package genservice implements the real GenerateService backing the
// pipeline: each stage wires the leaf packages against the injected
// filesystem, command runner, and event loop.
package genservice

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/HobanGames/Reckless/internal/artifact"
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/build"
	"github.com/HobanGames/Reckless/internal/event"
	"github.com/HobanGames/Reckless/internal/exec"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/input"
	"github.com/HobanGames/Reckless/internal/layers"
	"github.com/HobanGames/Reckless/internal/manifest"
	"github.com/HobanGames/Reckless/internal/pipeline"
	"github.com/HobanGames/Reckless/internal/prefab"
	"github.com/HobanGames/Reckless/internal/scene"
	"github.com/HobanGames/Reckless/internal/workspace"
)

// Service is the production GenerateService.
type Service struct {
	FS     fs.FS
	Runner exec.CommandRunner
	Stdout io.Writer
	Now    func() time.Time
}

// NewService creates a Service with the given dependencies.
func NewService(fsys fs.FS, runner exec.CommandRunner, stdout io.Writer, now func() time.Time) *Service {
	return &Service{FS: fsys, Runner: runner, Stdout: stdout, Now: now}
}

var _ pipeline.GenerateService = (*Service)(nil)

func (s *Service) store(st *pipeline.State) *asset.Store {
	return asset.NewStore(s.FS, st.Layout)
}

// logStage writes the stable stage-boundary log line.
func (s *Service) logStage(name string) {
	fmt.Fprintf(s.Stdout, "stage: %s\n", name)
}

func (s *Service) ScaffoldWorkspace(_ context.Context, st *pipeline.State) error {
	s.logStage("scaffold_workspace")
	return workspace.Scaffold(s.FS, st.Layout)
}

func (s *Service) EmitArtifacts(_ context.Context, st *pipeline.State) error {
	s.logStage("emit_artifacts")
	result, err := artifact.Emit(s.FS, st.Layout.Scripts())
	if err != nil {
		return err
	}
	st.ArtifactsWritten = result.Written
	return nil
}

func (s *Service) TriggerBuild(ctx context.Context, st *pipeline.State, sub *event.Subscription) error {
	s.logStage("trigger_build")
	barrier := build.NewBarrier(s.Runner, s.FS)
	return barrier.Await(ctx, st.Layout, st.Config.Builder, sub)
}

func (s *Service) LoadTypes(_ context.Context, st *pipeline.State) error {
	s.logStage("load_types")
	reg, err := build.LoadRegistry(s.store(st))
	if err != nil {
		return err
	}
	if !reg.BuildOK() {
		st.Warnings = append(st.Warnings, pipeline.Warning{
			Code:    "build_failed",
			Message: "external build reported errors; artifact-derived types may be unavailable",
		})
	}
	st.Types = reg
	return nil
}

func (s *Service) WriteBindings(_ context.Context, st *pipeline.State) error {
	s.logStage("write_bindings")
	return input.Write(s.store(st), input.DefaultScheme())
}

func (s *Service) AssemblePrefabs(_ context.Context, st *pipeline.State) error {
	s.logStage("assemble_prefabs")
	handles, err := prefab.Assemble(s.store(st), st.Types)
	if err != nil {
		return err
	}
	st.Prefabs = handles
	return nil
}

func (s *Service) AssembleScenes(_ context.Context, st *pipeline.State) error {
	s.logStage("assemble_scenes")
	store := s.store(st)

	table, err := layers.Load(store)
	if err != nil {
		return err
	}

	ctx := &scene.Context{
		Store:   store,
		Types:   st.Types,
		Layers:  table,
		Prefabs: st.Prefabs,
	}

	menu, err := scene.BuildMenu(ctx)
	if err != nil {
		return err
	}

	gameplay, err := scene.BuildGameplay(ctx)
	if err != nil {
		return err
	}
	if gameplay.LayerWarning != "" {
		st.Warnings = append(st.Warnings, pipeline.Warning{
			Code:    "layer_table_full",
			Message: gameplay.LayerWarning,
		})
	}

	st.SceneNames = []string{menu.Name, gameplay.Scene.Name}
	return nil
}

func (s *Service) WriteManifest(_ context.Context, st *pipeline.State) error {
	s.logStage("write_manifest")
	entries := make([]manifest.Entry, 0, len(st.SceneNames))
	for _, name := range st.SceneNames {
		entries = append(entries, manifest.Entry{
			Path:    st.Layout.SceneRelPath(name),
			Enabled: true,
		})
	}
	if err := manifest.Write(s.store(st), st.Config.Project, st.RunID, s.Now(), entries); err != nil {
		return err
	}
	st.Manifest = entries
	return nil
}
