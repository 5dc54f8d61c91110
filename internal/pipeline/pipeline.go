// Package pipeline provides the generation pipeline orchestrator.
// The pipeline executes stages in a fixed order, short-circuits on first
// error, and preserves RecklessError codes. The compile barrier splits the
// chain: stages after it run as a continuation fired when the external build
// signals completion.
package pipeline

import (
	"context"
	"time"

	"github.com/HobanGames/Reckless/internal/build"
	"github.com/HobanGames/Reckless/internal/config"
	"github.com/HobanGames/Reckless/internal/core"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/event"
	"github.com/HobanGames/Reckless/internal/manifest"
	"github.com/HobanGames/Reckless/internal/prefab"
	"github.com/HobanGames/Reckless/internal/workspace"
)

// Warning represents a non-fatal degradation emitted during a run.
type Warning struct {
	// Code is a stable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string
}

// State accumulates state during pipeline execution.
// Fields are populated by stages as they execute.
type State struct {
	// Set at start
	RunID  string
	Config config.Config
	Layout workspace.Layout

	// Populated by EmitArtifacts
	ArtifactsWritten []string

	// Delivered by the barrier continuation
	Build event.BuildResult

	// Populated by LoadTypes
	Types *build.Registry

	// Populated by AssemblePrefabs
	Prefabs prefab.Handles

	// Populated by AssembleScenes / WriteManifest
	SceneNames []string
	Manifest   []manifest.Entry

	// Accumulated warnings (non-fatal)
	Warnings []Warning
}

// GenerateService defines the stage implementations for the generation
// pipeline. Each method corresponds to one stage, executed in order.
// Implementations are injected to allow testing without a real fs/builder.
type GenerateService interface {
	// ScaffoldWorkspace ensures the workspace root and fixed subpaths exist
	ScaffoldWorkspace(ctx context.Context, st *State) error

	// EmitArtifacts writes the fixed script artifact set
	EmitArtifacts(ctx context.Context, st *State) error

	// TriggerBuild arms the compile barrier: it must launch the external
	// build and arrange for sub to fire when the build signals completion.
	// It must not block.
	TriggerBuild(ctx context.Context, st *State, sub *event.Subscription) error

	// LoadTypes loads the type registry produced by the build
	LoadTypes(ctx context.Context, st *State) error

	// WriteBindings persists the input binding scheme
	WriteBindings(ctx context.Context, st *State) error

	// AssemblePrefabs builds and persists the object templates
	AssemblePrefabs(ctx context.Context, st *State) error

	// AssembleScenes builds and persists the menu and gameplay scenes
	AssembleScenes(ctx context.Context, st *State) error

	// WriteManifest overwrites the project manifest with the scene list
	WriteManifest(ctx context.Context, st *State) error
}

// DoneFunc receives the final outcome of a pipeline run, on the loop.
type DoneFunc func(st *State, err error)

// Pipeline orchestrates the generation stages on the event loop.
type Pipeline struct {
	svc     GenerateService
	loop    *event.Loop
	nowFunc func() time.Time

	// pending is the armed barrier continuation, if any. Touched only on
	// the loop goroutine.
	pending *event.Subscription
}

// New creates a pipeline with the given service implementation and loop.
func New(svc GenerateService, loop *event.Loop) *Pipeline {
	return &Pipeline{
		svc:     svc,
		loop:    loop,
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the time source for testing.
func (p *Pipeline) SetNowFunc(fn func() time.Time) {
	p.nowFunc = fn
}

// Start begins a run. Stages execute on the event loop in fixed order:
//
//  1. ScaffoldWorkspace
//  2. EmitArtifacts
//  3. TriggerBuild (suspends until the barrier continuation fires)
//  4. LoadTypes
//  5. WriteBindings
//  6. AssemblePrefabs
//  7. AssembleScenes
//  8. WriteManifest
//
// Behavior:
//   - Generates a run id immediately and stores it in state
//   - Short-circuits on first stage error
//   - If error is *RecklessError, preserves code/message/details exactly;
//     otherwise wraps into E_INTERNAL with the stage name in details
//   - A Start while a barrier continuation is pending retires the pending
//     continuation first (last-writer-wins); the superseded run's done
//     callback is never invoked
//   - done is invoked exactly once per completed (or failed) run, on the loop
func (p *Pipeline) Start(ctx context.Context, cfg config.Config, done DoneFunc) {
	p.loop.Post(func() {
		st := &State{
			Config: cfg,
			Layout: workspace.NewLayout(cfg.Root),
		}

		runID, err := core.NewRunID(p.nowFunc())
		if err != nil {
			// Extremely rare: crypto/rand failure
			done(st, errors.Wrap(errors.EInternal, "failed to generate run id", err))
			return
		}
		st.RunID = runID

		if err := p.svc.ScaffoldWorkspace(ctx, st); err != nil {
			done(st, wrapStageError(err, StageScaffoldWorkspace))
			return
		}
		if err := p.svc.EmitArtifacts(ctx, st); err != nil {
			done(st, wrapStageError(err, StageEmitArtifacts))
			return
		}

		// Replace any continuation left pending by a prior run.
		if p.pending != nil {
			p.pending.Cancel()
		}
		sub := event.NewSubscription(p.loop, func(res event.BuildResult) {
			p.pending = nil
			st.Build = res
			if res.Err != nil {
				done(st, wrapStageError(res.Err, StageTriggerBuild))
				return
			}
			p.resume(ctx, st, done)
		})
		p.pending = sub

		if err := p.svc.TriggerBuild(ctx, st, sub); err != nil {
			sub.Cancel()
			p.pending = nil
			done(st, wrapStageError(err, StageTriggerBuild))
			return
		}
		// Control returns to the loop here; the run resumes when sub fires.
	})
}

// resume executes the post-barrier stages.
func (p *Pipeline) resume(ctx context.Context, st *State, done DoneFunc) {
	if err := p.svc.LoadTypes(ctx, st); err != nil {
		done(st, wrapStageError(err, StageLoadTypes))
		return
	}
	if err := p.svc.WriteBindings(ctx, st); err != nil {
		done(st, wrapStageError(err, StageWriteBindings))
		return
	}
	if err := p.svc.AssemblePrefabs(ctx, st); err != nil {
		done(st, wrapStageError(err, StageAssemblePrefabs))
		return
	}
	if err := p.svc.AssembleScenes(ctx, st); err != nil {
		done(st, wrapStageError(err, StageAssembleScenes))
		return
	}
	if err := p.svc.WriteManifest(ctx, st); err != nil {
		done(st, wrapStageError(err, StageWriteManifest))
		return
	}
	done(st, nil)
}

// wrapStageError ensures the error is a *RecklessError.
// If already *RecklessError, returns it unchanged.
// Otherwise wraps it with E_INTERNAL and the stage name in details.
func wrapStageError(err error, stageName string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsRecklessError(err); ok {
		return err
	}
	return errors.WrapWithDetails(
		errors.EInternal,
		"internal error",
		err,
		map[string]string{"stage": stageName},
	)
}

// Stage name constants.
const (
	StageScaffoldWorkspace = "ScaffoldWorkspace"
	StageEmitArtifacts     = "EmitArtifacts"
	StageTriggerBuild      = "TriggerBuild"
	StageLoadTypes         = "LoadTypes"
	StageWriteBindings     = "WriteBindings"
	StageAssemblePrefabs   = "AssemblePrefabs"
	StageAssembleScenes    = "AssembleScenes"
	StageWriteManifest     = "WriteManifest"
)
