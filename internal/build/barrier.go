// Package build implements the compile barrier: it triggers the external
// builder over the emitted scripts and fires a one-shot continuation when
// the builder signals completion.
//
// The completion signal is the builder writing Scripts/.build/types.yaml.
// The builder always writes it, success or failure; the barrier never
// inspects build success. A builder that cannot be launched, or one that
// never writes the type map before the timeout, surfaces through the
// continuation's BuildResult.Err instead.
package build

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/HobanGames/Reckless/internal/config"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/event"
	"github.com/HobanGames/Reckless/internal/exec"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/workspace"
)

// Barrier triggers the external build and delivers its completion signal.
type Barrier struct {
	Runner exec.CommandRunner
	FS     fs.FS
}

// NewBarrier creates a Barrier using the given command runner and filesystem.
func NewBarrier(runner exec.CommandRunner, fsys fs.FS) *Barrier {
	return &Barrier{Runner: runner, FS: fsys}
}

// Await arms the barrier: it watches for the type map write, then launches
// the builder asynchronously and returns immediately. sub fires exactly once
// on the event loop when the type map is written, the builder fails to
// launch, or the timeout elapses - whichever happens first.
//
// Returns an error only for arming failures (watch setup, directory
// creation); those are fatal before anything external was started.
func (b *Barrier) Await(ctx context.Context, layout workspace.Layout, builder config.Builder, sub *event.Subscription) error {
	// The watch target directory must exist before the watch starts.
	if err := b.FS.MkdirAll(layout.BuildDir(), 0755); err != nil {
		return errors.Wrap(errors.EStorage, "failed to create build output directory", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.EBuilderFailed, "failed to start build watch", err)
	}
	if err := watcher.Add(layout.BuildDir()); err != nil {
		watcher.Close()
		return errors.Wrap(errors.EBuilderFailed, "failed to watch build output directory", err)
	}

	timeout := time.Duration(builder.TimeoutSeconds) * time.Second
	typeMap := filepath.Base(layout.TypeMapPath())

	go func() {
		defer watcher.Close()
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				sub.Fire(event.BuildResult{Signal: "canceled", Err: ctx.Err()})
				return
			case <-timer.C:
				sub.Fire(event.BuildResult{
					Signal: "timeout",
					Err:    errors.New(errors.EBuildTimeout, "builder did not signal completion within "+timeout.String()),
				})
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != typeMap {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				sub.Fire(event.BuildResult{Finished: true, Signal: "type map written"})
				return
			case <-watcher.Errors:
				// Watch errors are non-fatal; the timeout still bounds the wait.
			}
		}
	}()

	go func() {
		_, err := b.Runner.Run(ctx, builder.Command, []string{layout.Scripts()}, exec.RunOpts{Dir: layout.Root})
		if err != nil {
			// Launch failure: the builder never ran, so the type map will
			// never appear. A non-zero exit is NOT reported here - a failed
			// build still writes the type map.
			sub.Fire(event.BuildResult{
				Signal: "launch failed",
				Err:    errors.Wrap(errors.EBuilderFailed, "failed to launch builder "+builder.Command, err),
			})
		}
	}()

	return nil
}
