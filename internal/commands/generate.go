// Package commands implements reckless CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HobanGames/Reckless/internal/config"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/event"
	"github.com/HobanGames/Reckless/internal/exec"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/genservice"
	"github.com/HobanGames/Reckless/internal/lock"
	"github.com/HobanGames/Reckless/internal/pipeline"
)

// GenerateOpts holds options for the generate command.
type GenerateOpts struct {
	Root string // workspace root override (default: config root)
}

// Generate implements the `reckless generate` command: the full generation
// pipeline, driven by an event loop that parks while the external build runs.
func Generate(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cwd string, opts GenerateOpts, stdout, stderr io.Writer) error {
	cfg, err := config.Load(fsys, cwd)
	if err != nil {
		return err
	}
	cfg, err = config.Validate(cfg)
	if err != nil {
		return err
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(cwd, cfg.Root)
	}

	// The workspace, layer table, and manifest have no concurrent-writer
	// protection; one lock guards the whole run.
	runLock := lock.NewRunLock()
	unlock, err := runLock.Lock(cfg.Root, "generate")
	if err != nil {
		return errors.Wrap(errors.ELocked, "another generation run is in progress", err)
	}
	defer unlock()

	// The HUD font is an external prerequisite, referenced but not generated.
	fontPath := cfg.Assets.HUDFont
	if fontPath != "" && !filepath.IsAbs(fontPath) {
		fontPath = filepath.Join(cwd, fontPath)
	}
	if fontPath != "" {
		if _, statErr := fsys.Stat(fontPath); os.IsNotExist(statErr) {
			fmt.Fprintf(stdout, "warning: hud_font_missing: %s\n", cfg.Assets.HUDFont)
		}
	}

	loop := event.NewLoop()
	svc := genservice.NewService(fsys, cr, stdout, time.Now)
	p := pipeline.New(svc, loop)

	var (
		finalState *pipeline.State
		finalErr   error
	)
	p.Start(ctx, cfg, func(st *pipeline.State, err error) {
		finalState = st
		finalErr = err
		loop.Stop()
	})

	if err := loop.Run(ctx); err != nil {
		return errors.Wrap(errors.EInternal, "event loop interrupted", err)
	}

	if finalState != nil {
		writeGenerateSummary(stdout, finalState)
	}
	return finalErr
}

// writeGenerateSummary writes the stable key: value run summary, including
// degraded (warned) steps.
func writeGenerateSummary(w io.Writer, st *pipeline.State) {
	fmt.Fprintf(w, "run_id: %s\n", st.RunID)
	fmt.Fprintf(w, "workspace: %s\n", st.Layout.Root)
	fmt.Fprintf(w, "artifacts: %d\n", len(st.ArtifactsWritten))
	if len(st.SceneNames) > 0 {
		fmt.Fprintf(w, "scenes: %s\n", strings.Join(st.SceneNames, ", "))
	}
	fmt.Fprintf(w, "manifest_entries: %d\n", len(st.Manifest))

	if len(st.Warnings) == 0 {
		fmt.Fprintln(w, "degraded: none")
		return
	}
	for _, warn := range st.Warnings {
		fmt.Fprintf(w, "degraded: %s (%s)\n", warn.Code, warn.Message)
	}
}
