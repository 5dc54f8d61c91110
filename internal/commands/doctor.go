package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HobanGames/Reckless/internal/config"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
)

// LookPathFunc reports whether a binary resolves in PATH. Injectable for tests.
type LookPathFunc func(name string) bool

// Doctor implements the `reckless doctor` command.
// Checks prerequisites and shows resolved paths; output is stable key: value.
func Doctor(_ context.Context, lookPath LookPathFunc, fsys fs.FS, cwd string, stdout, _ io.Writer) error {
	cfg, err := config.Load(fsys, cwd)
	if err != nil {
		return err
	}
	cfg, err = config.Validate(cfg)
	if err != nil {
		return err
	}

	root := cfg.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}

	fmt.Fprintf(stdout, "project: %s\n", cfg.Project)
	fmt.Fprintf(stdout, "workspace: %s\n", root)

	builderOK := lookPath(cfg.Builder.Command)
	if builderOK {
		fmt.Fprintf(stdout, "builder: %s (found)\n", cfg.Builder.Command)
	} else {
		fmt.Fprintf(stdout, "builder: %s (missing)\n", cfg.Builder.Command)
	}

	fontPath := cfg.Assets.HUDFont
	if fontPath != "" && !filepath.IsAbs(fontPath) {
		fontPath = filepath.Join(cwd, fontPath)
	}
	if fontPath == "" {
		fmt.Fprintln(stdout, "hud_font: not configured")
	} else if _, statErr := fsys.Stat(fontPath); os.IsNotExist(statErr) {
		fmt.Fprintf(stdout, "hud_font: %s (missing)\n", cfg.Assets.HUDFont)
	} else {
		fmt.Fprintf(stdout, "hud_font: %s (found)\n", cfg.Assets.HUDFont)
	}

	if !builderOK {
		return errors.New(errors.EBuilderNotInstalled,
			"builder command not found in PATH: "+cfg.Builder.Command)
	}
	return nil
}
