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

// InitOpts holds options for the init command.
type InitOpts struct {
	Force bool
}

// Init implements the `reckless init` command.
// Creates a reckless.yaml template in the current directory.
func Init(_ context.Context, fsys fs.FS, cwd string, opts InitOpts, stdout, _ io.Writer) error {
	path := filepath.Join(cwd, config.ConfigFileName)

	_, err := fsys.Stat(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.EStorage, "failed to check reckless.yaml", err)
	}

	if exists && !opts.Force {
		return errors.New(errors.EConfigExists, "reckless.yaml already exists; use --force to overwrite")
	}

	state := "created"
	if exists {
		state = "overwritten"
	}

	if err := fs.WriteFileAtomic(fsys, path, []byte(config.Template), 0644); err != nil {
		return errors.Wrap(errors.EStorage, "failed to write reckless.yaml", err)
	}

	fmt.Fprintf(stdout, "config: %s\n", state)
	return nil
}
