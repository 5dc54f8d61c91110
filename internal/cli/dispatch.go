// Package cli handles command-line parsing and dispatch for reckless.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/HobanGames/Reckless/internal/commands"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/exec"
	"github.com/HobanGames/Reckless/internal/fs"
	"github.com/HobanGames/Reckless/internal/version"
)

const usageText = `reckless - game project bootstrapper

usage: reckless <command> [options]

commands:
  init        create a reckless.yaml project config template
  doctor      check prerequisites and show resolved paths
  generate    run the full generation pipeline

options:
  -h, --help      show this help
  -v, --version   show version

run 'reckless <command> --help' for command-specific help.
`

const initUsageText = `usage: reckless init [options]

create a reckless.yaml project config template in the current directory.

options:
  --force       overwrite existing reckless.yaml
  -h, --help    show this help
`

const doctorUsageText = `usage: reckless doctor

check prerequisites and show resolved paths.
verifies the builder command is installed and the HUD font asset is present.

options:
  -h, --help    show this help
`

const generateUsageText = `usage: reckless generate [options]

scaffold the workspace, emit script artifacts, wait for the external build,
then assemble prefabs, scenes, input bindings, and the project manifest.

options:
  --root <path>   workspace root (default: reckless.yaml root)
  -h, --help      show this help

examples:
  reckless generate
  reckless generate --root ./game
`

// Run parses arguments and dispatches to the appropriate subcommand.
// Returns an error if the command fails; the caller should print the error and exit.
func Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usageText)
		return errors.New(errors.EUsage, "no command specified")
	}

	cmd := args[0]
	cmdArgs := args[1:]

	// Handle global flags
	if cmd == "-h" || cmd == "--help" {
		fmt.Fprint(stdout, usageText)
		return nil
	}
	if cmd == "-v" || cmd == "--version" {
		fmt.Fprintf(stdout, "reckless %s\n", version.Version)
		return nil
	}

	switch cmd {
	case "init":
		return runInit(cmdArgs, stdout, stderr)
	case "doctor":
		return runDoctor(cmdArgs, stdout, stderr)
	case "generate":
		return runGenerate(cmdArgs, stdout, stderr)
	default:
		fmt.Fprint(stdout, usageText)
		return errors.New(errors.EUsage, fmt.Sprintf("unknown command: %s", cmd))
	}
}

func runInit(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("init", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	force := flagSet.Bool("force", false, "overwrite existing reckless.yaml")

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, initUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}

	fsys := fs.NewRealFS()
	ctx := context.Background()

	return commands.Init(ctx, fsys, cwd, commands.InitOpts{Force: *force}, stdout, stderr)
}

func runDoctor(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("doctor", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, doctorUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}

	fsys := fs.NewRealFS()
	ctx := context.Background()

	return commands.Doctor(ctx, exec.LookPath, fsys, cwd, stdout, stderr)
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("generate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	root := flagSet.String("root", "", "workspace root")

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, generateUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}

	cr := exec.NewRealRunner()
	fsys := fs.NewRealFS()
	ctx := context.Background()

	return commands.Generate(ctx, cr, fsys, cwd, commands.GenerateOpts{Root: *root}, stdout, stderr)
}
