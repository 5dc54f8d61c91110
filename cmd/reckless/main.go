// Command reckless scaffolds a runnable game project from a fixed
// declarative template.
package main

import (
	"os"

	"github.com/HobanGames/Reckless/internal/cli"
	"github.com/HobanGames/Reckless/internal/errors"
)

func main() {
	err := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
