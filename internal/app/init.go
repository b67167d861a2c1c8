// Where: internal/app/init.go
// What: init command implementation.
// Why: Give projects a starting domd.yaml to edit.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poruru-code/domd/internal/config"
	"github.com/poruru-code/domd/internal/discovery"
	"github.com/poruru-code/domd/internal/ui"
)

type InitCmd struct {
	Path  string `arg:"" optional:"" help:"Project directory (default: current directory)"`
	Force bool   `help:"Overwrite an existing domd.yaml"`
}

func runInit(cli CLI, deps Dependencies, out io.Writer) int {
	projectDir, err := resolveProjectDir(cli.Init.Path, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	path := config.Path(projectDir, cli.Config)
	if _, err := os.Stat(path); err == nil && !cli.Init.Force {
		return exitWithError(out, fmt.Errorf("%s already exists (use --force to overwrite)", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return exitWithError(out, err)
	}

	cfg := config.DefaultConfig()
	cfg.Exclude = append([]string{}, discovery.DefaultExclude...)
	if err := config.Save(path, cfg); err != nil {
		return exitWithError(out, err)
	}
	ui.New(out).Success("Wrote " + path)
	return 0
}
