// Where: internal/app/command_context.go
// What: Shared context resolution for CLI commands.
// Why: Resolve project dir, config and logger once per command.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/config"
	"github.com/poruru-code/domd/internal/discovery"
	"github.com/poruru-code/domd/internal/logging"
	"github.com/poruru-code/domd/internal/parser"
	"github.com/poruru-code/domd/internal/parser/builtin"
)

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintf(out, "✗ %v\n", err)
	return 1
}

type commandContext struct {
	ProjectDir string
	Config     config.Config
	Logger     *log.Logger
}

// resolveProjectDir picks the positional path, then deps.ProjectDir, then ".".
func resolveProjectDir(path string, deps Dependencies) (string, error) {
	dir := strings.TrimSpace(path)
	if dir == "" {
		dir = strings.TrimSpace(deps.ProjectDir)
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path is not a directory: %s", abs)
	}
	return abs, nil
}

func resolveCommandContext(cli CLI, path string, deps Dependencies) (commandContext, error) {
	projectDir, err := resolveProjectDir(path, deps)
	if err != nil {
		return commandContext{}, err
	}
	cfg, err := config.Resolve(projectDir, cli.Config)
	if err != nil {
		return commandContext{}, err
	}
	level := strings.TrimSpace(cli.LogLevel)
	if level == "" {
		level = cfg.LogLevel
	}
	logger, err := logging.New(deps.ErrOut, level)
	if err != nil {
		return commandContext{}, err
	}
	return commandContext{ProjectDir: projectDir, Config: cfg, Logger: logger}, nil
}

// newRegistry builds the parser registry, restricted to flagParsers when set
// or to the configured parsers otherwise.
func newRegistry(ctxInfo commandContext, deps Dependencies, flagParsers []string) (*parser.Registry, error) {
	build := deps.Registry
	if build == nil {
		build = builtin.Registry
	}
	names := flagParsers
	if len(names) == 0 {
		names = ctxInfo.Config.Parsers
	}
	return build(ctxInfo.Logger).Filter(names)
}

func newScanner(ctxInfo commandContext, deps Dependencies, flagParsers, flagExclude []string) (discovery.Scanner, error) {
	registry, err := newRegistry(ctxInfo, deps, flagParsers)
	if err != nil {
		return discovery.Scanner{}, err
	}
	exclude := append([]string{}, ctxInfo.Config.Exclude...)
	exclude = append(exclude, flagExclude...)
	return discovery.Scanner{
		Registry: registry,
		Logger:   ctxInfo.Logger,
		Exclude:  exclude,
		Now:      deps.Now,
	}, nil
}
