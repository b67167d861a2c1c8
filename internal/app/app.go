// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/meta"
	"github.com/poruru-code/domd/internal/parser"
	"github.com/poruru-code/domd/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap any of them; zero values fall back to real implementations.
type Dependencies struct {
	ProjectDir string
	Out        io.Writer
	ErrOut     io.Writer
	Context    context.Context
	Now        func() time.Time
	Registry   func(*log.Logger) *parser.Registry
	Doctor     DoctorDeps
	Publish    PublishDeps
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	LogLevel string     `name:"log-level" help:"Log level (debug, info, warn, error)"`
	Config   string     `name:"config" help:"Path to domd.yaml (default: <project>/domd.yaml)"`
	Scan     ScanCmd    `cmd:"" help:"Scan a project and list candidate commands"`
	Parsers  ParsersCmd `cmd:"" help:"List available parsers"`
	Doctor   DoctorCmd  `cmd:"" help:"Check docker and ansible-galaxy availability"`
	Publish  PublishCmd `cmd:"" help:"Scan a project and upload the report to S3"`
	Init     InitCmd    `cmd:"" help:"Write a default domd.yaml"`
	Version  VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
		deps.Out = out
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	// No arguments behaves like scanning the current directory.
	if len(args) == 0 {
		args = []string{"scan"}
	}

	cli := CLI{}
	cliParser, err := kong.New(&cli,
		kong.Name(meta.Slug),
		kong.Description("Discover the docker and ansible-galaxy commands a project needs."),
		kong.Writers(out, out),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := cliParser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	command := commandName(ctx.Command())
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"scan":    runScan,
		"parsers": runParsers,
		"doctor":  runDoctor,
		"publish": runPublish,
		"init":    runInit,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// commandName reduces a kong command path such as "scan <path>" to "scan".
func commandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", meta.Slug, version.GetVersion())
	return 0
}
