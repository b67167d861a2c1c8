// Where: internal/app/scan.go
// What: scan command implementation.
// Why: Turn a project tree into a rendered list of candidate commands.
package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poruru-code/domd/internal/report"
)

type ScanCmd struct {
	Path    string   `arg:"" optional:"" help:"Project directory (default: current directory)"`
	Format  string   `short:"f" help:"Output format (text, json, yaml, markdown)"`
	Parser  []string `short:"p" name:"parser" help:"Only run the named parser (repeatable)"`
	Exclude []string `short:"x" help:"Extra exclude pattern (repeatable)"`
	Output  string   `short:"o" help:"Write the report to a file instead of stdout"`
	Strict  bool     `help:"Exit with status 1 when any diagnostic is reported"`
}

func runScan(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Scan
	ctxInfo, err := resolveCommandContext(cli, cmd.Path, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	formatName := strings.TrimSpace(cmd.Format)
	if formatName == "" {
		formatName = ctxInfo.Config.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return exitWithError(out, err)
	}

	scanner, err := newScanner(ctxInfo, deps, cmd.Parser, cmd.Exclude)
	if err != nil {
		return exitWithError(out, err)
	}
	rep, err := scanner.Scan(deps.Context, ctxInfo.ProjectDir)
	if err != nil {
		return exitWithError(out, fmt.Errorf("scan %s: %w", ctxInfo.ProjectDir, err))
	}

	if target := strings.TrimSpace(cmd.Output); target != "" {
		var buf bytes.Buffer
		if err := report.Render(&buf, rep, format); err != nil {
			return exitWithError(out, err)
		}
		if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
			return exitWithError(out, fmt.Errorf("write report: %w", err))
		}
		fmt.Fprintf(out, "✅ Wrote %d command(s) to %s\n", len(rep.Commands()), target)
	} else if err := report.Render(out, rep, format); err != nil {
		return exitWithError(out, err)
	}

	if cmd.Strict && len(rep.AllDiagnostics()) > 0 {
		return 1
	}
	return 0
}
