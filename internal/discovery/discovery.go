// Where: internal/discovery/discovery.go
// What: Walk a project tree and run every matching parser.
// Why: Turn a directory into one report of candidate commands.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moby/patternmatcher"
	"github.com/poruru-code/domd/internal/domain/command"
	"github.com/poruru-code/domd/internal/logging"
	"github.com/poruru-code/domd/internal/parser"
)

const stepWalk = "walk"

// DefaultExclude lists directories that never hold project build files.
var DefaultExclude = []string{
	"**/.git",
	"**/node_modules",
	"**/.venv",
	"**/venv",
	"**/__pycache__",
	"**/.tox",
}

// Report aggregates parser output for one project root in walk order.
type Report struct {
	ProjectRoot string              `json:"project_root" yaml:"project_root"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Files       []parser.FileResult `json:"files" yaml:"files"`
	Diagnostics []parser.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Commands flattens all file results into one command list.
func (r Report) Commands() []command.Command {
	var out []command.Command
	for _, file := range r.Files {
		out = append(out, file.Commands...)
	}
	return out
}

// AllDiagnostics returns walk diagnostics followed by parser diagnostics.
func (r Report) AllDiagnostics() []parser.Diagnostic {
	out := append([]parser.Diagnostic{}, r.Diagnostics...)
	for _, file := range r.Files {
		out = append(out, file.Diagnostics...)
	}
	return out
}

// Scanner drives a parser registry over a project tree.
type Scanner struct {
	Registry *parser.Registry
	Logger   *log.Logger
	// Exclude holds extra dockerignore-style patterns relative to the root.
	Exclude []string
	Now     func() time.Time
}

// Scan walks root and returns the aggregated report. Only an invalid root or
// cancellation is returned as an error; everything else becomes a diagnostic.
func (s Scanner) Scan(ctx context.Context, root string) (Report, error) {
	if s.Registry == nil {
		return Report{}, errors.New("parser registry is required")
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Report{}, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Report{}, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return Report{}, fmt.Errorf("project root %s is not a directory", absRoot)
	}

	report := Report{ProjectRoot: absRoot, GeneratedAt: now()}

	patterns, err := s.excludePatterns(absRoot)
	if err != nil {
		report.Diagnostics = append(report.Diagnostics, walkDiagnostic(absRoot, err))
		logger.Warn("ignore file skipped", "root", absRoot, "err", err)
	}
	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return Report{}, fmt.Errorf("exclude patterns: %w", err)
	}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, walkDiagnostic(path, err))
			logger.Warn("walk error", "path", path, "err", err)
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		excluded, err := matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, walkDiagnostic(path, err))
			return nil
		}
		if excluded {
			if d.IsDir() {
				logger.Debug("skipping excluded directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		for _, result := range s.Registry.ParseFile(path, absRoot) {
			logger.Debug("parsed file", "path", rel, "parser", result.Parser, "commands", len(result.Commands))
			report.Files = append(report.Files, result)
		}
		return nil
	})
	if walkErr != nil {
		return Report{}, walkErr
	}
	return report, nil
}

func walkDiagnostic(path string, err error) parser.Diagnostic {
	return parser.Diagnostic{
		Severity: parser.SeverityWarning,
		Step:     stepWalk,
		Path:     path,
		Message:  err.Error(),
		Cause:    err,
	}
}
