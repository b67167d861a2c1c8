// Where: internal/report/report.go
// What: Render scan reports as text, JSON, YAML or Markdown.
// Why: One entry point for every output format the CLI exposes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/poruru-code/domd/internal/discovery"
	"github.com/poruru-code/domd/internal/parser"
	"github.com/poruru-code/domd/internal/ui"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// Formats lists supported format names.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		out = append(out, string(f))
	}
	return out
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return FormatText, nil
	}
	if normalized == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range formats {
		if string(f) == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (supported: %s)", value, strings.Join(Formats(), ", "))
}

// Render writes rep to w in the requested format.
func Render(w io.Writer, rep discovery.Report, format Format) error {
	switch format {
	case FormatText, "":
		renderText(ui.New(w), rep)
		return nil
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatYAML:
		return renderYAML(w, rep)
	case FormatMarkdown:
		return renderMarkdown(w, rep)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Marshal returns the JSON encoding used for published reports.
func Marshal(rep discovery.Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

func renderJSON(w io.Writer, rep discovery.Report) error {
	payload, err := Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func renderYAML(w io.Writer, rep discovery.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return encoder.Close()
}

func renderText(console *ui.Console, rep discovery.Report) {
	console.Header("📦", "Project: "+rep.ProjectRoot)
	console.Item("Files", len(rep.Files))
	console.Item("Commands", len(rep.Commands()))

	for _, file := range rep.Files {
		console.Blank()
		console.Header("📄", fmt.Sprintf("%s (%s)", relative(rep.ProjectRoot, file.Path), file.Parser))
		if len(file.Commands) == 0 {
			console.ItemPlain("no commands")
		}
		for _, cmd := range file.Commands {
			console.Command(cmd.Command, cmd.Description)
		}
		for _, diag := range file.Diagnostics {
			console.ItemPlain(diagnosticLine(diag))
		}
	}

	if len(rep.Diagnostics) > 0 {
		console.Blank()
		for _, diag := range rep.Diagnostics {
			console.Warn(fmt.Sprintf("%s: %s", relative(rep.ProjectRoot, diag.Path), diag.Message))
		}
	}

	console.Blank()
	diagnostics := rep.AllDiagnostics()
	summary := fmt.Sprintf("%d command(s) from %d file(s)", len(rep.Commands()), len(rep.Files))
	if len(diagnostics) == 0 {
		console.Success(summary)
		return
	}
	console.Warn(fmt.Sprintf("%s, %d diagnostic(s)", summary, len(diagnostics)))
}

func diagnosticLine(diag parser.Diagnostic) string {
	marker := "⚠️ "
	if diag.Severity == parser.SeverityError {
		marker = "✗"
	}
	return fmt.Sprintf("%s %s: %s", marker, diag.Step, diag.Message)
}

func relative(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
