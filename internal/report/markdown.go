// Where: internal/report/markdown.go
// What: Markdown checklist rendering via an embedded template.
// Why: Produce a checklist that can be pasted into docs or issues.
package report

import (
	"embed"
	"fmt"
	"io"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru-code/domd/internal/discovery"
	"github.com/poruru-code/domd/internal/parser"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const markdownTemplate = "report.md.tmpl"

var (
	markdownOnce sync.Once
	markdownTmpl *template.Template
	markdownErr  error
)

type markdownFile struct {
	Path        string
	Parser      string
	Commands    []markdownCommand
	Diagnostics []parser.Diagnostic
}

type markdownCommand struct {
	Command     string
	Description string
	Type        string
}

type markdownData struct {
	ProjectRoot  string
	GeneratedAt  string
	CommandCount int
	Files        []markdownFile
	Diagnostics  []parser.Diagnostic
}

func loadMarkdownTemplate() (*template.Template, error) {
	markdownOnce.Do(func() {
		markdownTmpl, markdownErr = template.New(markdownTemplate).
			Funcs(sprig.TxtFuncMap()).
			ParseFS(templateFS, "templates/"+markdownTemplate)
	})
	return markdownTmpl, markdownErr
}

func renderMarkdown(w io.Writer, rep discovery.Report) error {
	tmpl, err := loadMarkdownTemplate()
	if err != nil {
		return fmt.Errorf("load markdown template: %w", err)
	}
	data := markdownData{
		ProjectRoot:  rep.ProjectRoot,
		CommandCount: len(rep.Commands()),
		Diagnostics:  rep.Diagnostics,
	}
	if !rep.GeneratedAt.IsZero() {
		data.GeneratedAt = rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")
	}
	for _, file := range rep.Files {
		entry := markdownFile{
			Path:        relative(rep.ProjectRoot, file.Path),
			Parser:      file.Parser,
			Diagnostics: file.Diagnostics,
		}
		for _, cmd := range file.Commands {
			entry.Commands = append(entry.Commands, markdownCommand{
				Command:     cmd.Command,
				Description: cmd.Description,
				Type:        cmd.Type,
			})
		}
		data.Files = append(data.Files, entry)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render markdown report: %w", err)
	}
	return nil
}
