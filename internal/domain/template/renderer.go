// Where: internal/domain/template/renderer.go
// What: Render shell command text and descriptions from named templates.
// Why: Keep every command string parsers emit in one reviewed template set.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	rootTemplate      = "commands.tmpl"
	descriptionSuffix = ".description"
)

// Data is the value set a command template is executed against.
type Data map[string]any

var (
	loadOnce  sync.Once
	loadErr   error
	templates *template.Template
)

// Render executes the named command template.
// Unknown names and missing keys are errors.
func Render(name string, data Data) (string, error) {
	tmpl, err := load()
	if err != nil {
		return "", err
	}
	if tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("unknown command template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, map[string]any(data)); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderPair renders a command template together with its description.
func RenderPair(name string, data Data) (string, string, error) {
	text, err := Render(name, data)
	if err != nil {
		return "", "", err
	}
	description, err := Render(name+descriptionSuffix, data)
	if err != nil {
		return "", "", err
	}
	return text, description, nil
}

// Names lists the command templates (descriptions excluded).
func Names() []string {
	tmpl, err := load()
	if err != nil {
		return nil
	}
	var names []string
	for _, t := range tmpl.Templates() {
		name := t.Name()
		if name == rootTemplate || strings.HasSuffix(name, descriptionSuffix) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func load() (*template.Template, error) {
	loadOnce.Do(func() {
		templates, loadErr = template.New(rootTemplate).
			Option("missingkey=error").
			Funcs(sprig.TxtFuncMap()).
			ParseFS(templateFS, "templates/"+rootTemplate)
	})
	return templates, loadErr
}
