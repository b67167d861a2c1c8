// Where: internal/parser/galaxy/galaxy.go
// What: Parser for Ansible Galaxy requirements, role meta and collection manifests.
// Why: Propose ansible-galaxy install/build commands for Ansible projects.
package galaxy

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/domain/command"
	cmdtemplate "github.com/poruru-code/domd/internal/domain/template"
	"github.com/poruru-code/domd/internal/parser"
	"github.com/poruru-code/domd/internal/schema"
	"gopkg.in/yaml.v3"
)

// Name identifies the parser in config and CLI flags.
const Name = "ansible_galaxy"

// File classifications stored in command metadata.
const (
	FileTypeRequirements       = "requirements"
	FileTypeRoleDependencies   = "role_dependencies"
	FileTypeCollectionMetadata = "collection_metadata"
)

const (
	stepRequirements = "requirements"
	stepMeta         = "role_dependencies"
	stepCollection   = "collection_metadata"
	stepSchema       = "schema"

	defaultNamespace = "unknown"
	defaultName      = "unknown"
	defaultVersion   = "latest"
)

var patterns = []string{
	"**/requirements.yml",
	"**/requirements.yaml",
	"**/meta/requirements.yml",
	"**/meta/main.yml",
	"**/galaxy.yml",
}

// Factory recognises Galaxy files and binds parsers to them.
type Factory struct {
	Logger *log.Logger
}

// NewFactory returns a Factory logging through logger.
func NewFactory(logger *log.Logger) Factory {
	return Factory{Logger: logger}
}

func (Factory) Name() string { return Name }

func (Factory) Patterns() []string {
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out
}

// CanParse accepts requirements.yml/.yaml anywhere, requirements.yml or
// main.yml under a "meta" segment, and galaxy.yml anywhere.
func (Factory) CanParse(path string) bool {
	if !parser.IsCandidateFile(path) {
		return false
	}
	name := filepath.Base(path)
	switch {
	case isRequirementsName(name):
		return true
	case (name == "requirements.yml" || name == "main.yml") && parser.HasSegment(path, "meta"):
		return true
	case name == "galaxy.yml":
		return true
	}
	return false
}

func (f Factory) New(filePath, projectRoot string) parser.Parser {
	return &Parser{Base: parser.NewBase(filePath, projectRoot, f.Logger)}
}

// Parser handles one Galaxy file.
type Parser struct {
	parser.Base
}

// Parse reads the bound file. A missing file yields an empty result.
func (p *Parser) Parse() parser.Result {
	rec := p.Recorder()
	if !parser.Exists(p.FilePath) {
		return rec.Result()
	}
	content, ok := parser.Resolve(rec, parser.StepRead, parser.Attempt(p.ReadContent))
	if !ok {
		return rec.Result()
	}
	p.parse(rec, content)
	return rec.Result()
}

// ParseContent parses caller-supplied content. The bound file must still
// exist.
func (p *Parser) ParseContent(content string) parser.Result {
	rec := p.Recorder()
	if !parser.Exists(p.FilePath) {
		return rec.Result()
	}
	p.parse(rec, content)
	return rec.Result()
}

func (p *Parser) parse(rec *parser.Recorder, content string) {
	name := filepath.Base(p.FilePath)
	rel := p.RelPath()
	p.Logger.Debug("parsing galaxy file", "file", p.FilePath)

	switch {
	case isRequirementsName(name):
		if rec.Step(stepRequirements, func() error { return p.parseRequirements(rec, content, rel) }) {
			p.validate(rec, schema.Requirements, content)
		}
	case name == "main.yml" && parser.HasSegment(rel, "meta"):
		rec.Step(stepMeta, func() error { return p.parseMeta(rec, content, rel) })
	case name == "galaxy.yml":
		if rec.Step(stepCollection, func() error { return p.parseCollection(rec, content, rel) }) {
			p.validate(rec, schema.GalaxyManifest, content)
		}
	}
}

func (p *Parser) parseRequirements(rec *parser.Recorder, content, rel string) error {
	root, err := loadDocument(content)
	if err != nil {
		return fmt.Errorf("parse requirements file: %w", err)
	}
	requirements, err := requirementList(root)
	if err != nil {
		return err
	}
	if len(requirements) == 0 {
		return nil
	}

	text, description, err := cmdtemplate.RenderPair("galaxy.install", cmdtemplate.Data{"File": rel})
	if err != nil {
		return err
	}
	rec.Add(command.Command{
		Command:     text,
		Description: description,
		Type:        command.TypeAnsibleGalaxy,
		Source:      p.FilePath,
		Metadata: command.Metadata{
			"file_type":    FileTypeRequirements,
			"requirements": requirements,
			"file":         rel,
		},
	})
	return nil
}

// requirementList accepts a top-level sequence, or a mapping whose "roles"
// (checked first) or "collections" key holds the list.
func requirementList(root *yaml.Node) ([]any, error) {
	if root == nil {
		return nil, nil
	}
	switch root.Kind {
	case yaml.SequenceNode:
		return decodeList(root)
	case yaml.MappingNode:
		if roles, ok := lookup(root, "roles"); ok {
			return decodeList(roles)
		}
		if collections, ok := lookup(root, "collections"); ok {
			return decodeList(collections)
		}
	}
	return nil, nil
}

func (p *Parser) parseMeta(rec *parser.Recorder, content, rel string) error {
	root, err := loadDocument(content)
	if err != nil {
		return fmt.Errorf("parse meta file: %w", err)
	}
	depsNode, ok := lookup(root, "dependencies")
	if !ok {
		return nil
	}
	deps, err := decodeList(depsNode)
	if err != nil {
		return err
	}
	if len(deps) == 0 {
		return nil
	}

	text, description, err := cmdtemplate.RenderPair("galaxy.role_deps", cmdtemplate.Data{
		"Dir":  filepath.Dir(rel),
		"File": rel,
	})
	if err != nil {
		return err
	}
	rec.Add(command.Command{
		Command:     text,
		Description: description,
		Type:        command.TypeAnsibleGalaxy,
		Source:      p.FilePath,
		Metadata: command.Metadata{
			"file_type":    FileTypeRoleDependencies,
			"dependencies": deps,
			"file":         rel,
		},
	})
	return nil
}

func (p *Parser) parseCollection(rec *parser.Recorder, content, rel string) error {
	root, err := loadDocument(content)
	if err != nil {
		return fmt.Errorf("parse galaxy.yml: %w", err)
	}
	if root == nil {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("galaxy.yml: expected a mapping, got %s", kindName(root))
	}
	if len(root.Content) == 0 {
		return nil
	}

	fields := map[string]string{}
	for _, field := range []struct{ key, fallback string }{
		{"namespace", defaultNamespace},
		{"name", defaultName},
		{"version", defaultVersion},
	} {
		node, _ := lookup(root, field.key)
		value, err := scalarText(node, field.fallback)
		if err != nil {
			return fmt.Errorf("galaxy.yml %s: %w", field.key, err)
		}
		fields[field.key] = value
	}

	text, description, err := cmdtemplate.RenderPair("galaxy.collection_build", cmdtemplate.Data{
		"Dir":       filepath.Dir(rel),
		"Namespace": fields["namespace"],
		"Name":      fields["name"],
		"Version":   fields["version"],
	})
	if err != nil {
		return err
	}
	rec.Add(command.Command{
		Command:     text,
		Description: description,
		Type:        command.TypeAnsibleGalaxy,
		Source:      p.FilePath,
		Metadata: command.Metadata{
			"file_type": FileTypeCollectionMetadata,
			"namespace": fields["namespace"],
			"name":      fields["name"],
			"version":   fields["version"],
			"file":      rel,
		},
	})
	return nil
}

// validate reports schema violations as warnings; it never drops commands.
func (p *Parser) validate(rec *parser.Recorder, schemaName, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	violations, err := schema.ValidateYAML(schemaName, []byte(content))
	if err != nil {
		rec.Warn(stepSchema, err)
		return
	}
	for _, violation := range violations {
		rec.Warn(stepSchema, errors.New(violation.String()))
	}
}

func isRequirementsName(name string) bool {
	return name == "requirements.yml" || name == "requirements.yaml"
}
