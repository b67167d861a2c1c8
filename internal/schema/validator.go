// Where: internal/schema/validator.go
// What: JSON-schema checks for Ansible Galaxy files.
// Why: Flag suspicious requirement lists and collection manifests without
// blocking command generation.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

// Embedded schema names.
const (
	GalaxyManifest = "galaxy.schema.json"
	Requirements   = "requirements.schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaErr  error
	compiled   map[string]*jsonschema.Schema
)

// Violation is one schema failure located in the validated document.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	if v.Location == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Location, v.Message)
}

// ValidateYAML converts YAML content to JSON and validates it against the
// named schema. A nil slice means the document conforms.
func ValidateYAML(name string, content []byte) ([]Violation, error) {
	sch, err := loadSchema(name)
	if err != nil {
		return nil, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if err := sch.Validate(document); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return collectViolations(verr), nil
		}
		return nil, err
	}
	return nil, nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiled, schemaErr = compileAll()
	})
	if schemaErr != nil {
		return nil, schemaErr
	}
	sch, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return sch, nil
}

func compileAll() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	names := []string{GalaxyManifest, Requirements}
	for _, name := range names {
		payload, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, err
		}
		if err := compiler.AddResource(name, bytes.NewReader(payload)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}
	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		sch, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[name] = sch
	}
	return out, nil
}

// collectViolations flattens the cause tree to its leaves.
func collectViolations(verr *jsonschema.ValidationError) []Violation {
	var out []Violation
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Violation{Location: e.InstanceLocation, Message: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}
