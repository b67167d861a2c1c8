// Where: internal/parser/galaxy/yaml.go
// What: YAML loading helpers for Galaxy files.
// Why: Keep scalar text intact and metadata JSON-friendly.
package galaxy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// loadDocument parses content and returns its root node, or nil when the
// document is empty.
func loadDocument(content string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolve(doc.Content[0])
	if root == nil || isNull(root) {
		return nil, nil
	}
	return root, nil
}

// maxMergeDepth bounds merge-key chains so self-referencing anchors cannot
// loop forever.
const maxMergeDepth = 32

// resolve follows alias nodes to the node they name.
func resolve(node *yaml.Node) *yaml.Node {
	for depth := 0; node != nil && node.Kind == yaml.AliasNode; depth++ {
		if depth >= maxMergeDepth {
			return nil
		}
		node = node.Alias
	}
	return node
}

// lookup returns the value node stored under key in a mapping node. Aliases
// are followed and "<<" merge keys are searched after the mapping's own keys.
func lookup(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	return lookupDepth(mapping, key, 0)
}

func lookupDepth(mapping *yaml.Node, key string, depth int) (*yaml.Node, bool) {
	mapping = resolve(mapping)
	if mapping == nil || mapping.Kind != yaml.MappingNode || depth > maxMergeDepth {
		return nil, false
	}
	var merges []*yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k, v := mapping.Content[i], mapping.Content[i+1]
		if k.Tag == "!!merge" {
			merges = append(merges, v)
			continue
		}
		if k.Value == key {
			return resolve(v), true
		}
	}
	for _, merge := range merges {
		merge = resolve(merge)
		if merge == nil {
			continue
		}
		sources := []*yaml.Node{merge}
		if merge.Kind == yaml.SequenceNode {
			sources = merge.Content
		}
		for _, source := range sources {
			if value, ok := lookupDepth(source, key, depth+1); ok {
				return value, true
			}
		}
	}
	return nil, false
}

// decodeList decodes a non-empty sequence node, following aliases. Anything
// else yields nil.
func decodeList(node *yaml.Node) ([]any, error) {
	node = resolve(node)
	if node == nil || node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, nil
	}
	var items []any
	if err := node.Decode(&items); err != nil {
		return nil, err
	}
	return normalize(items).([]any), nil
}

// scalarText returns the text of a scalar value, or fallback when the node is
// missing or null. Non-scalar values are rendered with fmt.
func scalarText(node *yaml.Node, fallback string) (string, error) {
	node = resolve(node)
	if node == nil || isNull(node) {
		return fallback, nil
	}
	if node.Kind == yaml.ScalarNode {
		return node.Value, nil
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return "", err
	}
	return fmt.Sprint(normalize(value)), nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// normalize converts map[any]any produced for non-string keys into
// map[string]any so metadata stays JSON-serialisable.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return v
	}
}
