// Where: internal/domain/command/command.go
// What: Command descriptor value object.
// Why: Give every parser one shape for the shell commands it proposes.
package command

// Command type tags.
const (
	TypeDockerBuild    = "docker_build"
	TypeDockerRun      = "docker_run"
	TypeDockerBuildRun = "docker_build_run"
	TypeAnsibleGalaxy  = "ansible_galaxy"
)

// Metadata is an open, JSON-like mapping attached to a command.
// Values are scalars, []any or map[string]any.
type Metadata map[string]any

// Command describes one actionable shell command discovered in a project file.
// Values are built by parsers and treated as read-only afterwards.
type Command struct {
	Command     string   `json:"command" yaml:"command"`
	Description string   `json:"description" yaml:"description"`
	Type        string   `json:"type" yaml:"type"`
	Source      string   `json:"source" yaml:"source"`
	Metadata    Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a copy whose metadata shares no maps or slices with c.
func (c Command) Clone() Command {
	out := c
	if c.Metadata != nil {
		out.Metadata = cloneValue(map[string]any(c.Metadata)).(map[string]any)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case Metadata:
		return Metadata(cloneValue(map[string]any(v)).(map[string]any))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// CountByType tallies commands per type tag.
func CountByType(commands []Command) map[string]int {
	counts := map[string]int{}
	for _, cmd := range commands {
		counts[cmd.Type]++
	}
	return counts
}
