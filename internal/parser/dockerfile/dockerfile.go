// Where: internal/parser/dockerfile/dockerfile.go
// What: Parser for Dockerfile and Dockerfile.<suffix> files.
// Why: Propose docker build/run commands derived from the directory and EXPOSE lines.
package dockerfile

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/domain/command"
	cmdtemplate "github.com/poruru-code/domd/internal/domain/template"
	"github.com/poruru-code/domd/internal/parser"
)

// Name identifies the parser in config and CLI flags.
const Name = "dockerfile"

const (
	defaultImageName = "app"
	defaultPort      = "80"

	stepImageName = "image_name"
	stepPorts     = "exposed_ports"
	stepBuild     = "build"
	stepRun       = "run"
	stepPortRuns  = "port_runs"
	stepBuildRun  = "build_run"
)

var (
	patterns = []string{
		"Dockerfile",
		"Dockerfile.*",
		"**/Dockerfile",
		"**/Dockerfile.*",
	}

	runFlags = []string{"--rm"}

	exposePattern = regexp.MustCompile(`(?i)^\s*EXPOSE\s+([0-9\s]+)`)
	invalidImage  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Factory recognises Dockerfiles and binds parsers to them.
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

// CanParse accepts files named exactly "Dockerfile" or starting with
// "Dockerfile." at any depth.
func (Factory) CanParse(path string) bool {
	if !parser.IsCandidateFile(path) {
		return false
	}
	name := filepath.Base(path)
	return name == "Dockerfile" || strings.HasPrefix(name, "Dockerfile.")
}

func (f Factory) New(filePath, projectRoot string) parser.Parser {
	return &Parser{Base: parser.NewBase(filePath, projectRoot, f.Logger)}
}

// Parser handles one Dockerfile.
type Parser struct {
	parser.Base
}

// Parse reads the bound file. A missing or unreadable file yields an empty
// result.
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

// ParseContent parses caller-supplied Dockerfile text.
func (p *Parser) ParseContent(content string) parser.Result {
	rec := p.Recorder()
	p.parse(rec, content)
	return rec.Result()
}

func (p *Parser) parse(rec *parser.Recorder, content string) {
	if p.FilePath == "" {
		p.Logger.Warn("no file path provided for Dockerfile parser")
		return
	}
	p.Logger.Debug("parsing Dockerfile", "file", p.FilePath)

	image, ok := parser.Resolve(rec, stepImageName, parser.Attempt(func() (string, error) {
		return ImageName(p.FilePath), nil
	}))
	if !ok {
		return
	}
	ports, ok := parser.Resolve(rec, stepPorts, parser.Attempt(func() ([]string, error) {
		return ExposedPorts(content), nil
	}))
	if !ok {
		ports = nil
	}
	p.Logger.Debug("dockerfile facts", "file", p.FilePath, "image", image, "ports", ports)

	var buildCmd, runCmd string

	rec.Step(stepBuild, func() error {
		cmd, err := p.newCommand("docker.build", command.TypeDockerBuild, cmdtemplate.Data{"Image": image})
		if err != nil {
			return err
		}
		buildCmd = cmd.Command
		rec.Add(cmd)
		return nil
	})

	rec.Step(stepRun, func() error {
		cmd, err := p.newCommand("docker.run", command.TypeDockerRun, cmdtemplate.Data{
			"Flags":   runFlags,
			"Mapping": defaultMapping(ports),
			"Image":   image,
		})
		if err != nil {
			return err
		}
		runCmd = cmd.Command
		rec.Add(cmd)
		return nil
	})

	if len(ports) > 1 {
		rec.Step(stepPortRuns, func() error {
			for _, port := range ports[1:] {
				if port == defaultPort {
					continue
				}
				cmd, err := p.newCommand("docker.run_port", command.TypeDockerRun, cmdtemplate.Data{
					"Flags": runFlags,
					"Port":  port,
					"Image": image,
				})
				if err != nil {
					return err
				}
				rec.Add(cmd)
			}
			return nil
		})
	}

	if buildCmd != "" && runCmd != "" {
		rec.Step(stepBuildRun, func() error {
			cmd, err := p.newCommand("docker.build_run", command.TypeDockerBuildRun, cmdtemplate.Data{
				"Build": buildCmd,
				"Run":   runCmd,
				"Image": image,
			})
			if err != nil {
				return err
			}
			rec.Add(cmd)
			return nil
		})
	}
}

func (p *Parser) newCommand(name, kind string, data cmdtemplate.Data) (command.Command, error) {
	text, description, err := cmdtemplate.RenderPair(name, data)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{
		Command:     text,
		Description: description,
		Type:        kind,
		Source:      p.FilePath,
	}, nil
}

// defaultMapping picks the port mapping of the primary run command: 80:80
// unless ports are exposed, then the first port, except that an exposed 80
// always wins.
func defaultMapping(ports []string) string {
	port := defaultPort
	if len(ports) > 0 {
		port = ports[0]
		for _, candidate := range ports {
			if candidate == defaultPort {
				port = defaultPort
				break
			}
		}
	}
	return port + ":" + port
}

// ImageName derives an image name from the Dockerfile's parent directory.
func ImageName(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	if parent == "" || parent == "." {
		return defaultImageName
	}
	name := invalidImage.ReplaceAllString(strings.ToLower(parent), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return defaultImageName
	}
	return name
}

// ExposedPorts collects EXPOSE port tokens in file order. Tokens are not
// validated or deduplicated; protocol suffixes end the match. Lines have no
// length limit.
func ExposedPorts(content string) []string {
	var ports []string
	for _, line := range strings.Split(content, "\n") {
		match := exposePattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if match == nil {
			continue
		}
		ports = append(ports, strings.Fields(match[1])...)
	}
	return ports
}
