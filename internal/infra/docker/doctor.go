// Where: internal/infra/docker/doctor.go
// What: Environment checks for the tools generated commands rely on.
// Why: Tell users up front whether docker and ansible-galaxy will work.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
)

// Client defines the subset of Docker SDK methods the doctor uses.
type Client interface {
	Ping(ctx context.Context) (types.Ping, error)
	ServerVersion(ctx context.Context) (types.Version, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
}

// LookPathFunc resolves an executable on PATH.
type LookPathFunc func(file string) (string, error)

// Check is one doctor finding.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Checker runs environment checks. A nil Client reports the daemon as
// unreachable with ClientErr as the reason.
type Checker struct {
	Client    Client
	ClientErr error
	LookPath  LookPathFunc
}

// Tools lists the executables generated commands invoke.
var Tools = []string{"docker", "ansible-galaxy"}

// Run executes every check in a fixed order.
func (c Checker) Run(ctx context.Context) []Check {
	checks := []Check{c.daemon(ctx)}
	for _, tool := range Tools {
		checks = append(checks, c.tool(tool))
	}
	return checks
}

func (c Checker) daemon(ctx context.Context) Check {
	check := Check{Name: "docker daemon"}
	if c.Client == nil {
		check.Detail = "client unavailable"
		if c.ClientErr != nil {
			check.Detail = c.ClientErr.Error()
		}
		return check
	}
	if _, err := c.Client.Ping(ctx); err != nil {
		check.Detail = fmt.Sprintf("ping failed: %v", err)
		return check
	}
	version, err := c.Client.ServerVersion(ctx)
	if err != nil {
		check.Detail = fmt.Sprintf("server version: %v", err)
		return check
	}
	check.OK = true
	check.Detail = fmt.Sprintf("engine %s (API %s, %s/%s)", version.Version, version.APIVersion, version.Os, version.Arch)
	return check
}

func (c Checker) tool(name string) Check {
	check := Check{Name: name}
	if c.LookPath == nil {
		check.Detail = "PATH lookup unavailable"
		return check
	}
	path, err := c.LookPath(name)
	if err != nil {
		check.Detail = "not found on PATH"
		return check
	}
	check.OK = true
	check.Detail = path
	return check
}

// ImagesPresent reports, for each image name, whether a local image tagged
// with that repository exists.
func ImagesPresent(ctx context.Context, client Client, names []string) (map[string]bool, error) {
	result := make(map[string]bool, len(names))
	if len(names) == 0 {
		return result, nil
	}
	for _, name := range names {
		result[name] = false
	}
	images, err := client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		for _, tag := range img.RepoTags {
			repo := tag
			if idx := strings.LastIndex(tag, ":"); idx > 0 {
				repo = tag[:idx]
			}
			if _, ok := result[repo]; ok {
				result[repo] = true
			}
		}
	}
	return result, nil
}
