// Where: internal/app/doctor.go
// What: doctor command implementation.
// Why: Report whether generated commands can run on this machine.
package app

import (
	"io"
	"sort"

	"github.com/poruru-code/domd/internal/infra/docker"
	"github.com/poruru-code/domd/internal/parser/dockerfile"
	"github.com/poruru-code/domd/internal/ui"
)

// DoctorDeps holds the Docker client and PATH lookup used by doctor.
type DoctorDeps struct {
	Client    docker.Client
	ClientErr error
	LookPath  docker.LookPathFunc
}

type DoctorCmd struct {
	Path   string `arg:"" optional:"" help:"Project directory to check built images for"`
	Images bool   `help:"Report whether images for discovered Dockerfiles exist locally"`
}

func runDoctor(cli CLI, deps Dependencies, out io.Writer) int {
	console := ui.New(out)
	checker := docker.Checker{
		Client:    deps.Doctor.Client,
		ClientErr: deps.Doctor.ClientErr,
		LookPath:  deps.Doctor.LookPath,
	}

	failed := false
	console.Header("🩺", "Environment")
	for _, check := range checker.Run(deps.Context) {
		marker := "✅"
		if !check.OK {
			marker = "✗"
			failed = true
		}
		console.ItemPlain(marker + " " + check.Name + ": " + check.Detail)
	}

	if cli.Doctor.Images {
		if err := reportImages(cli, deps, console); err != nil {
			return exitWithError(out, err)
		}
	}

	if failed {
		return 1
	}
	return 0
}

func reportImages(cli CLI, deps Dependencies, console *ui.Console) error {
	ctxInfo, err := resolveCommandContext(cli, cli.Doctor.Path, deps)
	if err != nil {
		return err
	}
	scanner, err := newScanner(ctxInfo, deps, []string{dockerfile.Name}, nil)
	if err != nil {
		return err
	}
	rep, err := scanner.Scan(deps.Context, ctxInfo.ProjectDir)
	if err != nil {
		return err
	}

	seen := map[string]struct{}{}
	var names []string
	for _, file := range rep.Files {
		name := dockerfile.ImageName(file.Path)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	console.Blank()
	console.Header("🐳", "Images")
	if len(names) == 0 {
		console.ItemPlain("no Dockerfiles found")
		return nil
	}
	if deps.Doctor.Client == nil {
		console.ItemPlain("docker daemon unavailable, skipping image lookup")
		return nil
	}
	present, err := docker.ImagesPresent(deps.Context, deps.Doctor.Client, names)
	if err != nil {
		return err
	}
	for _, name := range names {
		status := "missing"
		if present[name] {
			status = "present"
		}
		console.Item(name, status)
	}
	return nil
}
