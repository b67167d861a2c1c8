// Where: cmd/domd/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/poruru-code/domd/internal/app"
	"github.com/poruru-code/domd/internal/infra/docker"
	"github.com/poruru-code/domd/internal/parser/builtin"
	"github.com/poruru-code/domd/internal/publisher"
)

var (
	getwd           = os.Getwd
	newDockerClient = docker.NewClient
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// A Docker client failure is not fatal: only doctor needs the daemon, and it
// reports the error itself.
func buildDependencies(ctx context.Context) (app.Dependencies, io.Closer, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	client, clientErr := newDockerClient()
	deps := app.Dependencies{
		ProjectDir: projectDir,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		Context:    ctx,
		Registry:   builtin.Registry,
		Doctor: app.DoctorDeps{
			Client:    client,
			ClientErr: clientErr,
			LookPath:  exec.LookPath,
		},
		Publish: app.PublishDeps{
			Factory: publisher.NewAWSClientFactory(),
		},
	}
	if clientErr != nil {
		deps.Doctor.Client = nil
		return deps, nil, nil
	}
	return deps, asCloser(client), nil
}

// asCloser attempts to cast the Docker client to an io.Closer.
func asCloser(client docker.Client) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
