// Where: internal/infra/docker/doctor_test.go
// What: Tests for environment checks.
// Why: Keep doctor output deterministic without a real daemon.
package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
)

type fakeClient struct {
	pingErr    error
	versionErr error
	images     []image.Summary
	listErr    error
}

func (f *fakeClient) Ping(_ context.Context) (types.Ping, error) {
	return types.Ping{APIVersion: "1.47"}, f.pingErr
}

func (f *fakeClient) ServerVersion(_ context.Context) (types.Version, error) {
	if f.versionErr != nil {
		return types.Version{}, f.versionErr
	}
	return types.Version{Version: "28.5.2", APIVersion: "1.51", Os: "linux", Arch: "amd64"}, nil
}

func (f *fakeClient) ImageList(_ context.Context, _ image.ListOptions) ([]image.Summary, error) {
	return f.images, f.listErr
}

func lookPathOnly(found ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, name := range found {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCheckerAllHealthy(t *testing.T) {
	checker := Checker{Client: &fakeClient{}, LookPath: lookPathOnly("docker", "ansible-galaxy")}
	checks := checker.Run(context.Background())
	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}
	for _, check := range checks {
		if !check.OK {
			t.Fatalf("expected %s to pass, got %s", check.Name, check.Detail)
		}
	}
	if checks[0].Detail != "engine 28.5.2 (API 1.51, linux/amd64)" {
		t.Fatalf("unexpected daemon detail: %s", checks[0].Detail)
	}
	if checks[2].Detail != "/usr/bin/ansible-galaxy" {
		t.Fatalf("unexpected tool detail: %s", checks[2].Detail)
	}
}

func TestCheckerReportsFailures(t *testing.T) {
	checker := Checker{Client: &fakeClient{pingErr: errors.New("refused")}, LookPath: lookPathOnly("docker")}
	checks := checker.Run(context.Background())
	if checks[0].OK || checks[0].Detail != "ping failed: refused" {
		t.Fatalf("unexpected daemon check: %+v", checks[0])
	}
	if !checks[1].OK {
		t.Fatalf("expected docker tool to pass")
	}
	if checks[2].OK || checks[2].Detail != "not found on PATH" {
		t.Fatalf("unexpected galaxy check: %+v", checks[2])
	}
}

func TestCheckerWithoutClient(t *testing.T) {
	checker := Checker{ClientErr: errors.New("no socket")}
	checks := checker.Run(context.Background())
	if checks[0].OK || checks[0].Detail != "no socket" {
		t.Fatalf("unexpected daemon check: %+v", checks[0])
	}
	if checks[1].OK {
		t.Fatalf("expected tool check to fail without lookup")
	}
}

func TestImagesPresent(t *testing.T) {
	client := &fakeClient{images: []image.Summary{
		{RepoTags: []string{"web:latest"}},
		{RepoTags: []string{"localhost:5000/api:dev"}},
		{RepoTags: []string{"<none>:<none>"}},
	}}
	present, err := ImagesPresent(context.Background(), client, []string{"web", "localhost:5000/api", "worker"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !present["web"] || !present["localhost:5000/api"] || present["worker"] {
		t.Fatalf("unexpected presence map: %v", present)
	}
}

func TestImagesPresentListError(t *testing.T) {
	client := &fakeClient{listErr: errors.New("daemon gone")}
	if _, err := ImagesPresent(context.Background(), client, []string{"web"}); err == nil {
		t.Fatalf("expected error")
	}
}
