// Where: internal/app/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command wiring, flags and config layering stay stable.
package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poruru-code/domd/internal/discovery"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOMD_FORMAT", "DOMD_LOG_LEVEL", "DOMD_EXCLUDE", "DOMD_PARSERS",
		"DOMD_S3_BUCKET", "DOMD_S3_PREFIX", "DOMD_DYNAMODB_TABLE", "DOMD_AWS_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func testDeps(projectDir string, out *bytes.Buffer) Dependencies {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return Dependencies{
		ProjectDir: projectDir,
		Out:        out,
		ErrOut:     &bytes.Buffer{},
		Now:        func() time.Time { return fixed },
	}
}

var sampleFiles = map[string]string{
	"requirements.yml": "roles:\n  - name: geerlingguy.docker\n",
	"web/Dockerfile":   "FROM nginx\nEXPOSE 8080\n",
}

func TestRunScanText(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	exitCode := Run([]string{"scan"}, testDeps(root, &out))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	for _, want := range []string{
		"$ ansible-galaxy install -r requirements.yml",
		"$ docker build -t web .",
		"$ docker run --rm -p 8080:8080 web",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestRunNoArgsScansProject(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	if exitCode := Run(nil, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "ansible-galaxy install") {
		t.Fatalf("expected scan output, got %q", out.String())
	}
}

func TestRunScanJSONWithPathArg(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	exitCode := Run([]string{"scan", root, "--format", "json"}, testDeps(t.TempDir(), &out))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	var rep discovery.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("expected JSON output, got %v: %s", err, out.String())
	}
	if rep.ProjectRoot != root {
		t.Fatalf("expected project root %s, got %s", root, rep.ProjectRoot)
	}
	if len(rep.Commands()) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(rep.Commands()))
	}
}

func TestRunScanParserFilter(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	exitCode := Run([]string{"scan", "--parser", "dockerfile", "--format", "json"}, testDeps(root, &out))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	var rep discovery.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Files) != 1 || rep.Files[0].Parser != "dockerfile" {
		t.Fatalf("expected only dockerfile results, got %+v", rep.Files)
	}
}

func TestRunScanUnknownParser(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	if exitCode := Run([]string{"scan", "--parser", "gradle"}, testDeps(root, &out)); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.HasPrefix(out.String(), "✗ unknown parser") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunScanExcludeFlag(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	exitCode := Run([]string{"scan", "--exclude", "web", "--format", "json"}, testDeps(root, &out))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var rep discovery.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Files) != 1 || rep.Files[0].Parser != "ansible_galaxy" {
		t.Fatalf("expected web/ to be excluded, got %+v", rep.Files)
	}
}

func TestRunScanUsesConfigFile(t *testing.T) {
	clearEnv(t)
	files := map[string]string{
		"domd.yaml":        "format: yaml\nparsers:\n  - ansible_galaxy\n",
		"requirements.yml": sampleFiles["requirements.yml"],
		"web/Dockerfile":   sampleFiles["web/Dockerfile"],
	}
	root := writeProject(t, files)

	var out bytes.Buffer
	if exitCode := Run([]string{"scan"}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "project_root: "+root) {
		t.Fatalf("expected YAML output, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "docker build") {
		t.Fatalf("expected dockerfile parser to be filtered out:\n%s", out.String())
	}
}

func TestRunScanFormatFlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOMD_FORMAT", "yaml")
	root := writeProject(t, sampleFiles)

	var out bytes.Buffer
	if exitCode := Run([]string{"scan", "-f", "json"}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !json.Valid(out.Bytes()) {
		t.Fatalf("expected JSON output, got:\n%s", out.String())
	}
}

func TestRunScanOutputFile(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)
	target := filepath.Join(t.TempDir(), "commands.md")

	var out bytes.Buffer
	if exitCode := Run([]string{"scan", "-f", "markdown", "-o", target}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	payload, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(payload), "- [ ] ") {
		t.Fatalf("expected markdown checklist, got:\n%s", payload)
	}
	if !strings.Contains(out.String(), "Wrote 4 command(s)") {
		t.Fatalf("unexpected status: %q", out.String())
	}
}

func TestRunScanStrict(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, map[string]string{"Dockerfile": "FROM scratch\n"})
	if err := os.WriteFile(filepath.Join(root, "Dockerfile"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write dockerfile: %v", err)
	}

	var out bytes.Buffer
	if exitCode := Run([]string{"scan"}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected diagnostics to be soft by default, got %d", exitCode)
	}
	out.Reset()
	if exitCode := Run([]string{"scan", "--strict"}, testDeps(root, &out)); exitCode != 1 {
		t.Fatalf("expected exit code 1 with --strict, got %d", exitCode)
	}
}

func TestRunScanInvalidPath(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing")
	if exitCode := Run([]string{"scan", missing}, testDeps("", &out)); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.HasPrefix(out.String(), "✗ ") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, sampleFiles)
	var out bytes.Buffer
	if exitCode := Run([]string{"--log-level", "loud", "scan"}, testDeps(root, &out)); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "invalid log level") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunParsers(t *testing.T) {
	var out bytes.Buffer
	if exitCode := Run([]string{"parsers"}, testDeps("", &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"🧩 ansible_galaxy", "🧩 dockerfile", "**/Dockerfile"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, out.String())
		}
	}
	if strings.Index(out.String(), "ansible_galaxy") > strings.Index(out.String(), "🧩 dockerfile") {
		t.Fatalf("expected registration order:\n%s", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if exitCode := Run([]string{"version"}, Dependencies{Out: &out}); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.HasPrefix(out.String(), "domd ") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if exitCode := Run([]string{"deploy"}, Dependencies{Out: &out}); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestRunInit(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	var out bytes.Buffer
	if exitCode := Run([]string{"init"}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	payload, err := os.ReadFile(filepath.Join(root, "domd.yaml"))
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.Contains(string(payload), "**/node_modules") {
		t.Fatalf("expected default excludes, got:\n%s", payload)
	}

	out.Reset()
	if exitCode := Run([]string{"init"}, testDeps(root, &out)); exitCode != 1 {
		t.Fatalf("expected existing config to be refused, got %d", exitCode)
	}
	out.Reset()
	if exitCode := Run([]string{"init", "--force"}, testDeps(root, &out)); exitCode != 0 {
		t.Fatalf("expected --force to overwrite, got %d: %s", exitCode, out.String())
	}
}
