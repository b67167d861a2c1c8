// Where: internal/config/config_test.go
// What: Tests for project config helpers.
// Why: Ensure file, .env and environment layering stays stable.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "domd.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "domd.yaml")
	cfg := DefaultConfig()
	cfg.Exclude = []string{"vendor", "build"}
	cfg.Parsers = []string{"dockerfile"}
	cfg.Publish.Bucket = "reports"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Fatalf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domd.yaml")
	if err := os.WriteFile(path, []byte("exclude: [a\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveLayersEnvOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOMD_FORMAT", "")
	t.Setenv("DOMD_PARSERS", "")
	t.Setenv("DOMD_S3_BUCKET", "")
	// .env never overrides existing variables, so drop it after Setenv
	// registers the restore.
	_ = os.Unsetenv("DOMD_S3_BUCKET")
	if err := os.WriteFile(filepath.Join(dir, "domd.yaml"), []byte("format: yaml\nexclude:\n  - vendor\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DOMD_S3_BUCKET=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("DOMD_FORMAT", "json")
	t.Setenv("DOMD_EXCLUDE", "build, dist")
	t.Setenv("DOMD_PARSERS", "dockerfile")

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Format != "json" {
		t.Fatalf("expected env format to win, got %q", cfg.Format)
	}
	if want := []string{"vendor", "build", "dist"}; !reflect.DeepEqual(cfg.Exclude, want) {
		t.Fatalf("expected exclude %v, got %v", want, cfg.Exclude)
	}
	if !reflect.DeepEqual(cfg.Parsers, []string{"dockerfile"}) {
		t.Fatalf("unexpected parsers: %v", cfg.Parsers)
	}
	if cfg.Publish.Bucket != "from-dotenv" {
		t.Fatalf("expected bucket from .env, got %q", cfg.Publish.Bucket)
	}
}

func TestPathOverride(t *testing.T) {
	dir := t.TempDir()
	if got := Path(dir, ""); got != filepath.Join(dir, "domd.yaml") {
		t.Fatalf("unexpected default path: %s", got)
	}
	override := filepath.Join(dir, "custom.yaml")
	if got := Path(dir, override); got != override {
		t.Fatalf("expected override, got %s", got)
	}
}
