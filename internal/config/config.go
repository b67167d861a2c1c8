// Where: internal/config/config.go
// What: Project config load/save helpers.
// Why: Manage domd.yaml, .env and DOMD_* overrides consistently.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poruru-code/domd/internal/envutil"
	"github.com/poruru-code/domd/internal/meta"
	"gopkg.in/yaml.v3"
)

// Config represents a project's domd.yaml.
type Config struct {
	Version  int           `yaml:"version"`
	Exclude  []string      `yaml:"exclude,omitempty"`
	Parsers  []string      `yaml:"parsers,omitempty"`
	Format   string        `yaml:"format,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
	Publish  PublishConfig `yaml:"publish,omitempty"`
}

// PublishConfig holds the report publishing destination.
type PublishConfig struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Table    string `yaml:"table,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
}

// DefaultConfig returns an initialized Config with version set.
func DefaultConfig() Config {
	return Config{
		Version:  1,
		Format:   "text",
		LogLevel: "warn",
		Publish: PublishConfig{
			Prefix: meta.Slug,
		},
	}
}

// Path returns the config path for a project. A non-empty override wins and
// is made absolute.
func Path(projectDir, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		if !filepath.IsAbs(override) {
			if abs, err := filepath.Abs(override); err == nil {
				return abs
			}
		}
		return override
	}
	return filepath.Join(projectDir, meta.ConfigFile)
}

// Load reads and parses a config file, layering it over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// LoadEnvFile loads the project's .env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(projectDir string) error {
	path := filepath.Join(projectDir, meta.EnvFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays DOMD_* environment variables on cfg.
func ApplyEnv(cfg Config) Config {
	if value := envutil.GetHostEnv("FORMAT"); value != "" {
		cfg.Format = value
	}
	if value := envutil.GetHostEnv("LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	if value := envutil.GetHostEnv("EXCLUDE"); value != "" {
		cfg.Exclude = append(cfg.Exclude, envutil.SplitList(value)...)
	}
	if value := envutil.GetHostEnv("PARSERS"); value != "" {
		cfg.Parsers = envutil.SplitList(value)
	}
	if value := envutil.GetHostEnv("S3_BUCKET"); value != "" {
		cfg.Publish.Bucket = value
	}
	if value := envutil.GetHostEnv("S3_PREFIX"); value != "" {
		cfg.Publish.Prefix = value
	}
	if value := envutil.GetHostEnv("DYNAMODB_TABLE"); value != "" {
		cfg.Publish.Table = value
	}
	if value := envutil.GetHostEnv("AWS_ENDPOINT"); value != "" {
		cfg.Publish.Endpoint = value
	}
	if value := strings.TrimSpace(os.Getenv("AWS_REGION")); value != "" && cfg.Publish.Region == "" {
		cfg.Publish.Region = value
	}
	return cfg
}

// Resolve loads .env, the config file and environment overrides, in that
// order of increasing precedence.
func Resolve(projectDir, override string) (Config, error) {
	if err := LoadEnvFile(projectDir); err != nil {
		return Config{}, err
	}
	cfg, err := Load(Path(projectDir, override))
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg), nil
}
