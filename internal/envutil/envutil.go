// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/domd/internal/meta"
)

// HostEnvKey constructs a tool-level environment variable name
// by combining the application prefix with the given suffix.
// Example: HostEnvKey("LOG_LEVEL") returns "DOMD_LOG_LEVEL"
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a tool-level environment variable, trimmed.
// Example: GetHostEnv("FORMAT") returns the value of DOMD_FORMAT
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// SplitList splits a comma-separated environment value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
