// Where: internal/logging/logging.go
// What: Structured logger construction.
// Why: Give parsers and the CLI one leveled logger with consistent prefixing.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/meta"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New builds a logger writing to w at the given level.
// An empty level falls back to DefaultLevel.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: meta.AppName,
		Level:  lvl,
	}), nil
}

// ParseLevel maps a user-supplied level name to a log.Level.
func ParseLevel(level string) (log.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
