// Where: internal/parser/parser.go
// What: Parser contract shared by every file-type detector.
// Why: Let the registry and discovery treat Galaxy files, Dockerfiles and
// future formats uniformly.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/logging"
)

// ErrInvalidUTF8 is returned when a file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Factory describes one file type: how to recognise it and how to build a
// parser bound to a concrete file.
type Factory interface {
	// Name is the stable identifier used in config and CLI flags.
	Name() string
	// Patterns lists advertised glob patterns. They are documentation only;
	// CanParse is authoritative.
	Patterns() []string
	// CanParse reports whether path looks like a file this parser handles.
	// It inspects path shape and existence only, never content, and must be
	// safe to call with any input.
	CanParse(path string) bool
	// New binds a parser to filePath. projectRoot is used for display paths.
	New(filePath, projectRoot string) Parser
}

// Parser extracts commands from one bound file. Implementations never return
// errors; failures surface as diagnostics on the Result.
type Parser interface {
	// Parse reads the bound file and parses it.
	Parse() Result
	// ParseContent parses caller-supplied content instead of reading the file.
	ParseContent(content string) Result
}

// Base holds the state every parser binds at construction.
type Base struct {
	FilePath    string
	ProjectRoot string
	Logger      *log.Logger
}

// NewBase builds a Base, substituting a discarding logger for nil.
func NewBase(filePath, projectRoot string, logger *log.Logger) Base {
	if logger == nil {
		logger = logging.Discard()
	}
	return Base{FilePath: filePath, ProjectRoot: projectRoot, Logger: logger}
}

// RelPath returns FilePath relative to ProjectRoot when the file lies under
// it, otherwise FilePath unchanged.
func (b Base) RelPath() string {
	if b.ProjectRoot == "" {
		return b.FilePath
	}
	absRoot, err := filepath.Abs(b.ProjectRoot)
	if err != nil {
		return b.FilePath
	}
	absFile, err := filepath.Abs(b.FilePath)
	if err != nil {
		return b.FilePath
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return b.FilePath
	}
	return rel
}

// ReadContent reads the bound file as UTF-8 text.
func (b Base) ReadContent() (string, error) {
	payload, err := os.ReadFile(b.FilePath)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%s: %w", b.FilePath, ErrInvalidUTF8)
	}
	return string(payload), nil
}

// Recorder starts an accumulator for one parse call.
func (b Base) Recorder() *Recorder {
	return newRecorder(b.FilePath, b.Logger)
}

// Exists reports whether path exists. It never panics.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// IsCandidateFile reports whether path exists and is not a directory.
func IsCandidateFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// HasSegment reports whether one of path's directory segments equals segment.
// Matching is on whole segments, so "metadata/main.yml" does not match "meta".
func HasSegment(path, segment string) bool {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	for _, part := range parts[:len(parts)-1] {
		if part == segment {
			return true
		}
	}
	return false
}
