// Where: internal/discovery/ignore.go
// What: Exclude pattern assembly.
// Why: Combine defaults, configured patterns and the project's ignore file.
package discovery

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher/ignorefile"
	"github.com/poruru-code/domd/internal/meta"
)

func (s Scanner) excludePatterns(root string) ([]string, error) {
	patterns := append([]string{}, DefaultExclude...)
	patterns = append(patterns, s.Exclude...)

	fromFile, err := readIgnoreFile(filepath.Join(root, meta.IgnoreFile))
	if err != nil {
		return patterns, err
	}
	return append(patterns, fromFile...), nil
}

// readIgnoreFile parses a dockerignore-style file. A missing file is not an
// error.
func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return ignorefile.ReadAll(f)
}
