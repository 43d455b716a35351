package pdfbook

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveWithinRoot resolves candidate against baseDir and verifies the
// result stays under root. Normalization is purely lexical, so ".." segments
// cannot escape the root even when the target does not exist on disk.
// root must be absolute; baseDir is the directory of the including file.
func resolveWithinRoot(root, baseDir, candidate string) (string, error) {
	resolved := candidate
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(baseDir, resolved)
	}
	resolved = filepath.Clean(resolved)

	cleanRoot := filepath.Clean(root)
	if resolved != cleanRoot && !strings.HasPrefix(resolved, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnauthorizedAccess, candidate)
	}

	return resolved, nil
}
