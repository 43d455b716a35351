package pdfbook

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Markers emitted by the include resolver in place of directives.
const (
	pageBreakHTML  = `<div class="page-break"></div>`
	tocPlaceholder = `<!--TOC_PLACEHOLDER-->`
)

// fenceMarker delimits fenced code blocks. Directive classification is
// suspended between two fence lines.
const fenceMarker = "```"

// includePattern matches a whole-line include directive, tolerating
// whitespace around it: !include(chapters/intro.md)
var includePattern = regexp.MustCompile(`^\s*!include\(([^)]+)\)\s*$`)

// resolveIncludes reads filePath and expands its directives depth-first,
// returning one merged Markdown string. Include order in the source file
// defines final document order.
//
// visited holds the paths currently open on the recursion stack. Re-entering
// an open path is a cycle and fails before any stack depth is exhausted; a
// file that has finished expanding may be included again later, so diamond
// include graphs resolve normally.
func resolveIncludes(rootDir, filePath string, visited map[string]struct{}) (string, error) {
	key := filepath.Clean(filePath)
	if _, open := visited[key]; open {
		return "", fmt.Errorf("%w: %s", ErrCircularInclude, filePath)
	}
	visited[key] = struct{}{}
	defer delete(visited, key)

	data, err := os.ReadFile(filePath) // #nosec G304 -- path is sandbox-checked by the caller
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, filePath)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")

	var out strings.Builder
	inFence := false

	for _, line := range strings.Split(content, "\n") {
		// A fence line toggles state before classification, so an opening
		// fence is emitted verbatim and never parsed as a directive.
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
		}

		if inFence {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		switch {
		case includePattern.MatchString(line):
			target := includePattern.FindStringSubmatch(line)[1]
			resolved, err := resolveWithinRoot(rootDir, filepath.Dir(filePath), target)
			if err != nil {
				return "", err
			}
			included, err := resolveIncludes(rootDir, resolved, visited)
			if err != nil {
				return "", err
			}
			out.WriteString(included)
			out.WriteByte('\n')
		case strings.TrimSpace(line) == "!newpage":
			out.WriteString(pageBreakHTML)
			out.WriteByte('\n')
		case strings.TrimSpace(line) == "!toc":
			out.WriteString(tocPlaceholder)
			out.WriteByte('\n')
		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	return out.String(), nil
}
