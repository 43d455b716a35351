package pdfbook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProject creates the given files (relative path -> content) under a
// temp dir and returns the dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func resolve(t *testing.T, dir, entry string) (string, error) {
	t.Helper()
	return resolveIncludes(dir, filepath.Join(dir, entry), map[string]struct{}{})
}

func TestResolveIncludesPlainFile(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "# Title\n\nSome text.\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "# Title\n\nSome text.\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestResolveIncludesMergesInOrder(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "before\n!include(a.md)\nbetween\n!include(b.md)\nafter\n",
		"a.md":    "content A\n",
		"b.md":    "content B\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := "before\ncontent A\nbetween\ncontent B\nafter\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveIncludesNestedDepthFirst(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md":              "!include(chapters/ch1.md)\n",
		"chapters/ch1.md":      "chapter one\n!include(ch1/sec1.md)\n",
		"chapters/ch1/sec1.md": "section one\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := "chapter one\nsection one\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveIncludesRelativeToIncludingFile(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md":         "!include(chapters/ch1.md)\n",
		"chapters/ch1.md": "!include(../shared.md)\n",
		"shared.md":       "shared content\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "shared content\n" {
		t.Errorf("got %q", got)
	}
}

func TestResolveIncludesDiamondGraph(t *testing.T) {
	t.Parallel()

	// a and b both include common; that is sharing, not a cycle.
	dir := writeProject(t, map[string]string{
		"main.md":   "!include(a.md)\n!include(b.md)\n",
		"a.md":      "!include(common.md)\n",
		"b.md":      "!include(common.md)\n",
		"common.md": "common\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "common\ncommon\n" {
		t.Errorf("got %q", got)
	}
}

func TestResolveIncludesCycle(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"a.md": "!include(b.md)\n",
		"b.md": "!include(a.md)\n",
	})

	_, err := resolve(t, dir, "a.md")
	if !errors.Is(err, ErrCircularInclude) {
		t.Fatalf("error = %v, want ErrCircularInclude", err)
	}
}

func TestResolveIncludesSelfInclude(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"a.md": "!include(a.md)\n",
	})

	_, err := resolve(t, dir, "a.md")
	if !errors.Is(err, ErrCircularInclude) {
		t.Fatalf("error = %v, want ErrCircularInclude", err)
	}
}

func TestResolveIncludesMissingTarget(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "!include(nope.md)\n",
	})

	_, err := resolve(t, dir, "main.md")
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("error = %v, want ErrSourceNotFound", err)
	}
}

func TestResolveIncludesTraversalBlocked(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "!include(../../outside.md)\n",
	})

	_, err := resolve(t, dir, "main.md")
	if !errors.Is(err, ErrUnauthorizedAccess) {
		t.Fatalf("error = %v, want ErrUnauthorizedAccess", err)
	}
}

func TestResolveIncludesDirectives(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "!newpage\n!toc\n  !newpage  \n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := pageBreakHTML + "\n" + tocPlaceholder + "\n" + pageBreakHTML + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveIncludesWhitespaceAroundInclude(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "   !include(a.md)   \n",
		"a.md":    "included\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "included\n" {
		t.Errorf("got %q", got)
	}
}

func TestResolveIncludesDirectivesInsideFence(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "```\n!include(a.md)\n!newpage\n!toc\n```\n",
		"a.md":    "should not appear\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := "```\n!include(a.md)\n!newpage\n!toc\n```\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "should not appear") {
		t.Error("fenced include was expanded")
	}
}

func TestResolveIncludesDirectiveAfterClosedFence(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "```go\ncode\n```\n!newpage\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := "```go\ncode\n```\n" + pageBreakHTML + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveIncludesNormalizesCRLF(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"main.md": "line one\r\n!newpage\r\nline two\r\n",
	})

	got, err := resolve(t, dir, "main.md")
	if err != nil {
		t.Fatal(err)
	}
	want := "line one\n" + pageBreakHTML + "\nline two\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
