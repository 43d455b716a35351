package pdfbook

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hugobch/pdfbook/internal/assets"
)

// Defaults applied when Input fields are left empty.
const (
	DefaultSyntaxTheme = "github"
	DefaultTOCTitle    = "Table of Contents"
	defaultLanguage    = "en"
	defaultOutputName  = "book"
	defaultTimeout     = 60 * time.Second
)

// buildDirName is the output directory created under the project root.
const buildDirName = "build"

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Margins are PDF page margins in inches.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Input carries the parameters of one build invocation. The Builder reads
// it and never mutates it.
type Input struct {
	RootDir     string   // project root; the include sandbox boundary ("" = cwd)
	Source      string   // entry Markdown file, relative to RootDir
	Title       string   // document title
	Author      string   // author meta tag
	Language    string   // html lang attribute (default "en")
	Theme       string   // themes/<name>/style.css under RootDir
	SyntaxTheme string   // chroma style name (default "github")
	CustomCSS   string   // optional extra stylesheet path, relative to RootDir
	TOCTitle    string   // heading above the TOC (default "Table of Contents")
	OutputName  string   // output filename stem (default "book")
	Margins     *Margins // nil = 0.5in on all sides
}

// Builder assembles a Markdown project into one styled HTML document and
// optionally prints it to PDF. Builds are synchronous and never overlap;
// callers wanting repeated builds run them back to back.
type Builder struct {
	converter htmlConverter
	renderer  pdfRenderer
	progress  io.Writer
	timeout   time.Duration
}

// Option configures a Builder.
type Option func(*Builder)

// WithProgressOutput directs human-readable progress messages to w.
// By default progress is discarded.
func WithProgressOutput(w io.Writer) Option {
	return func(b *Builder) {
		b.progress = w
	}
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdfbook: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.timeout = d
	}
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		converter: newGoldmarkConverter(),
		progress:  io.Discard,
		timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(b)
	}

	// Create PDF renderer if not injected (e.g., by tests)
	if b.renderer == nil {
		b.renderer = newRodRenderer(b.timeout)
	}

	return b
}

// Close releases resources (the headless Chrome browser).
func (b *Builder) Close() error {
	if b.renderer != nil {
		return b.renderer.Close()
	}
	return nil
}

// BuildHTML assembles the project into a standalone HTML document and
// writes it under <root>/build. It returns the document and its path.
// Include-resolution errors abort the build with nothing written.
func (b *Builder) BuildHTML(ctx context.Context, in Input) (doc string, path string, err error) {
	root, err := b.projectRoot(in)
	if err != nil {
		return "", "", err
	}

	// Validate the syntax theme before any rendering work.
	highlighter, err := newChromaHighlighter(stringOr(in.SyntaxTheme, DefaultSyntaxTheme))
	if err != nil {
		return "", "", err
	}

	sourcePath, err := resolveWithinRoot(root, root, in.Source)
	if err != nil {
		return "", "", err
	}

	b.logf("Assembling %s", in.Source)
	merged, err := resolveIncludes(root, sourcePath, map[string]struct{}{})
	if err != nil {
		return "", "", err
	}

	body, err := b.converter.ToHTML(ctx, merged)
	if err != nil {
		return "", "", err
	}

	if strings.Contains(body, tocPlaceholder) {
		headings, err := extractHeadings(body)
		if err != nil {
			return "", "", err
		}
		toc := renderOutline(buildOutline(headings), stringOr(in.TOCTitle, DefaultTOCTitle))
		body = strings.ReplaceAll(body, tocPlaceholder, toc)
	}

	body, err = highlighter.rewriteCodeBlocks(body)
	if err != nil {
		return "", "", err
	}

	css, err := b.assembleCSS(root, in, highlighter)
	if err != nil {
		return "", "", err
	}

	doc = renderDocument(in, css, body)

	outDir := filepath.Join(root, buildDirName)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return "", "", fmt.Errorf("%w: creating %s: %v", ErrBuild, outDir, err)
	}

	path = filepath.Join(outDir, stringOr(in.OutputName, defaultOutputName)+".html")
	if err := os.WriteFile(path, []byte(doc), filePermissions); err != nil {
		return "", "", fmt.Errorf("%w: writing %s: %v", ErrBuild, path, err)
	}
	b.logf("HTML written to %s", path)

	return doc, path, nil
}

// Build runs the full pipeline: HTML composition, incremental asset copy,
// and PDF printing through headless Chrome via a loopback file server.
func (b *Builder) Build(ctx context.Context, in Input) error {
	_, htmlPath, err := b.BuildHTML(ctx, in)
	if err != nil {
		return err
	}

	root, err := b.projectRoot(in)
	if err != nil {
		return err
	}
	if err := CopyAssets(filepath.Join(root, "assets"), filepath.Join(root, buildDirName, "assets")); err != nil {
		return err
	}

	srv, err := newBuildServer(filepath.Join(root, buildDirName))
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	url := srv.URL() + "/" + filepath.Base(htmlPath)
	b.logf("Printing %s", url)
	pdf, err := b.renderer.RenderFromURL(ctx, url, in.Margins)
	if err != nil {
		return err
	}

	pdfPath := strings.TrimSuffix(htmlPath, ".html") + ".pdf"
	if err := os.WriteFile(pdfPath, pdf, filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrPDFGeneration, pdfPath, err)
	}
	b.logf("PDF written to %s", pdfPath)

	return nil
}

// assembleCSS concatenates theme CSS, syntax theme CSS, and optional custom
// CSS. A missing theme or custom stylesheet is never fatal: the theme falls
// back to the embedded default, the custom file is logged and skipped.
func (b *Builder) assembleCSS(root string, in Input, hl *chromaHighlighter) (string, error) {
	var css strings.Builder

	themePath := filepath.Join(root, "themes", in.Theme, "style.css")
	if data, err := os.ReadFile(themePath); err == nil { // #nosec G304 -- theme path derives from project config
		b.logf("Using theme stylesheet %s", themePath)
		css.Write(data)
	} else {
		if in.Theme != "" {
			b.logf("Theme stylesheet %s not found, using built-in default", themePath)
		}
		fallback, err := assets.LoadStyle("default")
		if err != nil {
			return "", fmt.Errorf("%w: loading default stylesheet: %v", ErrBuild, err)
		}
		css.WriteString(fallback)
	}

	syntaxCSS, err := hl.ThemeCSS()
	if err != nil {
		return "", err
	}
	css.WriteString("\n")
	css.WriteString(syntaxCSS)

	if in.CustomCSS != "" {
		customPath := in.CustomCSS
		if !filepath.IsAbs(customPath) {
			customPath = filepath.Join(root, customPath)
		}
		if data, err := os.ReadFile(customPath); err == nil { // #nosec G304 -- custom CSS path derives from project config
			b.logf("Using custom stylesheet %s", customPath)
			css.WriteString("\n\n/* Custom CSS */\n")
			css.Write(data)
		} else {
			b.logf("Custom stylesheet %s not found, ignored", customPath)
		}
	}

	return css.String(), nil
}

// renderDocument wraps body and CSS into a complete HTML5 document with
// charset, title and author metadata.
func renderDocument(in Input, css, body string) string {
	return fmt.Sprintf(
		`<!DOCTYPE html><html lang="%s"><head><meta charset="UTF-8"><title>%s</title><meta name="author" content="%s"><style>%s</style></head><body><main>%s</main></body></html>`,
		html.EscapeString(stringOr(in.Language, defaultLanguage)),
		html.EscapeString(in.Title),
		html.EscapeString(in.Author),
		sanitizeCSS(css),
		body,
	)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// projectRoot resolves the configured root directory to an absolute path.
func (b *Builder) projectRoot(in Input) (string, error) {
	root := in.RootDir
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolving project root: %v", ErrBuild, err)
	}
	return abs, nil
}

// logf writes a progress message to the configured writer.
func (b *Builder) logf(format string, args ...any) {
	fmt.Fprintf(b.progress, format+"\n", args...)
}

// stringOr returns s, or fallback when s is empty.
func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
