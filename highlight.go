package pdfbook

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// chromaHighlighter renders fenced code blocks with class-based markup so
// the color theme ships as a stylesheet instead of inline styles.
type chromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// newChromaHighlighter creates a highlighter for the named theme. An
// unknown theme name is a configuration error, reported before any
// rendering work starts.
func newChromaHighlighter(theme string) (*chromaHighlighter, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyntaxTheme, theme)
	}
	return &chromaHighlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

// Highlight renders code as highlighted HTML. An unrecognized language
// token falls back to the plain-text lexer.
func (h *chromaHighlighter) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: tokenizing %s code block: %v", ErrBuild, lang, err)
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", fmt.Errorf("%w: highlighting %s code block: %v", ErrBuild, lang, err)
	}

	return buf.String(), nil
}

// ThemeCSS emits the stylesheet matching the class-based highlight markup.
func (h *chromaHighlighter) ThemeCSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: generating syntax theme CSS: %v", ErrBuild, err)
	}
	return buf.String(), nil
}

// rewriteCodeBlocks replaces every <pre> holding a language-tagged <code>
// element with highlighted markup and returns the re-serialized body.
// Bodies without language-tagged code blocks pass through untouched.
func (h *chromaHighlighter) rewriteCodeBlocks(body string) (string, error) {
	if !strings.Contains(body, `class="language-`) {
		return body, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: parsing rendered HTML: %v", ErrBuild, err)
	}

	var rewriteErr error
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		if rewriteErr != nil {
			return
		}
		code := pre.Find(`code[class*="language-"]`).First()
		if code.Length() == 0 {
			return
		}

		highlighted, err := h.Highlight(code.Text(), languageToken(code))
		if err != nil {
			rewriteErr = err
			return
		}
		pre.ReplaceWithHtml(highlighted)
	})
	if rewriteErr != nil {
		return "", rewriteErr
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("%w: serializing highlighted HTML: %v", ErrBuild, err)
	}
	return out, nil
}

// languageToken extracts the language from a code element's language-*
// class, defaulting to "text".
func languageToken(code *goquery.Selection) string {
	class, ok := code.Attr("class")
	if !ok {
		return "text"
	}
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, "language-") {
			return strings.TrimPrefix(c, "language-")
		}
	}
	return "text"
}
