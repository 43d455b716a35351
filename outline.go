package pdfbook

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// heading is one rendered heading, in document order.
type heading struct {
	Level     int    // 1-6
	Title     string // flattened text content, trimmed
	InSection bool   // true when the heading sits inside a <section> wrapper
}

// outlineNode is one entry of the nested document outline.
// Children always carry a numerically greater level than their parent and
// keep document order.
type outlineNode struct {
	Level    int
	Title    string
	Children []*outlineNode
}

// extractHeadings scans rendered HTML for h1-h6 elements in document order.
// Inline markup inside a heading is flattened to plain text; headings whose
// text trims to empty are dropped.
func extractHeadings(htmlContent string) ([]heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing rendered HTML: %v", ErrBuild, err)
	}

	var headings []heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err != nil || level < 1 || level > 6 {
			return
		}
		title := strings.TrimSpace(s.Text())
		if title == "" {
			return
		}
		headings = append(headings, heading{
			Level:     level,
			Title:     title,
			InSection: s.ParentsFiltered("section").Length() > 0,
		})
	})

	return headings, nil
}

// buildOutline converts the flat heading sequence into a forest using a
// stack of open nodes. For each heading, nodes at the same or deeper level
// are popped and attached to the new stack top (or the forest when the
// stack empties), then the heading is pushed. The result tolerates
// non-monotonic and gap-containing level sequences: a level-3 heading with
// no enclosing level-2 becomes a top-level sibling.
func buildOutline(headings []heading) []*outlineNode {
	var forest []*outlineNode
	var stack []*outlineNode

	attach := func(n *outlineNode) {
		if len(stack) == 0 {
			forest = append(forest, n)
			return
		}
		top := stack[len(stack)-1]
		top.Children = append(top.Children, n)
	}

	for _, h := range headings {
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			attach(n)
		}
		stack = append(stack, &outlineNode{Level: h.Level, Title: h.Title})
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		attach(n)
	}

	return forest
}

// renderOutline serializes the forest as nested markup. Each node becomes
// one entry carrying a level-derived class and its title, followed by its
// children in order. An empty forest yields an empty string: no headings
// means no TOC wrapper at all.
func renderOutline(forest []*outlineNode, title string) string {
	if len(forest) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("<div class=\"toc\">\n")
	buf.WriteString(`<div class="toc-title">`)
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</div>\n")
	buf.WriteString(`<div class="toc-content">`)
	for _, n := range forest {
		renderOutlineNode(&buf, n)
	}
	buf.WriteString("</div>\n</div>")

	return buf.String()
}

// renderOutlineNode writes one entry and recurses into its children.
func renderOutlineNode(buf *strings.Builder, n *outlineNode) {
	fmt.Fprintf(buf,
		"\n"+`<div class="toc-entry toc-entry-h%d"><span class="toc-entry-title">%s</span><span class="toc-entry-dots"></span></div>`,
		n.Level, html.EscapeString(n.Title))

	for _, c := range n.Children {
		renderOutlineNode(buf, c)
	}
}
