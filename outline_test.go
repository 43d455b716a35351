package pdfbook

import (
	"strings"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	html := `
<h1>Intro</h1>
<p>text</p>
<h2>Getting <em>Started</em></h2>
<h3>   </h3>
<section><h2>Inside</h2></section>
<h6>Deep</h6>
`
	got, err := extractHeadings(html)
	if err != nil {
		t.Fatal(err)
	}

	want := []heading{
		{Level: 1, Title: "Intro"},
		{Level: 2, Title: "Getting Started"},
		{Level: 2, Title: "Inside", InSection: true},
		{Level: 6, Title: "Deep"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExtractHeadingsNone(t *testing.T) {
	t.Parallel()

	got, err := extractHeadings("<p>no headings here</p>")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d headings, want 0", len(got))
	}
}

// titles flattens a forest into "title(child child)" notation for
// structural comparison.
func titles(forest []*outlineNode) string {
	var parts []string
	for _, n := range forest {
		s := n.Title
		if len(n.Children) > 0 {
			s += "(" + titles(n.Children) + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func TestBuildOutline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headings []heading
		want     string
	}{
		{
			name: "descend then return",
			headings: []heading{
				{Level: 1, Title: "A"},
				{Level: 2, Title: "B"},
				{Level: 3, Title: "C"},
				{Level: 2, Title: "D"},
			},
			want: "A(B(C) D)",
		},
		{
			name: "starts deep then rises",
			headings: []heading{
				{Level: 3, Title: "A"},
				{Level: 2, Title: "B"},
				{Level: 3, Title: "C"},
			},
			want: "A B(C)",
		},
		{
			name: "level gap",
			headings: []heading{
				{Level: 1, Title: "A"},
				{Level: 3, Title: "B"},
				{Level: 2, Title: "C"},
			},
			want: "A(B C)",
		},
		{
			name: "same level siblings",
			headings: []heading{
				{Level: 2, Title: "A"},
				{Level: 2, Title: "B"},
				{Level: 2, Title: "C"},
			},
			want: "A B C",
		},
		{
			name:     "empty input",
			headings: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := titles(buildOutline(tt.headings))
			if got != tt.want {
				t.Errorf("buildOutline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOutline(t *testing.T) {
	t.Parallel()

	forest := buildOutline([]heading{
		{Level: 1, Title: "Intro"},
		{Level: 2, Title: "Tags & <Attrs>"},
	})

	got := renderOutline(forest, "Contents")

	for _, want := range []string{
		`<div class="toc">`,
		`<div class="toc-title">Contents</div>`,
		`<div class="toc-content">`,
		`<div class="toc-entry toc-entry-h1"><span class="toc-entry-title">Intro</span><span class="toc-entry-dots"></span></div>`,
		`toc-entry-h2`,
		`Tags &amp; &lt;Attrs&gt;`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if strings.Index(got, "Intro") > strings.Index(got, "Tags") {
		t.Error("entries out of document order")
	}
}

func TestRenderOutlineEmpty(t *testing.T) {
	t.Parallel()

	if got := renderOutline(nil, "Contents"); got != "" {
		t.Errorf("renderOutline(nil) = %q, want empty string", got)
	}
}
