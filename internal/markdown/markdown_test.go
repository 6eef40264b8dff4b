package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasic(t *testing.T) {
	out, err := ToHTML("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected an h1 element, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold text, got %q", out)
	}
}

func TestToHTMLGFMTable(t *testing.T) {
	src := "| A | B |\n|---|---|\n| 1 | 2 |"
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected a table element, got %q", out)
	}
}

func TestToHTMLRawHTMLPassthrough(t *testing.T) {
	src := "<p class=\"legacy\">Existing HTML content</p>"
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, `<p class="legacy">Existing HTML content</p>`) {
		t.Errorf("raw HTML was not passed through, got %q", out)
	}
}

func TestToHTMLCodeHighlighting(t *testing.T) {
	src := "```go\nfunc main() {}\n```"
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// Chroma emits a pre block with inline styles for the monokai theme.
	if !strings.Contains(out, "<pre") {
		t.Errorf("expected highlighted code block, got %q", out)
	}
}

func TestToHTMLHeadingIDs(t *testing.T) {
	out, err := ToHTML("## Section Title")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, `id="section-title"`) {
		t.Errorf("expected auto heading id, got %q", out)
	}
}
