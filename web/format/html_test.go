package format

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	got := ToHTML("# Heading\n\nSome **bold** text\n\n- item")
	for _, want := range []string{"<h1", "Heading", "<strong>bold</strong>", "<li>item</li>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML output missing %q:\n%s", want, got)
		}
	}
}

func TestToHTMLEmpty(t *testing.T) {
	if got := ToHTML(""); got != "" {
		t.Errorf("ToHTML(\"\") = %q, want empty", got)
	}
}
