package format

import "github.com/gomarkdown/markdown"

// ToHTML renders cleaned markdown into HTML for clients that request the
// html response format.
func ToHTML(md string) string {
	if md == "" {
		return ""
	}
	return string(markdown.ToHTML([]byte(md), nil, nil))
}
