package llmclient

import (
	"regexp"
	"strings"
)

var (
	// reasoningTagRe matches opening and closing reasoning-scaffold tags in
	// either spelling, any case.
	reasoningTagRe = regexp.MustCompile(`(?i)</?think(?:ing)?>`)
	horizontalWSRe = regexp.MustCompile(`[ \t]+`)
	excessBlanksRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
	numberedItemRe = regexp.MustCompile(`^\d+\.`)
)

// Clean strips reasoning-model scaffolding from raw LLM output and
// normalizes the remainder into evenly spaced markdown. Reasoning models
// wrap their deliberation in <think> or <thinking> spans (and are sloppy
// about which spelling closes which), none of which belongs in a response
// shown to a student.
//
// Clean is total: it never fails, has no side effects, and returns the
// empty string unchanged.
func Clean(text string) string {
	if text == "" {
		return text
	}

	text = stripReasoningSpans(text)

	// Collapse runs of spaces/tabs without touching line structure, then
	// squeeze any run of 3+ newlines down to a single blank line.
	text = horizontalWSRe.ReplaceAllString(text, " ")
	text = excessBlanksRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return reflowBlocks(text)
}

// stripReasoningSpans removes every reasoning span in one left-to-right
// pass. An opening tag pairs with the nearest later closing tag of either
// spelling; tags do not nest, so an opening tag inside a span is swallowed
// with the span. Orphans (an opening tag with no later closing tag, or a
// closing tag outside any span) are dropped individually. Each removal
// leaves a single space so the surrounding words do not fuse.
func stripReasoningSpans(text string) string {
	locs := reasoningTagRe.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	inSpan := false
	for i, loc := range locs {
		start, end := loc[0], loc[1]
		closing := text[start+1] == '/'

		if inSpan {
			if closing {
				inSpan = false
				pos = end
			}
			continue
		}

		b.WriteString(text[pos:start])
		b.WriteByte(' ')
		pos = end
		if !closing && hasClosingTagAfter(text, locs, i) {
			inSpan = true
		}
	}
	b.WriteString(text[pos:])
	return b.String()
}

func hasClosingTagAfter(text string, locs [][]int, i int) bool {
	for _, loc := range locs[i+1:] {
		if text[loc[0]+1] == '/' {
			return true
		}
	}
	return false
}

// reflowBlocks trims every line and inserts blank lines so headings and
// list items render as their own markdown blocks: a heading gets a blank
// line before it, and a list gets a blank line separating it from
// preceding prose while consecutive list items stay adjacent. Decisions
// are made against the already-rebuilt output, so blank lines carried over
// from the input satisfy the separation on their own.
func reflowBlocks(text string) string {
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			formatted = append(formatted, "")
			continue
		}

		if i > 0 && len(formatted) > 0 && formatted[len(formatted)-1] != "" {
			prev := formatted[len(formatted)-1]
			switch {
			case strings.HasPrefix(line, "#"):
				formatted = append(formatted, "")
			case isListItem(line) && !isListItem(prev):
				formatted = append(formatted, "")
			}
		}

		formatted = append(formatted, line)
	}

	return strings.TrimSpace(strings.Join(formatted, "\n"))
}

func isListItem(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '-', '*', '+':
		return true
	}
	return numberedItemRe.MatchString(line)
}
