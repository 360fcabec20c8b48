package quiz

import (
	"regexp"
	"strings"
)

var numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// ParseQuestions extracts individual questions from uploaded text. Files
// with numbered lines ("1. ...", "2) ...") are parsed as a numbered list
// with unnumbered continuation lines folded into the preceding question;
// anything else is treated as one question per non-empty line. Lines
// starting with # or // are skipped as comments either way.
func ParseQuestions(text string) []string {
	if hasNumberedLines(text) {
		return parseNumbered(text)
	}
	return parsePlain(text)
}

func hasNumberedLines(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if numberedLineRe.MatchString(line) {
			return true
		}
	}
	return false
}

func parseNumbered(text string) []string {
	var questions []string
	var current strings.Builder

	flush := func() {
		if q := strings.TrimSpace(current.String()); q != "" {
			questions = append(questions, q)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		if m := numberedLineRe.FindStringSubmatch(line); m != nil {
			flush()
			current.WriteString(strings.TrimSpace(m[1]))
			continue
		}
		// Continuation of a multi-line question
		if current.Len() > 0 {
			current.WriteString(" ")
			current.WriteString(trimmed)
		}
	}
	flush()
	return questions
}

func parsePlain(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		questions = append(questions, trimmed)
	}
	return questions
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}
