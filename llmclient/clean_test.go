package llmclient

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty_string",
			input: "",
			want:  "",
		},
		{
			name:  "paired_think_tags",
			input: "<think>Let me think about this...</think>The answer is 4.",
			want:  "The answer is 4.",
		},
		{
			name:  "paired_thinking_tags_with_markdown",
			input: "<thinking>2 + 2 = 4 because...</thinking>\n\n**The answer is 4**",
			want:  "**The answer is 4**",
		},
		{
			name:  "multiple_spans_left_to_right",
			input: "<think>First thought</think>Some content<think>Second thought</think>More content",
			want:  "Some content More content",
		},
		{
			name:  "mixed_case_tags",
			input: "<THINK>uppercase</THINK>Content<Think>mixed</Think>Final",
			want:  "Content Final",
		},
		{
			name:  "mismatched_spellings_pair_up",
			input: "Some content <think> orphaned content </thinking> more content",
			want:  "Some content more content",
		},
		{
			name:  "thinking_opened_think_closed",
			input: "<thinking>working...</think>Result",
			want:  "Result",
		},
		{
			name:  "orphaned_closing_tag",
			input: "answer is 7</think> as shown",
			want:  "answer is 7 as shown",
		},
		{
			name:  "orphaned_opening_tag_keeps_following_text",
			input: "Before <think>after the tag",
			want:  "Before after the tag",
		},
		{
			name:  "span_across_lines",
			input: "intro\n<think>line one\nline two</think>\noutro",
			want:  "intro\n\noutro",
		},
		{
			name:  "only_tags",
			input: "<think></think>",
			want:  "",
		},
		{
			name:  "no_insertion_after_heading",
			input: "# Math Problem\nHere's a problem",
			want:  "# Math Problem\nHere's a problem",
		},
		{
			name:  "blank_line_before_heading",
			input: "Some text\n# Heading",
			want:  "Some text\n\n# Heading",
		},
		{
			name:  "numbered_list_after_prose",
			input: "Final answer\n1. Step one",
			want:  "Final answer\n\n1. Step one",
		},
		{
			name:  "consecutive_bullets_stay_adjacent",
			input: "- A\n- B",
			want:  "- A\n- B",
		},
		{
			name:  "consecutive_numbered_items_stay_adjacent",
			input: "1. one\n2. two",
			want:  "1. one\n2. two",
		},
		{
			name:  "list_after_heading_gets_blank_line",
			input: "# Steps\n- first",
			want:  "# Steps\n\n- first",
		},
		{
			name:  "existing_blank_line_not_duplicated",
			input: "Some prose\n\n- item",
			want:  "Some prose\n\n- item",
		},
		{
			name:  "runs_of_spaces_and_tabs_collapse",
			input: "a  \t b\tc",
			want:  "a b c",
		},
		{
			name:  "excess_blank_lines_collapse",
			input: "para one\n\n\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "blank_lines_with_interspersed_whitespace",
			input: "para one\n  \n\t\n \npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "leading_and_trailing_whitespace_trimmed",
			input: "  \n hello \n  ",
			want:  "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// The corpus below feeds the invariant checks: whatever the input, cleaned
// output must carry no reasoning tags, no triple newlines, and no doubled
// interior spaces.
var cleanCorpus = []string{
	"",
	"plain text",
	"<think>a</think>b<thinking>c</thinking>d",
	"<THINKING>\nmultiline\nreasoning\n</THINK>## Result\n1. a\n2. b",
	"no tags   but \t messy \n\n\n\n whitespace",
	"<think>unclosed span with trailing text",
	"</thinking> stray closer",
	"deep <think>one<think>two</think> interleaved </think> tail",
	"# h1\n## h2\ntext\n- a\n- b\n1. c\nprose",
}

func TestCleanRemovesAllReasoningTags(t *testing.T) {
	tags := []string{"<think>", "</think>", "<thinking>", "</thinking>"}
	for _, input := range cleanCorpus {
		got := strings.ToLower(Clean(input))
		for _, tag := range tags {
			if strings.Contains(got, tag) {
				t.Errorf("Clean(%q) left tag %q in output %q", input, tag, got)
			}
		}
	}
}

func TestCleanWhitespaceInvariants(t *testing.T) {
	for _, input := range cleanCorpus {
		got := Clean(input)
		if strings.Contains(got, "\n\n\n") {
			t.Errorf("Clean(%q) produced 3+ consecutive newlines: %q", input, got)
		}
		for _, line := range strings.Split(got, "\n") {
			if strings.Contains(line, "  ") {
				t.Errorf("Clean(%q) produced doubled spaces in line %q", input, line)
			}
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("Clean(%q) output not trimmed: %q", input, got)
		}
	}
}

func TestCleanIdempotentOnTaglessText(t *testing.T) {
	for _, input := range cleanCorpus {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
