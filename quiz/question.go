package quiz

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jdkato/prose/v2"
)

// Question is one quiz item with everything the tutor produced for it.
type Question struct {
	ID            string
	Original      string
	Rewritten     string
	CorrectAnswer string
	Explanation   string
	ImageURL      string
	Theme         string
	Topic         string
}

// NewQuestion builds a question from its original text, inferring the math
// topic from the wording.
func NewQuestion(original string) *Question {
	return &Question{
		ID:       uuid.NewString(),
		Original: original,
		Topic:    InferTopic(original),
	}
}

// topicKeywords maps a topic to the words and symbols that signal it. Word
// entries are matched against tokens by prefix so "adding" and "addition"
// both hit; symbol and phrase entries are matched as substrings because
// tokenizers split them unpredictably.
var topicKeywords = []struct {
	topic   string
	words   []string
	symbols []string
}{
	{"addition", []string{"add", "plus", "sum", "total", "altogether", "combine"}, []string{"+"}},
	{"subtraction", []string{"subtract", "minus", "difference", "take", "left", "remain", "fewer"}, []string{"-"}},
	{"multiplication", []string{"multipl", "times", "product", "twice", "double", "triple"}, []string{"*", "×", "each"}},
	{"division", []string{"divid", "division", "quotient", "share", "split", "half"}, []string{"/", "÷"}},
	{"fractions", []string{"fraction", "numerator", "denominator", "quarter", "third"}, []string{"/"}},
	{"percentages", []string{"percent", "percentage"}, []string{"%", "per cent"}},
}

// InferTopic classifies a question into a broad math topic. Unknown
// wording falls back to "arithmetic".
func InferTopic(text string) string {
	lower := strings.ToLower(text)

	var tokens []string
	doc, err := prose.NewDocument(lower,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err == nil {
		for _, tok := range doc.Tokens() {
			tokens = append(tokens, tok.Text)
		}
	} else {
		tokens = strings.Fields(lower)
	}

	for _, tk := range topicKeywords {
		if matchesTopic(lower, tokens, tk.words, tk.symbols) {
			return tk.topic
		}
	}
	return "arithmetic"
}

func matchesTopic(lower string, tokens, words, symbols []string) bool {
	for _, tok := range tokens {
		for _, w := range words {
			if strings.HasPrefix(tok, w) {
				return true
			}
		}
	}
	for _, sym := range symbols {
		if strings.Contains(lower, sym) {
			return true
		}
	}
	return false
}
