package quiz

import (
	"strconv"
	"strings"
)

// answerTolerance absorbs float formatting differences like "0.5" vs "0.50".
const answerTolerance = 0.01

// CheckAnswer decides whether a student's answer matches the correct one.
// When both parse as numbers they are compared within a small tolerance;
// otherwise comparison is case-insensitive on trimmed text.
func CheckAnswer(userAnswer, correctAnswer string) bool {
	user := strings.TrimSpace(userAnswer)
	correct := strings.TrimSpace(correctAnswer)

	uf, uerr := strconv.ParseFloat(user, 64)
	cf, cerr := strconv.ParseFloat(correct, 64)
	if uerr == nil && cerr == nil {
		diff := uf - cf
		if diff < 0 {
			diff = -diff
		}
		return diff < answerTolerance
	}

	return strings.EqualFold(user, correct)
}
