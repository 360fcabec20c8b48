package prompts

import (
	_ "embed"
	"strconv"
	"strings"
)

// Embedded tutor persona prompt files

//go:embed rewrite_system.txt
var rewriteSystem string

//go:embed answer_system.txt
var answerSystem string

//go:embed explanation_system.txt
var explanationSystem string

//go:embed chat_system.txt
var chatSystem string

//go:embed encouragement_system.txt
var encouragementSystem string

//go:embed minigame_system.txt
var minigameSystem string

//go:embed minigame_user.txt
var minigameUser string

func RewriteSystem() string     { return strings.TrimSpace(rewriteSystem) }
func AnswerSystem() string      { return strings.TrimSpace(answerSystem) }
func ExplanationSystem() string { return strings.TrimSpace(explanationSystem) }
func ChatSystem() string        { return strings.TrimSpace(chatSystem) }

// EncouragementSystem returns the encouragement persona themed for the quiz.
func EncouragementSystem(theme string) string {
	return strings.NewReplacer("{{THEME}}", theme).Replace(strings.TrimSpace(encouragementSystem))
}

// MinigameSystem returns the minigame-builder persona for the given theme,
// age, and the user's game idea.
func MinigameSystem(theme string, age int, gamePrompt string) string {
	return strings.NewReplacer(
		"{{THEME}}", theme,
		"{{AGE}}", strconv.Itoa(age),
		"{{GAME_PROMPT}}", gamePrompt,
	).Replace(strings.TrimSpace(minigameSystem))
}

// MinigameUser returns the user-side minigame request with the formatted
// question list substituted in.
func MinigameUser(questions, gamePrompt, theme string, age int) string {
	return strings.NewReplacer(
		"{{QUESTIONS}}", questions,
		"{{GAME_PROMPT}}", gamePrompt,
		"{{THEME}}", theme,
		"{{AGE}}", strconv.Itoa(age),
	).Replace(strings.TrimSpace(minigameUser))
}
