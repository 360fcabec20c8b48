package llmclient

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"math-buddy/config"
	apperrors "math-buddy/errors"
	"math-buddy/prompts"
	"math-buddy/web/types"

	"go.uber.org/zap"
)

// Temperatures per persona. Answer generation runs cold for consistency;
// creative personas run warmer.
const (
	tempRewrite       = 0.7
	tempAnswer        = 0.1
	tempExplanation   = 0.7
	tempChat          = 0.7
	tempEncouragement = 0.8
	tempMinigame      = 0.8
)

// Service exposes the tutor-level operations the handlers need. Every
// operation returns cleaned text. In mock mode (no token, no local model)
// it answers deterministically so the frontend can be developed offline.
type Service struct {
	cfg    *config.Config
	client *Client
	logger *zap.Logger
}

func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		cfg:    cfg,
		client: New(cfg, logger),
		logger: logger,
	}
}

// complete dispatches a system+user prompt pair to whichever backend is
// configured.
func (s *Service) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if s.cfg.UseLocalLLM {
		return s.client.Generate(ctx, userPrompt, systemPrompt)
	}
	messages := []types.AgentMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	return s.client.ChatCompletion(ctx, messages, temperature)
}

// RewriteQuestion rewrites a math question in the requested theme for the
// student's age. Cloud failures degrade to a mock rewrite rather than
// failing the request.
func (s *Service) RewriteQuestion(ctx context.Context, question, theme string, age int) (string, error) {
	if s.cfg.MockLLM() {
		return fmt.Sprintf("[Mock] %s with theme %s", question, theme), nil
	}

	prompt := fmt.Sprintf("Rewrite this math question with theme '%s' for age %d: %s", theme, age, question)
	if s.cfg.UseLocalLLM {
		result, err := s.client.Generate(ctx, prompt, prompts.RewriteSystem())
		if err != nil {
			return "", apperrors.WrapError(apperrors.ErrLLMCommunication, err.Error())
		}
		return result, nil
	}

	result, err := s.complete(ctx, prompts.RewriteSystem(), prompt, tempRewrite)
	if err != nil {
		s.logger.Error("Rewrite failed, falling back to mock", zap.Error(err))
		return fmt.Sprintf("[Mock Fallback] %s with theme %s", question, theme), nil
	}
	return result, nil
}

// GenerateAnswer produces the correct answer for a math question. On
// failure it returns an in-band error marker, matching the degraded
// per-question behavior quiz upload expects.
func (s *Service) GenerateAnswer(ctx context.Context, question string) (string, error) {
	if s.cfg.MockLLM() {
		return "42", nil
	}

	prompt := fmt.Sprintf("What is the correct answer to this math question: %s", question)
	result, err := s.complete(ctx, prompts.AnswerSystem(), prompt, tempAnswer)
	if err != nil {
		s.logger.Error("Answer generation failed", zap.Error(err))
		return "Error generating answer", nil
	}
	return strings.TrimSpace(result), nil
}

// GenerateExplanation produces a step-by-step explanation for a question
// given its correct answer.
func (s *Service) GenerateExplanation(ctx context.Context, question, correctAnswer string) (string, error) {
	if s.cfg.MockLLM() {
		return fmt.Sprintf("[Mock] Here's how to solve: %s = %s", question, correctAnswer), nil
	}

	prompt := fmt.Sprintf("Explain step by step how to solve this math problem:\nQuestion: %s\nCorrect Answer: %s", question, correctAnswer)
	result, err := s.complete(ctx, prompts.ExplanationSystem(), prompt, tempExplanation)
	if err != nil {
		s.logger.Error("Explanation generation failed", zap.Error(err))
		return "Unable to generate explanation", nil
	}
	return result, nil
}

// Chat answers a free-form student message with the Math Buddy persona.
func (s *Service) Chat(ctx context.Context, message string, history []types.AgentMessage) (string, error) {
	return s.chat(ctx, prompts.ChatSystem(), message, history)
}

// ChatWithContext is Chat with the question the student got wrong folded
// into the persona, so the tutor can address the specific mistake.
func (s *Service) ChatWithContext(ctx context.Context, message string, history []types.AgentMessage, qctx *types.QuestionContext) (string, error) {
	systemPrompt := prompts.ChatSystem()
	if qctx != nil {
		var b strings.Builder
		b.WriteString(systemPrompt)
		b.WriteString("\n\nContext: The student is asking about this math problem:\n")
		fmt.Fprintf(&b, "Original Question: %s\n", qctx.Original)
		fmt.Fprintf(&b, "Themed Question: %s\n", qctx.Rewritten)
		fmt.Fprintf(&b, "Correct Answer: %s\n", qctx.Answer)
		fmt.Fprintf(&b, "Student's Answer: %s\n", qctx.UserAnswer)
		b.WriteString("Help them understand where they went wrong and guide them to the correct solution.")
		systemPrompt = b.String()
	}
	return s.chat(ctx, systemPrompt, message, history)
}

func (s *Service) chat(ctx context.Context, systemPrompt, message string, history []types.AgentMessage) (string, error) {
	if s.cfg.MockLLM() {
		return "[Mock] Let's solve it together!", nil
	}

	if s.cfg.UseLocalLLM {
		// Ollama's generate endpoint takes a single prompt, so the history
		// is flattened into a transcript.
		var conversation strings.Builder
		for _, msg := range history {
			fmt.Fprintf(&conversation, "%s: %s\n", capitalize(msg.Role), msg.Content)
		}
		fmt.Fprintf(&conversation, "User: %s\nAssistant:", message)
		result, err := s.client.Generate(ctx, conversation.String(), systemPrompt)
		if err != nil {
			return "", apperrors.WrapError(apperrors.ErrLLMCommunication, err.Error())
		}
		return result, nil
	}

	messages := make([]types.AgentMessage, 0, len(history)+2)
	messages = append(messages, types.AgentMessage{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, types.AgentMessage{Role: "user", Content: message})

	result, err := s.client.ChatCompletion(ctx, messages, tempChat)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrLLMCommunication, err.Error())
	}
	return result, nil
}

// GenerateEncouragement creates a short themed cheer for quiz results.
func (s *Service) GenerateEncouragement(ctx context.Context, prompt, theme string) (string, error) {
	if s.cfg.MockLLM() {
		return fmt.Sprintf("[Mock] Great job! You're a %s champion! 🌟", theme), nil
	}

	result, err := s.complete(ctx, prompts.EncouragementSystem(theme), prompt, tempEncouragement)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrLLMCommunication, err.Error())
	}
	return result, nil
}

// GenerateMinigameHTML asks the model for a self-contained HTML game built
// on the quiz questions. Failures fall back to a static themed page so the
// frontend always has something to render.
func (s *Service) GenerateMinigameHTML(ctx context.Context, questions []types.MinigameQuestion, gamePrompt, theme string, age int) (string, error) {
	if s.cfg.MockLLM() {
		return fallbackMinigameHTML(theme, gamePrompt, age), nil
	}

	// First three questions keep the generated game simple.
	if len(questions) > 3 {
		questions = questions[:3]
	}
	var list strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&list, "Math Problem %d: %s - %s (Answer: %s)\n", i+1, q.Topic, q.Rewritten, q.Answer)
	}

	systemPrompt := prompts.MinigameSystem(theme, age, gamePrompt)
	userPrompt := prompts.MinigameUser(strings.TrimRight(list.String(), "\n"), gamePrompt, theme, age)

	result, err := s.complete(ctx, systemPrompt, userPrompt, tempMinigame)
	if err != nil {
		s.logger.Error("Minigame generation failed, using fallback page", zap.Error(err))
		return fallbackMinigameHTML(theme, gamePrompt, age), nil
	}
	return result, nil
}

// RewriteWithAnswer produces the rewrite, answer, and explanation for one
// uploaded question. Rewrite and answer run concurrently; the explanation
// needs the answer and runs after. Any failure degrades to error-marker
// content so one bad question does not sink a whole quiz upload.
func (s *Service) RewriteWithAnswer(ctx context.Context, question, theme string, age int) types.RewrittenQuestion {
	if s.cfg.MockLLM() {
		return types.RewrittenQuestion{
			Rewritten:   fmt.Sprintf("[Mock] %s with theme %s", question, theme),
			Answer:      "42",
			Explanation: fmt.Sprintf("[Mock] Here's how to solve this %s-themed problem!", theme),
		}
	}

	var (
		wg                     sync.WaitGroup
		rewritten, answer      string
		rewriteErr, answerErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rewritten, rewriteErr = s.RewriteQuestion(ctx, question, theme, age)
	}()
	go func() {
		defer wg.Done()
		answer, answerErr = s.GenerateAnswer(ctx, question)
	}()
	wg.Wait()

	if rewriteErr != nil || answerErr != nil {
		s.logger.Error("Question processing failed",
			zap.NamedError("rewrite_error", rewriteErr),
			zap.NamedError("answer_error", answerErr))
		return types.RewrittenQuestion{
			Rewritten:   fmt.Sprintf("[Error] %s", question),
			Answer:      "Error",
			Explanation: "Unable to generate explanation",
		}
	}

	explanation, err := s.GenerateExplanation(ctx, question, answer)
	if err != nil {
		s.logger.Error("Explanation failed for question", zap.Error(err))
		explanation = "Unable to generate explanation"
	}

	return types.RewrittenQuestion{
		Rewritten:   rewritten,
		Answer:      strings.TrimSpace(answer),
		Explanation: explanation,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fallbackMinigameHTML(theme, gamePrompt string, age int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%[1]s Math Fun</title>
<style>
body { font-family: 'Comic Sans MS', Arial, sans-serif; text-align: center; background: linear-gradient(to bottom, #87CEEB, #98FB98); padding: 20px; }
.game-box { max-width: 500px; margin: 0 auto; background: white; border-radius: 20px; padding: 30px; border: 5px solid #FFD700; }
.big-button { padding: 20px 40px; font-size: 24px; background: #4CAF50; color: white; border: none; border-radius: 15px; cursor: pointer; margin: 15px; min-height: 60px; font-weight: bold; }
.instruction { background: #FFF9C4; border: 3px solid #FFD54F; border-radius: 15px; padding: 20px; margin: 20px 0; font-size: 18px; }
</style>
</head>
<body>
<div class="game-box">
<h1>🎮 %[1]s Math Fun!</h1>
<div class="instruction"><strong>📝 Your Game Idea:</strong><br>%[2]s</div>
<p>🌟 <strong>Made for age %[3]d</strong> 🌟</p>
<button class="big-button" onclick="alert('🎮 How to Play:\n1. Read the question\n2. Click your answer\n3. Have fun learning math!')">❓ How to Play</button>
</div>
</body>
</html>`, theme, gamePrompt, age)
}
