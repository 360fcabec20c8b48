package handlers

import (
	"context"

	"go.uber.org/zap"

	"math-buddy/config"
	"math-buddy/imagegen"
	"math-buddy/quiz"
	"math-buddy/web/types"
)

// TutorService is the slice of the LLM service the handlers consume.
type TutorService interface {
	RewriteQuestion(ctx context.Context, question, theme string, age int) (string, error)
	Chat(ctx context.Context, message string, history []types.AgentMessage) (string, error)
	ChatWithContext(ctx context.Context, message string, history []types.AgentMessage, qctx *types.QuestionContext) (string, error)
	GenerateExplanation(ctx context.Context, question, correctAnswer string) (string, error)
	GenerateEncouragement(ctx context.Context, prompt, theme string) (string, error)
	GenerateMinigameHTML(ctx context.Context, questions []types.MinigameQuestion, gamePrompt, theme string, age int) (string, error)
	RewriteWithAnswer(ctx context.Context, question, theme string, age int) types.RewrittenQuestion
}

// ImageGenerator produces themed illustrations; failures come back in-band
// as a Result status.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, theme, format string) imagegen.Result
}

type Handler struct {
	cfg    *config.Config
	tutor  TutorService
	images ImageGenerator
	store  *quiz.Store
	logger *zap.Logger
}

func New(cfg *config.Config, tutor TutorService, images ImageGenerator, store *quiz.Store, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		tutor:  tutor,
		images: images,
		store:  store,
		logger: logger,
	}
}

const (
	defaultTheme = "Space Pirates"
	defaultAge   = 10
)
