package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "math-buddy/errors"
	"math-buddy/quiz"
	"math-buddy/web/format"
	"math-buddy/web/types"
)

// UploadQuiz handles POST /api/upload-quiz. The multipart upload carries a
// .txt or .pdf file of math questions plus optional theme and age form
// fields; every parsed question is rewritten, answered, explained, and
// illustrated, and the resulting quiz session is stored for later
// submission.
func (h *Handler) UploadQuiz(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".txt" && ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .txt and .pdf files are supported"})
		return
	}

	theme := c.DefaultPostForm("theme", defaultTheme)
	age := defaultAge
	if raw := c.PostForm("age"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			age = parsed
		}
	}

	tmp, err := os.CreateTemp("", "quiz-upload-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}

	text, err := readQuestionFile(tmpPath, ext)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsInvalidInput(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	questions := quiz.ParseQuestions(text)
	if len(questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no questions found in file"})
		return
	}

	session := quiz.NewSession(theme, age)
	for _, original := range questions {
		q := quiz.NewQuestion(original)
		q.Theme = theme

		result := h.tutor.RewriteWithAnswer(c.Request.Context(), original, theme, age)
		q.Rewritten = result.Rewritten
		q.CorrectAnswer = result.Answer
		q.Explanation = result.Explanation

		if img := h.images.Generate(c.Request.Context(), q.Rewritten, theme, ""); img.Status == "success" {
			q.ImageURL = img.ImageURL
		}

		session.AddQuestion(q)
	}
	h.store.Put(session)

	h.logger.Info("Quiz created",
		zap.String("quiz_id", session.QuizID),
		zap.String("theme", theme),
		zap.Int("questions", session.Total()))

	c.JSON(http.StatusOK, quizDataFromSession(session))
}

func readQuestionFile(path, ext string) (string, error) {
	if ext == ".pdf" {
		return quiz.ExtractPDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func quizDataFromSession(s *quiz.Session) types.QuizData {
	data := types.QuizData{
		QuizID: s.QuizID,
		Theme:  s.Theme,
		Age:    s.Age,
	}
	for _, q := range s.Questions() {
		data.Questions = append(data.Questions, types.QuizQuestion{
			ID:            q.ID,
			Original:      q.Original,
			Rewritten:     q.Rewritten,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			ImageURL:      q.ImageURL,
			Theme:         q.Theme,
			Topic:         q.Topic,
		})
	}
	return data
}

// SubmitQuiz handles POST /api/submit-quiz: it scores the submitted
// answers, builds per-question feedback, and asks the tutor for an
// encouraging message sized to the score.
func (h *Handler) SubmitQuiz(c *gin.Context) {
	var req types.QuizSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.store.Get(req.QuizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	result := types.QuizResult{
		QuizID:         req.QuizID,
		Total:          session.Total(),
		WrongQuestions: []string{},
	}
	for _, answer := range req.Answers {
		q := session.Question(answer.QuestionID)
		if q == nil {
			continue
		}
		correct := session.RecordAnswer(answer.QuestionID, answer.Answer)

		feedback := "Great work! ✅"
		if !correct {
			feedback = "Let's practice this more! ❌"
			result.WrongQuestions = append(result.WrongQuestions, q.ID)
		}
		result.Feedback = append(result.Feedback, types.QuestionFeedback{
			QuestionID:    q.ID,
			UserAnswer:    answer.Answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Feedback:      feedback,
		})
	}

	result.Score = session.Score()
	if result.Total > 0 {
		result.Percentage = float64(result.Score) / float64(result.Total) * 100
	}

	prompt := fmt.Sprintf("Create an encouraging message for a student who scored %d/%d on a math quiz", result.Score, result.Total)
	encouragement, err := h.tutor.GenerateEncouragement(c.Request.Context(), prompt, session.Theme)
	if err != nil {
		h.logger.Error("Encouragement generation failed", zap.Error(err))
		encouragement = fmt.Sprintf("You scored %d out of %d. Keep practicing!", result.Score, result.Total)
	}
	result.Encouragement = encouragement

	c.JSON(http.StatusOK, result)
}

// Explanation handles POST /api/explanation, returning the step-by-step
// explanation stored with a question (generating one on the fly if the
// upload-time explanation failed).
func (h *Handler) Explanation(c *gin.Context) {
	var req types.ExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.store.Get(req.QuizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}
	q := session.Question(req.QuestionID)
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	explanation := q.Explanation
	if explanation == "" || explanation == "Unable to generate explanation" {
		fresh, err := h.tutor.GenerateExplanation(c.Request.Context(), q.Original, q.CorrectAnswer)
		if err == nil {
			explanation = fresh
		}
	}

	resp := types.ExplanationResponse{
		QuestionID:    q.ID,
		Explanation:   explanation,
		CorrectAnswer: q.CorrectAnswer,
	}
	if req.Format == "html" {
		resp.ExplanationHTML = format.ToHTML(explanation)
	}
	c.JSON(http.StatusOK, resp)
}

// WrongQuestions handles GET /api/quiz/:quiz_id/wrong-questions.
func (h *Handler) WrongQuestions(c *gin.Context) {
	quizID := c.Param("quiz_id")
	session, err := h.store.Get(quizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	resp := types.WrongQuestionsResponse{
		QuizID:         quizID,
		WrongQuestions: []types.WrongQuestionDetail{},
	}
	for _, q := range session.WrongQuestions() {
		userAnswer, _ := session.UserAnswer(q.ID)
		resp.WrongQuestions = append(resp.WrongQuestions, types.WrongQuestionDetail{
			QuestionID:    q.ID,
			OriginalText:  q.Original,
			RewrittenText: q.Rewritten,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Topic:         q.Topic,
		})
	}
	resp.TotalWrong = len(resp.WrongQuestions)

	c.JSON(http.StatusOK, resp)
}

// Minigame handles POST /api/generate-minigame. The game is built from the
// questions the student got wrong, or the whole quiz when everything was
// answered correctly. Generation failures still return 200 with an error
// status so the frontend can show the fallback page.
func (h *Handler) Minigame(c *gin.Context) {
	var req types.MinigameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.store.Get(req.QuizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	theme := req.Theme
	if theme == "" {
		theme = session.Theme
	}

	source := session.WrongQuestions()
	if len(source) == 0 {
		source = session.Questions()
	}
	var questions []types.MinigameQuestion
	for _, q := range source {
		questions = append(questions, types.MinigameQuestion{
			Topic:     q.Topic,
			Rewritten: q.Rewritten,
			Answer:    q.CorrectAnswer,
		})
	}

	html, err := h.tutor.GenerateMinigameHTML(c.Request.Context(), questions, req.GamePrompt, theme, session.Age)
	if err != nil {
		h.logger.Error("Minigame generation failed", zap.Error(err))
		c.JSON(http.StatusOK, types.MinigameResponse{
			GameHTML: "<p>Error generating minigame</p>",
			Status:   "error",
			Message:  "minigame generation failed",
		})
		return
	}

	c.JSON(http.StatusOK, types.MinigameResponse{
		GameHTML: html,
		Status:   "success",
		Message:  "Minigame generated",
	})
}
