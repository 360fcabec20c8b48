package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"math-buddy/web/format"
	"math-buddy/web/types"
)

// Rewrite handles POST /api/rewrite.
func (h *Handler) Rewrite(c *gin.Context) {
	var req types.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Age <= 0 {
		req.Age = defaultAge
	}

	rewritten, err := h.tutor.RewriteQuestion(c.Request.Context(), req.Question, req.Theme, req.Age)
	if err != nil {
		h.logger.Error("Rewrite request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "rewrite failed"})
		return
	}

	c.JSON(http.StatusOK, types.RewriteResponse{Rewritten: rewritten})
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.tutor.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		h.logger.Error("Chat request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat failed"})
		return
	}

	resp := types.ChatResponse{Assistant: reply}
	if req.Format == "html" {
		resp.AssistantHTML = format.ToHTML(reply)
	}
	c.JSON(http.StatusOK, resp)
}

// ChatWithContext handles POST /api/chat-with-context. When a quiz and
// question ID are supplied, the question the student got wrong is folded
// into the tutor's prompt.
func (h *Handler) ChatWithContext(c *gin.Context) {
	var req types.ChatWithContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qctx *types.QuestionContext
	if req.QuizID != "" && req.QuestionID != "" {
		session, err := h.store.Get(req.QuizID)
		if err == nil {
			if ctx, ok := session.QuestionContext(req.QuestionID); ok {
				qctx = ctx
			}
		}
		if qctx == nil {
			h.logger.Warn("Chat context not found, continuing without it",
				zap.String("quiz_id", req.QuizID),
				zap.String("question_id", req.QuestionID))
		}
	}

	reply, err := h.tutor.ChatWithContext(c.Request.Context(), req.Message, req.History, qctx)
	if err != nil {
		h.logger.Error("Contextual chat failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat failed"})
		return
	}

	resp := types.ChatResponse{Assistant: reply}
	if req.Format == "html" {
		resp.AssistantHTML = format.ToHTML(reply)
	}
	c.JSON(http.StatusOK, resp)
}
