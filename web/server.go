package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"math-buddy/config"
	"math-buddy/web/handlers"
	"math-buddy/web/middleware"
)

// Server wires the HTTP layer: routing, middleware, and graceful shutdown.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg *config.Config, h *handlers.Handler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(requestLogger(logger))

	api := engine.Group("/api")
	{
		api.POST("/rewrite", h.Rewrite)
		api.POST("/chat", h.Chat)
		api.POST("/chat-with-context", h.ChatWithContext)
		api.POST("/upload-quiz", h.UploadQuiz)
		api.POST("/submit-quiz", h.SubmitQuiz)
		api.POST("/explanation", h.Explanation)
		api.POST("/generate-minigame", h.Minigame)
		api.POST("/image", h.GenerateImage)
		api.GET("/quiz/:quiz_id/wrong-questions", h.WrongQuestions)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
	engine.GET("/static/images/:filename", h.ServeImage)

	return &Server{engine: engine, logger: logger}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
