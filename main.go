package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"math-buddy/config"
	"math-buddy/imagegen"
	"math-buddy/llmclient"
	"math-buddy/quiz"
	"math-buddy/web"
	"math-buddy/web/handlers"
)

func main() {
	bootLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(bootLogger)

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		bootLogger.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer config.Cleanup()

	store, err := quiz.NewStore(cfg.SessionCapacity, logger)
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}

	tutor := llmclient.NewService(cfg, logger)
	images := imagegen.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.CleanupEnabled {
		store.StartJanitor(ctx, cfg.CleanupInterval, cfg.SessionRetentionAge)
	}

	h := handlers.New(cfg, tutor, images, store, logger)
	server := web.NewServer(cfg, h, logger)

	addr := fmt.Sprintf(":%d", cfg.WebPort)
	if err := server.Start(ctx, addr); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
