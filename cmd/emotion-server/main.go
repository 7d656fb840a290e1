package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/config"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/orchestrator"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("load .env failed", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Engine.LogLevel}))

	handler, err := buildHandler(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Info("emotion server started", "addr", cfg.HTTPAddr, "schema", emotion.Schema, "engine", emotion.Engine)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func buildHandler(cfg config.ServerConfig, logger *slog.Logger) (http.Handler, error) {
	engine, err := orchestrator.BuildEngine(cfg.Engine, logger)
	if err != nil {
		return nil, err
	}
	return server.NewRouter(server.Deps{
		Analyzer:     engine.Analyzer,
		Selector:     engine.Selector,
		MaxBodyBytes: cfg.ReadBodyMaxByte,
		Logger:       logger,
	}), nil
}
