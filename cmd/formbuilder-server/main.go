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

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/playground"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manifest, err := cfg.LoadTheme(ctx)
	if err != nil {
		logger.Error("theme", "error", err)
		os.Exit(1)
	}

	renderer, err := preview.New(
		preview.WithTheme(manifest, cfg.ThemeVariant),
		preview.WithCacheSize(cfg.PreviewCache),
		preview.WithEngine(cfg.TemplateEngine),
		preview.WithLogger(logger),
	)
	if err != nil {
		logger.Error("preview", "error", err)
		os.Exit(1)
	}

	renderers, err := server.DefaultRenderers(renderer)
	if err != nil {
		logger.Error("renderers", "error", err)
		os.Exit(1)
	}

	session := playground.NewSession(
		playground.WithLogger(logger),
		playground.WithHistoryLimit(cfg.HistoryLimit),
		playground.WithDuplicateNames(cfg.AllowDuplicate),
	)
	srv, err := server.New(session,
		server.WithLogger(logger),
		server.WithRenderers(renderers),
		server.WithLoader(cfg.ImportLoader()),
	)
	if err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}
