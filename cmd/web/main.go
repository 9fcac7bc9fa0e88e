package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ryven.shop/web/internal/config"
	"ryven.shop/web/internal/httpserver"
	"ryven.shop/web/internal/observability"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(&cfg, args); err != nil {
		return err
	}

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialise logger: %w", err)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	srv, err := httpserver.FromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("web listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("env", cfg.Environment),
		zap.Bool("dev", cfg.DevMode),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.StringVar(&cfg.Server.Address, "addr", cfg.Server.Address, "HTTP listen address")
	fs.StringVar(&cfg.Paths.TemplatesDir, "templates", cfg.Paths.TemplatesDir, "templates directory overriding the embedded set")
	fs.StringVar(&cfg.Paths.PublicDir, "public", cfg.Paths.PublicDir, "public assets directory overriding the embedded set")
	return fs.Parse(args)
}
