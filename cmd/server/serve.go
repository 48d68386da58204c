package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-generator/internal/adapter/http"
	repo "cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"
	"cv-generator/internal/infrastructure/migration"
	"cv-generator/internal/preview"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"
	ai "cv-generator/pkg/ai"
	infra "cv-generator/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that holds CV sessions in memory and exposes editing, preview, enhancement and download endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeGen := newGenerator(cfg.AI)
	defer func() {
		if err := closeGen(); err != nil {
			slog.Warn("closing text generator", "error", err)
		}
	}()
	if cfg.AI.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; enhancement requests will fail")
	}

	// export records are optional: without a database the repo is a no-op
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("database not available", "error", err)
		pool = nil
	}
	if pool != nil {
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Warn("migrations failed; export records disabled", "error", err)
		}
	}

	previews, err := preview.NewRenderer()
	if err != nil {
		return err
	}

	var renderer usecase.Renderer
	if cfg.PDF.Enabled {
		renderer = infra.NewChromedpRenderer(cfg.PDF.ChromePath)
	}
	exporter := usecase.NewExporter(renderer, previews, repo.NewExportsRepo(pool), cfg.OutputDir)

	sessions := store.NewRegistry()
	if cfg.SessionTTL > 0 {
		go sessions.RunJanitor(ctx, janitorInterval(cfg.SessionTTL), cfg.SessionTTL)
	}

	app := newApp()
	httpadapter.NewHandler(sessions, usecase.NewEnhancer(gen), exporter, previews).Register(app)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr(), "ai_provider", cfg.AI.Provider, "pdf", cfg.PDF.Enabled, "database", pool != nil)
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// janitorInterval sweeps a few times per TTL, between once a second and
// once a minute.
func janitorInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}

func newApp() *fiber.App {
	cfg := httpadapter.FiberConfig()
	cfg.AppName = "cv-generator"
	cfg.DisableStartupMessage = true
	cfg.WriteTimeout = 2 * time.Minute // enhancement waits on every outbound call
	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(logger.New())
	return app
}

// newGenerator picks the text-generation client. The returned func releases
// it.
func newGenerator(cfg config.AIConfig) (usecase.TextGenerator, func() error) {
	if cfg.Provider == config.ProviderSDK {
		c := ai.NewSDKClient(cfg.APIKey, cfg.Model)
		return c, c.Close
	}
	c := ai.NewClient(ai.Options{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	return c, func() error { return nil }
}
