package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"salesdash/config"
	"salesdash/database"
	"salesdash/dataset"
	"salesdash/handlers"
	"salesdash/insights"
	"salesdash/logger"
	"salesdash/metrics"
	"salesdash/middleware"
	"salesdash/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.FromEnv()
	config.BindFlags(pflag.CommandLine, &cfg)
	pflag.Parse()

	log := logger.New(cfg.Verbose)
	slog.SetDefault(log)
	if envErr != nil {
		log.Debug("no .env file, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.AppConfig = cfg

	ctx := context.Background()

	source, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	// The table is loaded once, before serving; a failed load stops startup.
	cache := dataset.NewCache(source)
	start := time.Now()
	table, err := cache.Get(ctx)
	if err != nil {
		return fmt.Errorf("load sales data: %w", err)
	}
	metrics.DatasetRows.Set(float64(len(table)))
	metrics.DatasetLoadDuration.Set(time.Since(start).Seconds())

	var gen insights.Generator
	if cfg.InsightsEnabled() {
		client, err := insights.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer client.Close()
		gen = client
		log.Info("gemini insights enabled", "model", cfg.GeminiModel)
	}

	h := handlers.New(table, cache.LoadedAt(), cfg, log, gen)

	app := fiber.New(fiber.Config{
		AppName:               "Supermarket Sales Dashboard",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics)

	routes.SetupRoutes(app, h, cfg.JWTSecret)

	log.Info("serving dashboard", "addr", cfg.Addr, "source", cfg.Source, "rows", len(table), "auth", cfg.AuthEnabled())
	if err := app.Listen(cfg.Addr); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func newSource(ctx context.Context, cfg config.Config, log *slog.Logger) (dataset.Source, error) {
	switch cfg.Source {
	case config.SourcePostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresSource(pool, cfg.SalesTable, log), nil
	default:
		return dataset.NewExcelSource(cfg.SalesFile, cfg.SalesSheet, log), nil
	}
}
