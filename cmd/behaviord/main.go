package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/behavior-ledger/internal/core/config"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage"
	"github.com/aevon-lab/behavior-ledger/internal/core/storage/postgres"
	"github.com/aevon-lab/behavior-ledger/internal/ingestion"
	"github.com/aevon-lab/behavior-ledger/internal/logging"
	"github.com/aevon-lab/behavior-ledger/internal/migrations"
	"github.com/aevon-lab/behavior-ledger/internal/projection"
	"github.com/aevon-lab/behavior-ledger/internal/retention"
	"github.com/aevon-lab/behavior-ledger/internal/server"
	"github.com/aevon-lab/behavior-ledger/internal/suggestion"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults and BEHAVIOR_* env vars when empty)")
	purgeDays := flag.Int("purge-days", 0, "Delete rows older than N days once and exit")
	flag.Parse()

	// 0. Initialize Logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logging.NewContextHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Server.SlogLevel()}),
	)))
	slog.Info("Loaded config",
		"port", cfg.Server.Port,
		"retention_days", cfg.Retention.Days,
		"suggestion_provider", cfg.Suggestion.Provider,
		"suggestion_mode", cfg.Suggestion.Mode,
	)

	if err := run(cfg, *purgeDays); err != nil {
		slog.Error("Exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

func run(cfg *corecfg.Config, purgeDays int) error {
	// 2. Initialize Storage (PostgreSQL)
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	dbAdapter, err := postgres.NewAdapter(db, cfg.Database.QueryTimeoutDuration())
	if err != nil {
		db.Close()
		return fmt.Errorf("initialize adapter: %w", err)
	}
	// Closes the prepared statements and the pool.
	defer func() {
		if err := dbAdapter.Close(); err != nil {
			slog.Error("Failed to close database adapter", "error", err)
		}
	}()
	store := storage.Instrument(dbAdapter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot maintenance mode.
	if purgeDays != 0 {
		deleted, err := retention.Purge(ctx, store, purgeDays)
		if err != nil {
			return err
		}
		slog.Info("Manual purge finished", "deleted", deleted, "days", purgeDays)
		return nil
	}

	// 3. Initialize Suggestions
	var suggester ingestion.Suggester
	if cfg.Suggestion.Enabled {
		analyzer, err := newAnalyzer(cfg.Suggestion, store)
		if err != nil {
			return err
		}
		suggester = analyzer
	} else {
		slog.Info("Suggestions disabled by config")
	}

	// 4. Initialize Ingestion and Projection
	ingestionSvc := ingestion.NewService(store, ingestion.Options{
		MaxBodySizeMB:     cfg.Server.MaxBodySizeMB,
		Suggester:         suggester,
		SuggestionMode:    cfg.Suggestion.Mode,
		SuggestionTimeout: cfg.Suggestion.TimeoutDuration(),
	})
	projectionSvc := projection.NewService(store)
	retentionSched := retention.NewScheduler(store, cfg.Retention.IntervalDuration(), cfg.Retention.Days)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter, cfg.Server.Mode, server.Options{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)
	if cfg.Retention.AdminAPI {
		retentionSched.RegisterRoutes(srv.Engine)
	}

	// 6. Start Services
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Retention.Enabled {
		g.Go(func() error { return retentionSched.Start(gctx) })
	} else {
		slog.Info("Retention scheduler disabled by config")
	}

	// HTTP server blocks until ctx is cancelled.
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newAnalyzer(cfg corecfg.SuggestionConfig, store storage.EventStore) (*suggestion.Analyzer, error) {
	templates, err := suggestion.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load suggestion templates: %w", err)
	}

	var generator suggestion.TextGenerator = suggestion.MockGenerator{}
	if cfg.Provider == "openai" {
		generator = suggestion.NewFallbackGenerator(
			suggestion.NewHTTPGenerator(suggestion.HTTPConfig{
				BaseURL: cfg.BaseURL,
				APIKey:  cfg.APIKey,
				Model:   cfg.Model,
				Timeout: cfg.TimeoutDuration(),
			}),
			suggestion.MockGenerator{},
		)
	}

	slog.Info("Suggestion analyzer initialized", "provider", cfg.Provider, "templates", len(templates.Responses))
	return suggestion.NewAnalyzer(store, templates, generator), nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
