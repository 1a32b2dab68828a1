package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eventhawk-lab/eventhawk/internal/analytics"
	"github.com/eventhawk-lab/eventhawk/internal/analytics/source/demo"
	analyticsPostgres "github.com/eventhawk-lab/eventhawk/internal/analytics/source/postgres"
	corecfg "github.com/eventhawk-lab/eventhawk/internal/core/config"
	"github.com/eventhawk-lab/eventhawk/internal/events"
	"github.com/eventhawk-lab/eventhawk/internal/events/storage/postgres"
	"github.com/eventhawk-lab/eventhawk/internal/migrations"
	"github.com/eventhawk-lab/eventhawk/internal/server"
)

func main() {
	configPath := flag.String("config", "eventhawk.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Run Database Migrations
	// The adapter prepares statements against the events table, so the
	// schema must be in place before it is built.
	if err := migrations.RunMigrationsDSN(cfg.Database.DSN, cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 2.1. Initialize Storage (PostgreSQL)
	store, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3. Initialize Analytics
	// The demo generator always backs the line dataset; the bar dataset
	// comes from the events table when the postgres source is selected.
	demoSource := demo.New(cfg.Analytics.DemoSeed)

	var dataSource analytics.DataSource
	switch cfg.Analytics.Source {
	case "postgres":
		dataSource = analyticsPostgres.New(store.DB(), demoSource)
	default:
		dataSource = demoSource
	}

	analyticsSvc := analytics.NewService(dataSource, cfg.Analytics.EffectiveCacheTTL())
	slog.Info("Analytics engine initialized",
		"source", cfg.Analytics.Source,
		"cache_ttl", cfg.Analytics.EffectiveCacheTTL(),
	)

	// 4. Initialize Event CRUD
	eventsSvc := events.NewService(store)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store.DB(), cfg.Server.Mode, cfg.CORS.AllowedOrigins)
	analyticsSvc.RegisterRoutes(srv.Engine)
	eventsSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
