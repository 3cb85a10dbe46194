package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/cache"
	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/handler"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/server"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("task-tracker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	appCache, err := newCache(ctx, cfg.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to cache")
	}
	defer appCache.Close()

	storages := store.NewStorages(db, log)
	services := service.NewServices(*storages, appCache, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newCache selects redis when an address is configured and falls back to the
// in-process cache otherwise, so the service runs without external
// infrastructure in development.
func newCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (cache.Cache, error) {
	if cfg.Address == "" {
		log.Info().Msg("no cache address configured, using in-process cache")
		return cache.NewMemory(cfg.TTL), nil
	}

	log.Info().Str("address", cfg.Address).Msg("connecting to redis cache")
	return cache.NewRedis(ctx, cfg)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
