// Command server runs the hero API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/hero-api/internal/api"
	"github.com/phrazzld/hero-api/internal/config"
	"github.com/phrazzld/hero-api/internal/platform/filestore"
	"github.com/phrazzld/hero-api/internal/platform/logger"
	"github.com/phrazzld/hero-api/internal/platform/postgres"
	"github.com/phrazzld/hero-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	if err := runMigrations(db, log); err != nil {
		return err
	}

	avatarStore, err := filestore.New(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to set up avatar store: %w", err)
	}

	heroStore := postgres.NewHeroStore(db)
	heroService := service.NewHeroService(heroStore, log)
	avatarService := service.NewAvatarService(heroService, avatarStore, log)
	heroHandler := api.NewHeroHandler(heroService, avatarService, log)

	router := setupRouter(heroHandler, log)
	return serveHTTP(cfg, log, router)
}
