package main

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace/internal/api/ws"
	"github.com/flowspace/flowspace/internal/config"
	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/server"
	"github.com/flowspace/flowspace/internal/service"
	"github.com/flowspace/flowspace/internal/store/memory"
	"github.com/flowspace/flowspace/internal/store/postgres"
	redisstore "github.com/flowspace/flowspace/internal/store/redis"
	"github.com/flowspace/flowspace/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("FLOWSPACE_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("FLOWSPACE_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Pick the entity store backend. The rest of the application only sees
	// the repository interfaces.
	var (
		taskRepo    domain.TaskRepository
		projectRepo domain.ProjectRepository
	)
	switch cfg.Store {
	case config.StorePostgres:
		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}
		store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
		if err != nil {
			return err
		}
		defer store.Close()
		taskRepo = store.Tasks()
		projectRepo = store.Projects()
		log.Info().Msg("using postgres store")
	default:
		store := memory.New()
		taskRepo = store.Tasks()
		projectRepo = store.Projects()
		log.Info().Msg("using in-memory store")
	}

	// Redis is optional; without it the board simply has no live events.
	var hub *ws.Hub
	if cfg.Redis.Addr != "" {
		pubsub, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer pubsub.Close()
		hub = ws.NewHub(pubsub)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("live board events enabled")
	}

	taskSvc := service.NewTaskService(taskRepo, projectRepo)
	projectSvc := service.NewProjectService(projectRepo)

	// Prepare embedded frontend assets (strip "build/" prefix from fs paths).
	webAssets, err := fs.Sub(web.Assets, "build")
	if err != nil {
		return fmt.Errorf("web assets: %w", err)
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(ctx, cfg, taskSvc, projectSvc, hub, webAssets)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
