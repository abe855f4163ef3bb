package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ratehub/storefront/internal/api"
	"github.com/ratehub/storefront/internal/core/search"
	"github.com/ratehub/storefront/internal/core/session"
	"github.com/ratehub/storefront/internal/gateway"
	"github.com/ratehub/storefront/internal/infrastructure/config"
	redisdb "github.com/ratehub/storefront/internal/infrastructure/db/redis"
	"github.com/ratehub/storefront/pkg/logger"
)

func main() {
	// .env is a development convenience; production relies on real
	// environment variables.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to redis")
	}
	defer rdb.Close()

	gw := gateway.New(cfg.BackendBaseURL, logger.Component("gateway"))
	sessions := session.NewManager(session.NewRedisStore(rdb), gw, cfg.SessionTTL, logger.Component("session"))
	searches := search.NewRegistry(gw, cfg.SearchDebounce)

	e, err := api.NewRouter(gw, sessions, searches, rdb, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendBaseURL).Msg("storefront started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
