// Command server runs the marketplace admin gateway: the role-gated front
// door between dashboard clients and the upstream marketplace API.
//
// @title        Marketplace Admin Gateway
// @version      1.0
// @description  Role-gated administration gateway for the marketplace platform.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/markethub/admin-gateway/internal/api"
	redisdb "github.com/markethub/admin-gateway/internal/infrastructure/db/redis"
	"github.com/markethub/admin-gateway/internal/infrastructure/session"
	"github.com/markethub/admin-gateway/internal/pkg/config"
	"github.com/markethub/admin-gateway/internal/upstream"
	"github.com/markethub/admin-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	store := session.NewStore(rdb, cfg.CookieName, cfg.SessionTTL)

	e := api.NewRouter(rdb, client, store, log, prometheus.DefaultRegisterer)

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("admin gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
