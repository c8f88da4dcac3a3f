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
	"time"

	"github.com/iwvelando/rent-or-buy/internal/cache"
	"github.com/iwvelando/rent-or-buy/internal/history"
	"github.com/iwvelando/rent-or-buy/internal/logging"
	"github.com/iwvelando/rent-or-buy/internal/server"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	responseCache, err := cache.New(cfg.CacheOptions())
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if responseCache != nil {
		defer responseCache.Close()
		if r, ok := responseCache.(*cache.Redis); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := r.Ping(ctx); err != nil {
				logger.Warn("redis cache unreachable, requests will be computed",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			cancel()
		}
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Fatal("failed to open run history",
				zap.String("op", "main"),
				zap.String("path", cfg.History.Path),
				zap.Error(err),
			)
		}
		defer store.Close()
	}

	handler := server.NewHandler(logger, server.Options{
		MaxBodySize:  cfg.BodySizeBytes(),
		Version:      version,
		Cache:        responseCache,
		History:      store,
		HistoryLimit: cfg.History.Limit,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
			zap.String("cache", cfg.Cache.Backend),
			zap.Bool("history", store != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-quit:
		logger.Info("shutting down", zap.String("op", "main"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
