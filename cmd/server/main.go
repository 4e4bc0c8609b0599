// @title        SkillSling API
// @version      1.0
// @description  Marketplace directory: signup, login and a per-device provider directory.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/api"
	"github.com/skillsling/marketplace/internal/core/ports"
	mongostore "github.com/skillsling/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/skillsling/marketplace/internal/infrastructure/db/redis"
	filestore "github.com/skillsling/marketplace/internal/infrastructure/storage/file"
	memstore "github.com/skillsling/marketplace/internal/infrastructure/storage/memory"
	"github.com/skillsling/marketplace/internal/pkg/config"
	"github.com/skillsling/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "skillsling",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	secret := cfg.DeviceSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("DEVICE_SECRET not set; device cookies will not survive a restart")
	}

	e := api.NewRouter(api.Deps{
		Store:        store,
		StoreName:    cfg.Store.Backend,
		DeviceSecret: secret,
		Logger:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KVStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		s, err := filestore.Open(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Store.FilePath).Msg("using file store")
		return s, func() {}, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			URL:  cfg.Redis.URL,
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", client.Options().Addr).Msg("using redis store")
		return redisstore.NewKVStore(client), func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
		return mongostore.NewKVStore(db), func() {
			if err := mongostore.Disconnect(context.Background(), client); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}, nil

	default:
		log.Info().Msg("using in-memory store")
		return memstore.NewKVStore(), func() {}, nil
	}
}
