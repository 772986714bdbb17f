// Package main is the entry point for the media tracker API server.
// It wires configuration, storage, mail delivery and the HTTP router,
// and runs until interrupted.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediashelf/media-tracker/internal/api"
	"github.com/mediashelf/media-tracker/internal/infrastructure/config"
	mongodb "github.com/mediashelf/media-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/mediashelf/media-tracker/internal/infrastructure/db/redis"
	"github.com/mediashelf/media-tracker/internal/infrastructure/email"
	"github.com/mediashelf/media-tracker/internal/infrastructure/queue"
	"github.com/mediashelf/media-tracker/internal/infrastructure/storage"
	"github.com/mediashelf/media-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Image storage ---
	images, err := storage.NewGCSImageStore(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("image store init failed")
	}

	// --- Mail delivery ---
	sender := email.NewMailgunSender(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.Sender)
	dispatcher := queue.NewDispatcher(0, sender, log)
	dispatcher.Start(ctx)
	mailer := email.NewMailer(dispatcher, cfg.BaseURL, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Mailer:    mailer,
		Images:    images,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context) error{
		mongodb.NewUserRepository(db).EnsureIndexes,
		mongodb.NewItemRepository(db).EnsureIndexes,
		mongodb.NewItemTypeRepository(db).EnsureIndexes,
		mongodb.NewTagRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
