package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/storely/catalog-api/internal/api"
	"github.com/storely/catalog-api/internal/core/password"
	"github.com/storely/catalog-api/internal/core/token"
	"github.com/storely/catalog-api/internal/infrastructure/config"
	mongodb "github.com/storely/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storely/catalog-api/internal/infrastructure/db/redis"
	"github.com/storely/catalog-api/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
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

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := products.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product indexes failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Router ---
	e := api.NewRouter(api.Dependencies{
		Users:    users,
		Products: products,
		Tokens:   token.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		Hasher:   password.NewHasher(cfg.BcryptCost),
		Limiter:  redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
		Mongo:    db,
		Redis:    rdb,
	}, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
