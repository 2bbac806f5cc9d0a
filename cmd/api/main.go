// @title           Storefront API
// @version         1.0
// @description     Account registration, authentication, profile and address management for the storefront.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/storefront/storefront-api/internal/api"
	"github.com/storefront/storefront-api/internal/api/handler"
	"github.com/storefront/storefront-api/internal/core/service"
	"github.com/storefront/storefront-api/internal/core/validation"
	"github.com/storefront/storefront-api/internal/infrastructure/config"
	mongodb "github.com/storefront/storefront-api/internal/infrastructure/db/mongo"
	"github.com/storefront/storefront-api/internal/infrastructure/db/postgres"
	redisdb "github.com/storefront/storefront-api/internal/infrastructure/db/redis"
	"github.com/storefront/storefront-api/internal/infrastructure/queue"
	"github.com/storefront/storefront-api/pkg/logger"
)

const (
	serviceName     = "storefront-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	// --- Storage ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Database.DSN, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("postgres migration failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, mdb, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	auditRepo := mongodb.NewAuditRepository(mdb)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit index creation failed")
	}

	// --- Audit pipeline ---
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(auditCtx)

	// --- Core services ---
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, redisdb.NewTokenDenylist(rdb))
	if err != nil {
		log.Fatal().Err(err).Msg("token service")
	}
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	users := postgres.NewUserRepository(db)
	guards, err := service.NewGuards(users, hasher, validation.NewSchema())
	if err != nil {
		log.Fatal().Err(err).Msg("guards")
	}

	authService := service.NewAuthService(users, guards, hasher, tokens, dispatcher, log)
	addressService := service.NewAddressService(postgres.NewAddressRepository(db), guards, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Addresses: addressService,
		Tokens:    tokens,
		Health: map[string]handler.Pinger{
			"postgres": postgres.NewPinger(db),
			"redis":    redisdb.NewPinger(rdb),
			"mongodb":  mongodb.NewPinger(mongoClient),
		},
		Log: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// drain audit events produced by in-flight requests
	stopAudit()
	dispatcher.Wait()
}
