// @title                       FlatFinder API
// @version                     1.0
// @description                 Rental listings, accounts and messages with owner/privileged access control.
// @BasePath                    /
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

	"github.com/flatfinder/flatfinder-api/internal/api"
	"github.com/flatfinder/flatfinder-api/internal/core/credential"
	"github.com/flatfinder/flatfinder-api/internal/core/identity"
	"github.com/flatfinder/flatfinder-api/internal/core/service"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/config"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/db/mongo"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/db/redis"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/http/handlers"
	"github.com/flatfinder/flatfinder-api/internal/infrastructure/queue"
	"github.com/flatfinder/flatfinder-api/pkg/logger"
)

const serviceName = "flatfinder-api"

func main() {
	if err := run(); err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})
	log.Info().Str("env", cfg.Env).Msg("starting application")

	var resources closers
	defer resources.closeAll(log)

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: serviceName})
	if err != nil {
		return err
	}
	resources.add("mongodb", mongoClient.Disconnect)
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	resources.add("redis", func(context.Context) error { return rdb.Close() })
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	creds, err := credential.New(credential.Config{
		SigningKey: []byte(cfg.Auth.JWTSecret),
		TokenTTL:   cfg.Auth.TokenTTL,
		Issuer:     cfg.Auth.Issuer,
		HashCost:   cfg.Auth.HashCost,
	})
	if err != nil {
		return err
	}

	// --- Core ---
	users := mongo.NewUserRepository(db)
	listings := mongo.NewListingRepository(db)
	messages := mongo.NewMessageRepository(db)
	revocations := redis.NewRevocationStore(rdb)

	cleanup := service.NewCleanupService(users, listings, messages, logger.Component("cleanup"))
	dispatcher := queue.NewDispatcher(cfg.CleanupWorkers, cleanup, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	svcLog := logger.Component("service")
	router := api.NewRouter(api.Dependencies{
		Log:      logger.Component("http"),
		Resolver: identity.NewResolver(creds, revocations, logger.Component("identity")),
		Auth:     service.NewAuthService(users, creds, revocations, cfg.Auth.PrivilegedEmails, svcLog),
		Users:    service.NewUserService(users, listings, revocations, dispatcher, creds.TokenTTL(), svcLog),
		Listings: service.NewListingService(listings, users, dispatcher, svcLog),
		Messages: service.NewMessageService(messages, listings, svcLog),
		Readiness: []handlers.Dependency{
			handlers.MongoDependency(db),
			handlers.RedisDependency(rdb),
		},
		Swagger: !cfg.IsProduction(),
		Metrics: true,
	})

	// --- Serve ---
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		stopWorkers()
		dispatcher.Wait()
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	// No request can enqueue anymore; let the workers finish what is buffered.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("application stopped")
	return nil
}
