package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/gestorhub/caixa/internal/adapter/http"
	"github.com/gestorhub/caixa/internal/adapter/http/handler"
	postgresRepo "github.com/gestorhub/caixa/internal/adapter/repository/postgres"
	redisRepo "github.com/gestorhub/caixa/internal/adapter/repository/redis"
	"github.com/gestorhub/caixa/internal/infrastructure/config"
	"github.com/gestorhub/caixa/internal/infrastructure/logger"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
	"github.com/gestorhub/caixa/internal/infrastructure/postgres"
	"github.com/gestorhub/caixa/internal/infrastructure/redis"
	"github.com/gestorhub/caixa/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Migrations first, then the pool.
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	retrier := postgresRepo.NewRetrier(log)
	accountRepo := postgresRepo.NewAccountRepository(pool, retrier)
	entryStore := postgresRepo.NewEntryRepository(pool, retrier, m, log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.UTCClock{}

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, clock, m)
	balanceUC := usecase.NewBalanceUseCase(accountRepo, entryStore, cache, cfg.SummaryCacheTTL, log)
	entryUC := usecase.NewEntryUseCase(entryStore, idGen, clock, m)
	settlementUC := usecase.NewSettlementUseCase(entryStore, m, log)
	transferUC := usecase.NewTransferUseCase(accountRepo, entryStore, idGen, clock, m, log)

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		EntryHandler:     handler.NewEntryHandler(entryUC, settlementUC, balanceUC),
		TransferHandler:  handler.NewTransferHandler(transferUC, balanceUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
