package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/kimeasyn/settleup/internal/adapter/http"
	"github.com/kimeasyn/settleup/internal/adapter/http/handler"
	"github.com/kimeasyn/settleup/internal/adapter/http/middleware"
	postgresRepo "github.com/kimeasyn/settleup/internal/adapter/repository/postgres"
	redisRepo "github.com/kimeasyn/settleup/internal/adapter/repository/redis"
	"github.com/kimeasyn/settleup/internal/infrastructure/config"
	"github.com/kimeasyn/settleup/internal/infrastructure/logger"
	"github.com/kimeasyn/settleup/internal/infrastructure/metrics"
	"github.com/kimeasyn/settleup/internal/infrastructure/postgres"
	"github.com/kimeasyn/settleup/internal/infrastructure/redis"
	"github.com/kimeasyn/settleup/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Prometheus metrics
	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	participantRepo := postgresRepo.NewParticipantRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	roundRepo := postgresRepo.NewGameRoundRepository(pool)
	resultRepo := postgresRepo.NewResultRepository(pool)
	inviteRepo := postgresRepo.NewInviteRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	settlementUC := usecase.NewSettlementUseCase(settlementRepo, participantRepo, inviteRepo, idGen)
	participantUC := usecase.NewParticipantUseCase(settlementRepo, participantRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(txManager, settlementRepo, participantRepo, expenseRepo, idGen)
	roundUC := usecase.NewGameRoundUseCase(txManager, settlementRepo, participantRepo, roundRepo, idGen)
	calculationUC := usecase.NewCalculationUseCase(settlementRepo, participantRepo, expenseRepo, roundRepo, resultRepo, idGen, retrier, cache)

	// Initialize handlers
	settlementHandler := handler.NewSettlementHandler(settlementUC, cfg.InviteCodeTTL)
	participantHandler := handler.NewParticipantHandler(participantUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	roundHandler := handler.NewGameRoundHandler(roundUC)
	calculationHandler := handler.NewCalculationHandler(calculationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SettlementHandler:  settlementHandler,
		ParticipantHandler: participantHandler,
		ExpenseHandler:     expenseHandler,
		GameRoundHandler:   roundHandler,
		CalculationHandler: calculationHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics),
		Logging:            middleware.NewLoggingMiddleware(log.Logger),
		Metrics:            middleware.NewMetricsMiddleware(appMetrics),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
