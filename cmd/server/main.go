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

	"github.com/iho/cashflow/internal/adapter/amqp"
	httpAdapter "github.com/iho/cashflow/internal/adapter/http"
	"github.com/iho/cashflow/internal/adapter/http/handler"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/cashflow/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/cashflow/internal/adapter/repository/redis"
	"github.com/iho/cashflow/internal/infrastructure/auth"
	"github.com/iho/cashflow/internal/infrastructure/config"
	"github.com/iho/cashflow/internal/infrastructure/logger"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
	"github.com/iho/cashflow/internal/infrastructure/postgres"
	"github.com/iho/cashflow/internal/infrastructure/rabbitmq"
	"github.com/iho/cashflow/internal/infrastructure/redis"
	"github.com/iho/cashflow/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "cashflow",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:         cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		PingTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// RabbitMQ
	broker, err := rabbitmq.Connect(ctx, cfg.AMQPURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer broker.Close()
	log.Info().Msg("connected to rabbitmq")

	m := metrics.New()

	// Repositories
	consolidationRepo := postgresRepo.NewConsolidationRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Messaging
	publisher, err := amqp.NewPublisher(amqp.PublisherConfig{
		Channel:      broker.Channel(),
		ExchangeName: cfg.AMQPExchange,
		QueueName:    cfg.AMQPQueue,
		RoutingKey:   cfg.AMQPRoutingKey,
		Logger:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create publisher")
	}

	// Use cases
	consolidationUC := usecase.NewConsolidationUseCase(consolidationRepo)
	reportUC := usecase.NewReportUseCase(consolidationRepo, cache, cfg.StatisticsCacheTTL)
	entryUC := usecase.NewEntryUseCase(entryRepo, publisher, m, log)

	// Consumer
	if !cfg.ConsumerDisabled {
		consumer, err := amqp.NewConsumer(amqp.ConsumerConfig{
			Channel:      broker.Channel(),
			ExchangeName: cfg.AMQPExchange,
			QueueName:    cfg.AMQPQueue,
			RoutingKey:   cfg.AMQPRoutingKey,
			Workers:      cfg.ConsumerWorkers,
			Engine:       consolidationUC,
			Metrics:      m,
			Logger:       log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create consumer")
		}

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("consumer stopped")
				stop()
			}
		}()
		log.Info().Int("workers", cfg.ConsumerWorkers).Msg("consumer started")
	}

	// HTTP
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(50, 100)
	go rateLimiter.Janitor(ctx, time.Hour)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:          handler.NewAuthHandler(jwtManager),
		EntryHandler:         handler.NewEntryHandler(entryUC),
		ConsolidationHandler: handler.NewConsolidationHandler(reportUC),
		HealthHandler:        handler.NewHealthHandler(pool, redisClient),
		JWTManager:           jwtManager,
		AuthEnabled:          cfg.AuthEnabled,
		IdempotencyStore:     idempotencyStore,
		IdempotencyTTL:       cfg.IdempotencyTTL,
		Metrics:              m,
		RateLimiter:          rateLimiter,
		Logger:               log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	// Broker connection loss is fatal; the orchestrator restarts us and
	// rabbitmq.Connect handles the redial backoff.
	go func() {
		if amqpErr := <-broker.NotifyClose(); amqpErr != nil {
			log.Error().Err(amqpErr).Msg("rabbitmq connection closed")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
