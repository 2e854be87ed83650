package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/bookshop/internal/catalog"
	"github.com/utafrali/bookshop/internal/config"
	"github.com/utafrali/bookshop/internal/email"
	"github.com/utafrali/bookshop/internal/event"
	handler "github.com/utafrali/bookshop/internal/handler/http"
	"github.com/utafrali/bookshop/internal/payment"
	"github.com/utafrali/bookshop/internal/repository"
	"github.com/utafrali/bookshop/internal/repository/memory"
	pgrepo "github.com/utafrali/bookshop/internal/repository/postgres"
	redisrepo "github.com/utafrali/bookshop/internal/repository/redis"
	"github.com/utafrali/bookshop/internal/service"
	"github.com/utafrali/bookshop/internal/session"
	"github.com/utafrali/bookshop/pkg/database"
	"github.com/utafrali/bookshop/pkg/health"
	pkgkafka "github.com/utafrali/bookshop/pkg/kafka"
)

// App wires together all dependencies and runs the bookshop server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// Redis, Postgres and Kafka are each optional: the corresponding in-memory
// (or no-op) implementation is used when the setting is absent.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Cart store.
	var cartRepo repository.CartRepository
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		cartRepo = redisrepo.NewCartRepository(a.rdb, time.Duration(cfg.CartTTL)*time.Hour)
	} else {
		cartRepo = memory.NewCartRepository()
	}

	// User and order stores.
	var (
		userRepo  repository.UserRepository
		orderRepo repository.OrderRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		logger.Info("connected to Postgres")
		userRepo = pgrepo.NewUserRepository(pool)
		orderRepo = pgrepo.NewOrderRepository(pool)
	} else {
		userRepo = memory.NewUserRepository()
		orderRepo = memory.NewOrderRepository()
	}

	// Event publishing.
	var eventProducer *event.Producer
	if brokers := nonEmpty(cfg.KafkaBrokers); len(brokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(brokers), logger)
		eventProducer = event.NewProducer(a.producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", brokers))
	}

	// Build the dependency graph.
	cat := catalog.Default()
	gateway := payment.NewBreakerGateway(payment.NewSimulatedGateway(cfg.BadCardSuffix), logger)
	sender := email.NewLogSender(logger)
	sessions := session.NewManager(cfg.SessionSecret, time.Duration(cfg.SessionTTL)*time.Hour)

	discounts, err := cfg.Discounts()
	if err != nil {
		return nil, err
	}

	cartService := service.NewCartService(cat, cartRepo, eventProducer, logger)
	userService := service.NewUserService(userRepo, eventProducer, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartService, orderRepo, userRepo, gateway, sender, eventProducer, logger, discounts,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	if a.rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return a.rdb.Ping(ctx).Err()
		})
	}
	if a.pool != nil {
		healthHandler.Register("postgres", func(ctx context.Context) error {
			return a.pool.Ping(ctx)
		})
	}
	if a.producer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return a.producer.Ping(ctx)
		})
	}

	// HTTP router.
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	storefront := handler.NewStorefrontHandler(
		cat, cartService, userService, checkoutService, orderService, sessions, renderer, logger,
	)
	router := handler.NewRouter(storefront, healthHandler, logger, handler.RouterConfig{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// nonEmpty drops empty entries, so an unset list env var counts as disabled.
func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
