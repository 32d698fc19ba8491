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

	"storefront_backend/internal/auth"
	cartrepo "storefront_backend/internal/cart/repository"
	"storefront_backend/internal/catalog"
	customerrepo "storefront_backend/internal/customer/repository"
	"storefront_backend/internal/events"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/http/router"
	"storefront_backend/internal/labels"
	"storefront_backend/internal/orders/cache"
	"storefront_backend/internal/orders/domain"
	"storefront_backend/internal/orders/rates/remote"
	"storefront_backend/internal/orders/rates/tablerate"
	orderservice "storefront_backend/internal/orders/service"
	"storefront_backend/internal/pricing"
	"storefront_backend/internal/reference"
	"storefront_backend/internal/shipping"
	shippingservice "storefront_backend/internal/shipping/service"
	"storefront_backend/internal/store"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/config"
	"storefront_backend/platform/db"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	health := []apphttp.HealthChecker{db.NewPoolAdapter(pool)}

	quoteCache, closeCache := initQuoteCache(cfg, log)
	if quoteCache != nil {
		defer closeCache()
		health = append(health, quoteCache)
	}

	bundle, err := labels.Load(cfg.GetLabelsDir())
	if err != nil {
		log.Error("failed to load label bundles", "error", err)
		panic("failed to load label bundles: " + err.Error())
	}
	log.Info("label bundles loaded", "locales", len(bundle.Locales()))

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()
	countries := reference.NewService()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	stores := storerepo.New(pool)
	customers := customerrepo.New(pool)

	shippingModules := []domain.ShippingModule{tablerate.New(tablerate.NewRepo(pool))}
	if cfg.IsRemoteRatesEnabled() {
		var remoteCache remote.Cache
		if quoteCache != nil {
			remoteCache = quoteCache
		}
		remoteRates := remote.New(cfg, remoteCache, log)
		defer func() { _ = remoteRates.Close() }()
		shippingModules = append(shippingModules, remoteRates)
		log.Info("remote shipping rates enabled", "url", cfg.GetShippingRatesURL())
	}
	orders := orderservice.New(shippingModules, countries, log)

	catalogModule := catalog.NewModule(pool, eventBus, val, log)

	authModule := auth.NewModule(customers, cfg, val, log)

	shippingModule := shipping.NewModule(shippingservice.Deps{
		Carts:     cartrepo.New(pool),
		Customers: customers,
		Countries: countries,
		Orders:    orders,
		Pricing:   pricing.NewService(),
	}, bundle, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:       cfg,
		Logger:       log,
		Health:       health,
		EventBus:     eventBus,
		StoreContext: store.Context(stores, cfg.GetDefaultStoreCode()),
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			shippingModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initQuoteCache connects the shipping quote cache. Without REDIS_URL, or
// when Redis is unreachable at startup, quotes are computed uncached.
func initQuoteCache(cfg *config.Config, log *logger.Logger) (*cache.QuoteCache, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; shipping quote cache disabled")
		return nil, nil
	}

	client, err := cache.NewClient(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to initialize redis client", "error", err)
		return nil, nil
	}
	quoteCache := cache.New(client, cfg.GetShippingQuoteCacheTTL())

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := quoteCache.Ping(pingCtx); err != nil {
		log.Error("redis unreachable; shipping quote cache disabled", "error", err)
		_ = quoteCache.Close()
		return nil, nil
	}

	return quoteCache, func() {
		_ = quoteCache.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
