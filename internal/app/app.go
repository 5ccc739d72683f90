package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	httpapp "github.com/lavandel/flower_storefront/internal/app/http"
	"github.com/lavandel/flower_storefront/internal/cache"
	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/domain/models"
	catalogRepository "github.com/lavandel/flower_storefront/internal/repository/catalog"
	orderRepository "github.com/lavandel/flower_storefront/internal/repository/order"
	outboxRepository "github.com/lavandel/flower_storefront/internal/repository/outbox"
	adminService "github.com/lavandel/flower_storefront/internal/services/admin"
	cartService "github.com/lavandel/flower_storefront/internal/services/cart"
	catalogService "github.com/lavandel/flower_storefront/internal/services/catalog"
	checkoutService "github.com/lavandel/flower_storefront/internal/services/checkout"
	"github.com/lavandel/flower_storefront/pkg/brokers/kafka/producer"
	"github.com/lavandel/flower_storefront/pkg/databases/postgres"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

const catalogEventBuffer = 64

type App struct {
	HTTPServer *httpapp.App

	log logger.Logger

	db          *postgres.PgDB
	store       cache.Store
	invalidator *cache.Invalidator
	producer    *producer.Producer
	events      chan models.Event
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config, postgresDSN string) (*App, error) {
	db, err := postgres.NewPostgresDB(ctx, log, postgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	app := &App{
		log: log,
		db:  db,
	}

	cacheLayer := cache.New(app.setupStore(ctx, cfg), log)

	defaultLocale := models.Locale(cfg.Locale.Default)

	catalogRepo := catalogRepository.NewRepository(log, db.GetDB(), defaultLocale)
	orderRepo := orderRepository.NewOrderRepository(log, db.GetDB(), outboxRepository.New(log, db.GetDB()))

	catalogSvc := catalogService.New(log, cacheLayer, catalogRepo, cfg.Cache, defaultLocale)

	sessionStore := cartService.NewSessionStore(cfg.Session.MaxCarts, cfg.Session.CartTTL)
	cartSvc := cartService.New(log, catalogSvc, sessionStore, defaultLocale)

	checkoutSvc := checkoutService.New(log, orderRepo, cartSvc, catalogSvc)

	app.events = make(chan models.Event, catalogEventBuffer)
	if len(cfg.Kafka.BrokerList) > 0 {
		app.producer, err = producer.NewProducer(ctx, log, cfg.Kafka.CatalogEventTopic, app.events, cfg.Kafka.BrokerList)
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}

		go app.producer.ProduceEvents(ctx)
	}

	var adminSvc *adminService.Service
	if app.invalidator != nil {
		adminSvc = adminService.New(log, catalogRepo, orderRepo, cacheLayer, app.invalidator, app.events)
	} else {
		adminSvc = adminService.New(log, catalogRepo, orderRepo, cacheLayer, nil, app.events)
	}

	app.HTTPServer = httpapp.NewApp(log, catalogSvc, cartSvc, checkoutSvc, adminSvc, cfg.Locale, cfg.HTTP.Port)

	return app, nil
}

// setupStore picks the cache backend. With Redis enabled the entries
// are shared between instances and the pub/sub invalidator fans
// admin-write patterns out to peers.
func (a *App) setupStore(ctx context.Context, cfg *config.Config) cache.Store {
	if !cfg.Redis.Enabled {
		a.store = cache.NewMemoryStore()
		return a.store
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	a.store = cache.NewRedisStore(client)

	a.invalidator = cache.NewInvalidator(a.store, client, a.log)
	go a.invalidator.Start(ctx)

	return a.store
}

func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if err := a.HTTPServer.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}

	if a.invalidator != nil {
		if err := a.invalidator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close invalidator: %w", err))
		}
	}

	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close cache store: %w", err))
	}

	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close postgres: %w", err))
	}

	return errors.Join(errs...)
}
