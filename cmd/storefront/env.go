package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"fireworks-storefront/internal/commerceapi"
	"fireworks-storefront/internal/config"
	"fireworks-storefront/internal/db"
	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/metrics"
	"fireworks-storefront/internal/migrate"
	"fireworks-storefront/internal/repository/clientstate"
	"fireworks-storefront/internal/storefront"
	"github.com/redis/go-redis/v9"
)

// env is everything one command invocation needs.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Storefront
	app     *storefront.App
	ready   func(context.Context) error
	closers []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{
		cfg: cfg,
		log: logger.New(logger.Options{
			ServiceName: cfg.App.ServiceName,
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			Format:      cfg.App.LogFormat,
		}),
		metrics: metrics.New(),
	}

	store, err := e.openStore(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}

	var app *storefront.App
	client := commerceapi.New(cfg.API.BaseURL,
		commerceapi.WithTimeout(cfg.API.Timeout),
		commerceapi.WithLogger(e.log),
		commerceapi.WithFailureHook(e.metrics.APIFailure),
		commerceapi.WithBreaker(commerceapi.BreakerSettings{
			MaxFailures: cfg.API.BreakerMaxFailures,
			OpenTimeout: cfg.API.BreakerOpenTimeout,
		}),
		commerceapi.WithTokenSource(func() string { return app.Token() }),
	)
	app = storefront.New(ctx, storefront.Options{
		API:          client,
		Store:        store,
		PersistCart:  cfg.Shop.PersistCart,
		PaymentDelay: cfg.Shop.PaymentDelay,
		Metrics:      e.metrics,
		Logger:       e.log,
	})
	e.app = app
	return e, nil
}

// openStore builds the client-state repository for the configured backend.
func (e *env) openStore(ctx context.Context) (clientstate.Repository, error) {
	cfg := e.cfg
	switch cfg.State.Backend {
	case config.BackendMemory:
		return clientstate.NewMemory(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		e.closers = append(e.closers, func() { _ = client.Close() })
		e.ready = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return clientstate.NewRedis(client, cfg.State.Scope, cfg.Redis.TTL), nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DB, e.log)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		e.closers = append(e.closers, pool.Close)
		if err := migrate.Apply(ctx, pool, e.log); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		e.ready = pool.Ping
		return clientstate.NewPostgres(pool, cfg.State.Scope, e.log), nil
	default:
		return clientstate.NewFile(cfg.State.StateDir(), cfg.State.Scope)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
