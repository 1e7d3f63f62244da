package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fireworks-storefront/internal/config"
	"fireworks-storefront/internal/db"
	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/migrate"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "Roll back the client_state schema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(logger.Options{
		ServiceName: "fireworks-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	base := log.Base()
	if cfg.DB.DSN == "" {
		base.Fatal().Msg("STOREFRONT_DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB, log)
	if err != nil {
		base.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			base.Fatal().Err(err).Msg("roll back migrations")
		}
		base.Info().Msg("migrations rolled back")
		return
	}
	if err := migrate.Apply(ctx, pool, log); err != nil {
		base.Fatal().Err(err).Msg("apply migrations")
	}
	base.Info().Msg("migrations applied")
}
