package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fireworks-storefront/internal/config"
	"fireworks-storefront/internal/devapi"
	"fireworks-storefront/internal/importer"
	"fireworks-storefront/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	var (
		addr     string
		csvPath  string
		skipSeed bool
	)
	flag.StringVar(&addr, "addr", cfg.DevAPI.Addr, "Listen address")
	flag.StringVar(&csvPath, "import", cfg.DevAPI.ImportCSV, "Optional product CSV to import at startup")
	flag.BoolVar(&skipSeed, "no-seed", false, "Start with an empty catalog")
	flag.Parse()

	log := logger.New(logger.Options{
		ServiceName: "fireworks-devapi",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	base := log.Base()
	ctx := context.Background()

	api := devapi.New(devapi.Options{
		JWTSecret: cfg.DevAPI.JWTSecret,
		TokenTTL:  cfg.DevAPI.TokenTTL,
		Logger:    log,
	})
	if !skipSeed {
		if err := devapi.SeedCatalog(ctx, api.Catalog); err != nil {
			base.Fatal().Err(err).Msg("seed catalog")
		}
	}
	if err := devapi.SeedAdmin(api.Accounts, cfg.DevAPI.AdminEmail, cfg.DevAPI.AdminPassword); err != nil {
		base.Fatal().Err(err).Msg("seed admin")
	}
	if csvPath != "" {
		if err := importCSV(ctx, csvPath, api, log); err != nil {
			base.Fatal().Err(err).Str("file", csvPath).Msg("import products")
		}
	}

	srv := devapi.NewServer(addr, api)
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		base.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		base.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		base.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	base.Info().Msg("server stopped")
}

func importCSV(ctx context.Context, path string, api *devapi.API, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, api.Catalog).Run(ctx)
	if err != nil {
		return err
	}
	log.Base().Info().
		Int("products", count).
		Dur("elapsed", time.Since(start).Truncate(time.Millisecond)).
		Msg("catalog imported")
	return nil
}
