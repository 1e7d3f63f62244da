package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fireworks-storefront/internal/httpserver"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront JSON host",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if addr == "" {
				addr = e.cfg.HTTP.Addr
			}
			return serve(e, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to STOREFRONT_HTTP_ADDR)")
	return cmd
}

func serve(e *env, addr string) error {
	srv := httpserver.New(addr, e.log, httpserver.Deps{
		App:         e.app,
		Metrics:     e.metrics,
		CORSOrigins: e.cfg.HTTP.CORSOrigins,
		Ready:       e.ready,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		e.log.Base().Info().Str("signal", sig.String()).Msg("shutting down")
	case runErr = <-serverErr:
		e.log.Error(context.Background(), "server error", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		e.log.Error(ctx, "graceful shutdown failed", err)
		return err
	}
	e.log.Base().Info().Msg("server stopped")
	return runErr
}
