// Package devapi is an in-memory stand-in for the remote commerce API. It serves
// the same routes the storefront client calls, for local runs and tests.
package devapi

import (
	"context"
	"net/http"
	"time"

	"fireworks-storefront/internal/logger"
)

// Options configure the dev API.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    *logger.Logger
}

// API holds the in-memory tables behind the dev commerce API.
type API struct {
	Catalog  *Catalog
	Accounts *Accounts
	Orders   *OrderBook

	tokens *Tokens
	log    *logger.Logger
}

func New(opts Options) *API {
	return &API{
		Catalog:  NewCatalog(),
		Accounts: NewAccounts(),
		Orders:   NewOrderBook(),
		tokens:   NewTokens(opts.JWTSecret, opts.TokenTTL),
		log:      logger.OrNop(opts.Logger),
	}
}

// Handler returns the gin engine serving /api.
func (a *API) Handler() http.Handler {
	return a.router()
}

// Server wraps the HTTP server for the dev API.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(addr string, api *API) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: api.log,
	}
}

func (s *Server) ListenAndServe() error {
	s.logger.Base().Info().Str("addr", s.httpServer.Addr).Msg("dev commerce api listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
