// Package storefront is the single execution context that ties the cart, the
// session and the order cache to the remote commerce API. Every exported
// method is one user action.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fireworks-storefront/internal/auth"
	"fireworks-storefront/internal/cart"
	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/metrics"
	"fireworks-storefront/internal/orders"
	"fireworks-storefront/internal/repository/clientstate"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNoCurrentOrder       = errors.New("no order awaiting payment")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrAdminRequired        = errors.New("admin access required")
)

// API is the slice of the commerce API the storefront consumes.
type API interface {
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.OrderReceipt, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	TrackOrder(ctx context.Context, orderNumber string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)

	Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error)
	AdminLogin(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error)
}

type Options struct {
	API   API
	Store clientstate.Repository
	// PersistCart keeps the cart under clientstate.KeyCart across restarts.
	PersistCart  bool
	PaymentDelay time.Duration
	Metrics      *metrics.Storefront
	Logger       *logger.Logger
}

// App owns the client state. Local sections run under mu; calls to the API
// run outside it and their results are committed afterwards.
type App struct {
	mu     sync.Mutex
	cart   *cart.State
	auth   *auth.State
	orders *orders.State

	api          API
	store        clientstate.Repository
	persistCart  bool
	paymentDelay time.Duration
	metrics      *metrics.Storefront
	logger       *logger.Logger
}

// New restores the persisted session (and cart, when enabled) and returns a
// ready App.
func New(ctx context.Context, opts Options) *App {
	log := logger.OrNop(opts.Logger)
	store := opts.Store
	if store == nil {
		store = clientstate.NewMemory()
	}
	a := &App{
		auth:         auth.Restore(ctx, store, log),
		orders:       orders.New(),
		api:          opts.API,
		store:        store,
		persistCart:  opts.PersistCart,
		paymentDelay: opts.PaymentDelay,
		metrics:      opts.Metrics,
		logger:       log,
	}
	a.cart = a.restoreCart(ctx)
	return a
}

// Token is the bearer token of the current session, or "".
func (a *App) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth.Session().BearerToken()
}

func (a *App) restoreCart(ctx context.Context) *cart.State {
	if !a.persistCart {
		return cart.New()
	}
	data, err := a.store.Load(ctx, clientstate.KeyCart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.logger.Error(ctx, "load persisted cart", err)
		}
		return cart.New()
	}
	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		a.logger.Warn(ctx, "discarding unreadable persisted cart")
		return cart.New()
	}
	return cart.Restore(items)
}

// saveCart must be called with mu held.
func (a *App) saveCart(ctx context.Context) {
	if !a.persistCart {
		return
	}
	data, err := json.Marshal(a.cart.Items())
	if err != nil {
		a.logger.Error(ctx, "encode cart", err)
		return
	}
	if err := a.store.Save(ctx, clientstate.KeyCart, data); err != nil {
		a.logger.Error(ctx, "persist cart", err)
	}
}

func (a *App) apiFailed(ctx context.Context, op string, err error) error {
	if !errors.Is(err, context.Canceled) {
		a.logger.Error(ctx, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
