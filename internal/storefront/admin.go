package storefront

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const recentOrdersLimit = 5

// Dashboard holds the back-office headline numbers.
type Dashboard struct {
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	PendingOrders int             `json:"pendingOrders"`
	RecentOrders  []domain.Order  `json:"recentOrders"`
}

// OrderFilter narrows the back-office order list. An empty Status or "All"
// keeps every status.
type OrderFilter struct {
	Status string `form:"status" json:"status,omitempty"`
	Search string `form:"search" json:"search,omitempty"`
}

func (a *App) requireAdmin(from string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.require(true, from)
	return err
}

func (a *App) Dashboard(ctx context.Context) (Dashboard, error) {
	if err := a.requireAdmin("/admin"); err != nil {
		return Dashboard{}, err
	}

	var (
		products []domain.Product
		all      []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = a.api.ListProducts(gctx, domain.ProductFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		all, err = a.api.ListOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, a.apiFailed(ctx, "load dashboard", err)
	}
	return BuildDashboard(len(products), all), nil
}

// BuildDashboard derives the dashboard from the full order list. Pending
// counts both Pending and Processing orders.
func BuildDashboard(productCount int, all []domain.Order) Dashboard {
	d := Dashboard{TotalProducts: productCount, TotalOrders: len(all), TotalRevenue: decimal.Zero}
	for _, o := range all {
		d.TotalRevenue = d.TotalRevenue.Add(o.Total)
		if o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusProcessing {
			d.PendingOrders++
		}
	}
	n := min(recentOrdersLimit, len(all))
	d.RecentOrders = append([]domain.Order{}, all[:n]...)
	return d
}

func (a *App) AdminOrders(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	if err := a.requireAdmin("/admin/orders"); err != nil {
		return nil, err
	}
	all, err := a.api.ListOrders(ctx)
	if err != nil {
		return nil, a.apiFailed(ctx, "list orders", err)
	}
	return FilterOrders(all, f), nil
}

// FilterOrders keeps orders matching the status and whose order number
// (case-insensitively) or id contains the search text.
func FilterOrders(all []domain.Order, f OrderFilter) []domain.Order {
	status := strings.TrimSpace(f.Status)
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if status != "" && !strings.EqualFold(status, "All") && string(o.Status) != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.OrderNumber), query) &&
			!strings.Contains(strconv.FormatInt(o.ID, 10), query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// UpdateOrderStatus moves an order to one of the four lifecycle labels.
func (a *App) UpdateOrderStatus(ctx context.Context, id int64, status string) (domain.Order, error) {
	if err := a.requireAdmin("/admin/orders"); err != nil {
		return domain.Order{}, err
	}
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	o, err := a.api.UpdateOrderStatus(ctx, id, st)
	if err != nil {
		return domain.Order{}, a.apiFailed(ctx, "update order status", err)
	}
	a.mu.Lock()
	a.orders.Refresh(o)
	a.mu.Unlock()
	return o, nil
}

func (a *App) AdminProducts(ctx context.Context) ([]domain.Product, error) {
	if err := a.requireAdmin("/admin/products"); err != nil {
		return nil, err
	}
	return a.Products(ctx, domain.ProductFilter{})
}

func (a *App) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := a.requireAdmin("/admin/products/new"); err != nil {
		return domain.Product{}, err
	}
	if err := forms.ValidateProduct(p); err != nil {
		return domain.Product{}, err
	}
	created, err := a.api.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, a.apiFailed(ctx, "create product", err)
	}
	return created, nil
}

func (a *App) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	if err := a.requireAdmin(fmt.Sprintf("/admin/products/edit/%d", id)); err != nil {
		return domain.Product{}, err
	}
	if err := forms.ValidateProduct(p); err != nil {
		return domain.Product{}, err
	}
	updated, err := a.api.UpdateProduct(ctx, id, p)
	if err != nil {
		return domain.Product{}, a.apiFailed(ctx, "update product", err)
	}
	return updated, nil
}

func (a *App) DeleteProduct(ctx context.Context, id int64) error {
	if err := a.requireAdmin("/admin/products"); err != nil {
		return err
	}
	if err := a.api.DeleteProduct(ctx, id); err != nil {
		return a.apiFailed(ctx, "delete product", err)
	}
	return nil
}
