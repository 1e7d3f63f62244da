package storefront

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/orders"
	"fireworks-storefront/internal/tracking"
)

// Track fetches an order by numeric id or by order number, refreshes the
// cached copy and projects it onto the delivery timeline. An all-digit
// reference unknown as an id is retried as an order number.
func (a *App) Track(ctx context.Context, ref string) (tracking.View, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		view, err := a.TrackByID(ctx, id)
		if !errors.Is(err, domain.ErrNotFound) {
			return view, err
		}
	}
	return a.TrackByNumber(ctx, ref)
}

func (a *App) TrackByID(ctx context.Context, id int64) (tracking.View, error) {
	o, err := a.api.GetOrder(ctx, id)
	if err != nil {
		return tracking.View{}, a.apiFailed(ctx, "get order", err)
	}
	return a.refreshed(o), nil
}

func (a *App) TrackByNumber(ctx context.Context, orderNumber string) (tracking.View, error) {
	o, err := a.api.TrackOrder(ctx, orderNumber)
	if err != nil {
		return tracking.View{}, a.apiFailed(ctx, "track order", err)
	}
	return a.refreshed(o), nil
}

func (a *App) refreshed(o domain.Order) tracking.View {
	a.mu.Lock()
	a.orders.Refresh(o)
	a.mu.Unlock()
	return tracking.Project(o)
}

// MyOrdersView is the order history page of the signed-in customer.
type MyOrdersView struct {
	Orders []domain.Order `json:"orders"`
	Stats  orders.Stats   `json:"stats"`
}

// MyOrders lists the cached orders placed by the signed-in user.
func (a *App) MyOrders() (MyOrdersView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.require(false, "/orders")
	if err != nil {
		return MyOrdersView{}, err
	}
	mine := make([]domain.Order, 0, a.orders.Len())
	for _, o := range a.orders.Orders() {
		if o.UserID == s.User.ID {
			mine = append(mine, o)
		}
	}
	return MyOrdersView{Orders: mine, Stats: orders.Summarize(mine)}, nil
}
