package storefront

import (
	"context"
	"errors"
	"testing"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []domain.Order {
	mk := func(id int64, number string, status domain.OrderStatus, total int64) domain.Order {
		return domain.Order{ID: id, OrderNumber: number, Status: status, Total: decimal.NewFromInt(total)}
	}
	return []domain.Order{
		mk(1, "FW-000001", domain.OrderStatusPending, 100),
		mk(2, "FW-000002", domain.OrderStatusProcessing, 200),
		mk(3, "FW-000003", domain.OrderStatusShipped, 300),
		mk(4, "FW-000004", domain.OrderStatusDelivered, 400),
		mk(12, "FW-000012", domain.OrderStatusDelivered, 500),
		mk(21, "FW-000021", domain.OrderStatusPending, 600),
	}
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(9, sampleOrders())
	assert.Equal(t, 9, d.TotalProducts)
	assert.Equal(t, 6, d.TotalOrders)
	assert.Equal(t, "2100", d.TotalRevenue.String())
	assert.Equal(t, 3, d.PendingOrders)
	require.Len(t, d.RecentOrders, 5)
	assert.Equal(t, int64(1), d.RecentOrders[0].ID)

	empty := BuildDashboard(0, nil)
	assert.Equal(t, "0", empty.TotalRevenue.String())
	assert.Empty(t, empty.RecentOrders)
}

func TestFilterOrders(t *testing.T) {
	all := sampleOrders()
	ids := func(list []domain.Order) []int64 {
		out := make([]int64, 0, len(list))
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Len(t, FilterOrders(all, OrderFilter{}), 6)
	assert.Len(t, FilterOrders(all, OrderFilter{Status: "All"}), 6)
	assert.Equal(t, []int64{4, 12}, ids(FilterOrders(all, OrderFilter{Status: "Delivered"})))
	assert.Equal(t, []int64{12}, ids(FilterOrders(all, OrderFilter{Search: "fw-000012"})))
	assert.Equal(t, []int64{1, 12, 21}, ids(FilterOrders(all, OrderFilter{Search: "1"})))
	assert.Equal(t, []int64{1, 21}, ids(FilterOrders(all, OrderFilter{Status: "Pending", Search: "1"})))
}

func TestAdminOperationsRequireAdmin(t *testing.T) {
	ctx := context.Background()
	app := newApp(t, newFakeAPI(), nil)

	_, err := app.Dashboard(ctx)
	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	assert.Equal(t, RouteAdminLogin, redirect.To)

	login(t, app, "asha@example.com")
	_, err = app.AdminOrders(ctx, OrderFilter{})
	assert.True(t, errors.Is(err, ErrAdminRequired))
	err = app.DeleteProduct(ctx, 1)
	assert.True(t, errors.Is(err, ErrAdminRequired))
}

func TestDashboardAndStatusUpdate(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	app := newApp(t, api, nil)
	login(t, app, "asha@example.com")
	_, err := app.AddToCart(ctx, 1, 2)
	require.NoError(t, err)
	order, err := app.Checkout(ctx, validAddress())
	require.NoError(t, err)

	app.Logout(ctx)
	login(t, app, "ops@example.com")

	d, err := app.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 1, d.TotalOrders)
	assert.Equal(t, 1, d.PendingOrders)
	assert.True(t, d.TotalRevenue.Equal(order.Total))

	_, err = app.UpdateOrderStatus(ctx, order.ID, "Lost")
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	updated, err := app.UpdateOrderStatus(ctx, order.ID, "Processing")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)

	api.failWith("ListOrders", domain.ErrUnavailable)
	_, err = app.Dashboard(ctx)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	app := newApp(t, newFakeAPI(), nil)
	login(t, app, "ops@example.com")

	_, err := app.CreateProduct(ctx, domain.Product{Name: "Whistler"})
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Fields, "price")

	p := domain.Product{Name: "Whistler", Description: "Loud", Category: "Rockets", Price: decimal.NewFromInt(80), InStock: true}
	created, err := app.CreateProduct(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	p.Price = decimal.NewFromInt(90)
	updated, err := app.UpdateProduct(ctx, created.ID, p)
	require.NoError(t, err)
	assert.Equal(t, "90", updated.Price.String())

	require.NoError(t, app.DeleteProduct(ctx, created.ID))
	err = app.DeleteProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
