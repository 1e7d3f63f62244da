package commerceapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fireworks-storefront/internal/domain"
)

// CreateOrder submits a draft and returns the server-assigned receipt.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.OrderReceipt, error) {
	var out domain.OrderReceipt
	err := c.do(ctx, "create order", http.MethodPost, "/orders", nil, draft, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, "get order", http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

func (c *Client) TrackOrder(ctx context.Context, orderNumber string) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, "track order", http.MethodGet, "/orders/track/"+url.PathEscape(orderNumber), nil, nil, &out)
	return out, err
}

// ListOrders returns every order. Admin only.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, "list orders", http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	var out domain.Order
	body := map[string]domain.OrderStatus{"status": status}
	err := c.do(ctx, "update order status", http.MethodPut, "/orders/"+strconv.FormatInt(id, 10)+"/status", nil, body, &out)
	return out, err
}
