package storefront

import (
	"context"
	"fmt"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/pricing"
)

// CartView is the cart page: lines in insertion order plus the order summary.
type CartView struct {
	Items     []domain.CartLineItem `json:"items"`
	ItemCount int                   `json:"itemCount"`
	Totals    pricing.Totals        `json:"totals"`
}

func (a *App) cartView() CartView {
	return CartView{
		Items:     a.cart.Items(),
		ItemCount: a.cart.ItemCount(),
		Totals:    a.cart.Summary(),
	}
}

func (a *App) Cart() CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cartView()
}

// AddToCart looks the product up and adds quantity units of it. Products that
// are out of stock are refused.
func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) (CartView, error) {
	p, err := a.api.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, a.apiFailed(ctx, "get product", err)
	}
	if !p.InStock {
		return CartView{}, fmt.Errorf("%s: %w", p.Name, ErrOutOfStock)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.AddItem(p, quantity)
	a.saveCart(ctx)
	a.metrics.CartMutation("add")
	return a.cartView(), nil
}

func (a *App) RemoveFromCart(ctx context.Context, productID int64) CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.RemoveItem(productID)
	a.saveCart(ctx)
	a.metrics.CartMutation("remove")
	return a.cartView()
}

// UpdateCartQuantity sets a line's quantity; zero or less removes the line.
func (a *App) UpdateCartQuantity(ctx context.Context, productID int64, quantity int) CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.UpdateQuantity(productID, quantity)
	a.saveCart(ctx)
	a.metrics.CartMutation("update")
	return a.cartView()
}

func (a *App) ClearCart(ctx context.Context) CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.Clear()
	a.saveCart(ctx)
	a.metrics.CartMutation("clear")
	return a.cartView()
}
