package storefront

import (
	"context"
	"fmt"
	"time"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"fireworks-storefront/internal/pricing"
	"fireworks-storefront/internal/tracking"
)

// Payment methods offered on the payment page.
const (
	PaymentCard       = "card"
	PaymentUPI        = "upi"
	PaymentNetBanking = "netbanking"
)

// PaymentMethods lists the accepted methods in display order.
func PaymentMethods() []string {
	return []string{PaymentCard, PaymentUPI, PaymentNetBanking}
}

// CheckoutView is what the checkout page shows before submission.
type CheckoutView struct {
	Items  []domain.CartLineItem `json:"items"`
	Totals pricing.Totals        `json:"totals"`
}

// PaymentResult is returned once the simulated payment succeeds.
type PaymentResult struct {
	Order        domain.Order `json:"order"`
	Method       string       `json:"method"`
	TrackingPath string       `json:"trackingPath"`
}

// PreviewCheckout returns the order summary, or a redirect when the session or
// the cart cannot check out.
func (a *App) PreviewCheckout() (CheckoutView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.checkoutable(); err != nil {
		return CheckoutView{}, err
	}
	items := a.cart.Items()
	return CheckoutView{Items: items, Totals: pricing.ComputeTotals(items)}, nil
}

// checkoutable runs the checkout preconditions. Caller holds mu.
func (a *App) checkoutable() (int64, error) {
	s, err := a.require(false, "/checkout")
	if err != nil {
		return 0, err
	}
	if a.cart.IsEmpty() {
		return 0, &RedirectError{To: RouteCart, Reason: ErrEmptyCart}
	}
	return s.User.ID, nil
}

// Checkout validates the shipping form, submits the order and caches it as
// the order awaiting payment. The cart is left untouched until payment.
func (a *App) Checkout(ctx context.Context, addr domain.ShippingAddress) (domain.Order, error) {
	a.mu.Lock()
	userID, err := a.checkoutable()
	items := a.cart.Items()
	a.mu.Unlock()
	if err != nil {
		return domain.Order{}, err
	}

	if err := forms.ValidateShipping(addr); err != nil {
		return domain.Order{}, err
	}

	draft := buildDraft(userID, forms.NormalizeShipping(addr), items)
	receipt, err := a.api.CreateOrder(ctx, draft)
	if err != nil {
		return domain.Order{}, a.apiFailed(ctx, "create order", err)
	}
	order := draft.Complete(receipt)

	a.mu.Lock()
	a.orders.AddOrder(order)
	a.mu.Unlock()

	a.metrics.OrderCreated()
	a.logger.Base().Info().
		Int64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("total", order.Total.String()).
		Msg("order created")
	return order, nil
}

func buildDraft(userID int64, addr domain.ShippingAddress, items []domain.CartLineItem) domain.OrderDraft {
	totals := pricing.ComputeTotals(items)
	lines := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}
	return domain.OrderDraft{
		UserID:          userID,
		ShippingAddress: addr,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		PaymentMethod:   domain.PaymentPending,
		PaymentStatus:   domain.PaymentPending,
	}
}

// CurrentOrder is the order awaiting payment with its totals.
func (a *App) CurrentOrder() (domain.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.require(false, "/payment")
	if err != nil {
		return domain.Order{}, err
	}
	o, ok := a.orders.Current()
	if !ok || o.UserID != s.User.ID {
		return domain.Order{}, &RedirectError{To: RouteCart, Reason: ErrNoCurrentOrder}
	}
	return o, nil
}

// Pay simulates the payment for the current order. It waits for the
// configured delay, then always succeeds, empties the cart and hands back the
// tracking route. Cancelling ctx during the wait leaves all state untouched.
func (a *App) Pay(ctx context.Context, method string) (PaymentResult, error) {
	if !validPaymentMethod(method) {
		return PaymentResult{}, fmt.Errorf("%q: %w", method, ErrInvalidPaymentMethod)
	}
	order, err := a.CurrentOrder()
	if err != nil {
		return PaymentResult{}, err
	}

	if a.paymentDelay > 0 {
		timer := time.NewTimer(a.paymentDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	a.mu.Lock()
	cur, ok := a.orders.Current()
	s := a.auth.Session()
	if !ok || cur.ID != order.ID || s.User == nil || s.User.ID != cur.UserID {
		a.mu.Unlock()
		return PaymentResult{}, &RedirectError{To: RouteCart, Reason: ErrNoCurrentOrder}
	}
	a.cart.Clear()
	a.saveCart(ctx)
	a.orders.ClearCurrent()
	a.mu.Unlock()

	a.metrics.CartMutation("clear")
	a.metrics.PaymentCompleted(method)
	a.logger.Base().Info().Int64("order_id", order.ID).Str("method", method).Msg("payment completed")
	return PaymentResult{Order: order, Method: method, TrackingPath: tracking.Path(order.ID)}, nil
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}
