// Package pricing derives order totals from cart line items. Every view that
// shows money (cart summary, checkout, payment) and the order draft itself go
// through ComputeTotals so the persisted values match what the shopper saw.
package pricing

import (
	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// TaxRate is the flat consumption tax applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.18")
	// FreeShippingThreshold is exclusive: a subtotal must exceed it to ship free.
	FreeShippingThreshold = decimal.NewFromInt(2000)
	// ShippingFee is charged at or below the threshold.
	ShippingFee = decimal.NewFromInt(99)
)

// Totals is the price breakdown of a set of line items.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the shipping fee was waived.
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// Subtotal sums unit price times quantity over items.
func Subtotal(items []domain.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ComputeTotals derives subtotal, tax, shipping and total from line items.
func ComputeTotals(items []domain.CartLineItem) Totals {
	return ComputeFromSubtotal(Subtotal(items))
}

// ComputeFromSubtotal is ComputeTotals for a caller that already holds the subtotal.
// Tax is not rounded here.
func ComputeFromSubtotal(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate)
	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
