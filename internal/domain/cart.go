package domain

import "github.com/shopspring/decimal"

// CartLineItem is one product entry in the cart. Quantity is always >= 1 while
// the line is held by a cart.
type CartLineItem struct {
	ProductID         int64            `json:"productId"`
	Name              string           `json:"name"`
	UnitPrice         decimal.Decimal  `json:"unitPrice"`
	OriginalUnitPrice *decimal.Decimal `json:"originalUnitPrice,omitempty"`
	Quantity          int              `json:"quantity"`
	Category          string           `json:"category"`
	ImageRef          string           `json:"imageRef"`
}

// LineTotal is unit price times quantity.
func (l CartLineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineItemFromProduct snapshots the catalog fields the cart keeps.
func LineItemFromProduct(p Product, quantity int) CartLineItem {
	item := CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
		Category:  p.Category,
		ImageRef:  p.Image,
	}
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		item.OriginalUnitPrice = &orig
	}
	return item
}
