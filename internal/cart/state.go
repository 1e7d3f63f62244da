// Package cart holds the shopper's cart: an insertion-ordered set of line items,
// at most one per product, each with quantity >= 1. Derived values (item count,
// subtotal, totals) are recomputed from the line items on every read.
//
// A State is owned by a single execution context and is not safe for concurrent
// use; the storefront serializes access.
package cart

import (
	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

type State struct {
	order []int64
	lines map[int64]domain.CartLineItem
}

// New returns an empty cart.
func New() *State {
	return &State{lines: make(map[int64]domain.CartLineItem)}
}

// Restore rebuilds a cart from persisted line items. Duplicate product ids are
// merged and lines with quantity < 1 are dropped.
func Restore(items []domain.CartLineItem) *State {
	s := New()
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if existing, ok := s.lines[item.ProductID]; ok {
			existing.Quantity += item.Quantity
			s.lines[item.ProductID] = existing
			continue
		}
		s.insert(item)
	}
	return s
}

// AddItem adds quantity units of p. An existing line is incremented; otherwise a
// new line is appended. A quantity below 1 means one unit.
func (s *State) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if existing, ok := s.lines[p.ID]; ok {
		existing.Quantity += quantity
		s.lines[p.ID] = existing
		return
	}
	s.insert(domain.LineItemFromProduct(p, quantity))
}

// RemoveItem deletes the line for productID. Absent ids are ignored.
func (s *State) RemoveItem(productID int64) {
	if _, ok := s.lines[productID]; !ok {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity <= 0 removes
// the line. Unknown ids are ignored.
func (s *State) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	existing, ok := s.lines[productID]
	if !ok {
		return
	}
	existing.Quantity = quantity
	s.lines[productID] = existing
}

// Clear empties the cart.
func (s *State) Clear() {
	s.order = nil
	s.lines = make(map[int64]domain.CartLineItem)
}

// Get returns the line for productID.
func (s *State) Get(productID int64) (domain.CartLineItem, bool) {
	item, ok := s.lines[productID]
	return item, ok
}

// Items returns the line items in insertion order.
func (s *State) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lines[id])
	}
	return out
}

// Len is the number of distinct products.
func (s *State) Len() int {
	return len(s.order)
}

// IsEmpty reports whether the cart has no lines.
func (s *State) IsEmpty() bool {
	return len(s.order) == 0
}

// ItemCount sums quantities across lines.
func (s *State) ItemCount() int {
	n := 0
	for _, item := range s.lines {
		n += item.Quantity
	}
	return n
}

// Total is the subtotal: unit price times quantity summed over lines. It
// excludes tax and shipping.
func (s *State) Total() decimal.Decimal {
	return pricing.Subtotal(s.Items())
}

// Summary prices the current contents.
func (s *State) Summary() pricing.Totals {
	return pricing.ComputeTotals(s.Items())
}

func (s *State) insert(item domain.CartLineItem) {
	s.lines[item.ProductID] = item
	s.order = append(s.order, item.ProductID)
}
