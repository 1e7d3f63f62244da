// Package orders caches the orders this client has placed or viewed. The
// commerce API owns every order; the cache only copies what it reports.
package orders

import (
	"fireworks-storefront/internal/domain"
)

// Stats are the counters shown on the "my orders" page.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
}

// State holds order history plus the order currently awaiting payment.
// Not safe for concurrent use.
type State struct {
	history []domain.Order
	current *domain.Order
}

func New() *State {
	return &State{}
}

// AddOrder appends a freshly created order and makes it current.
func (s *State) AddOrder(o domain.Order) {
	o = cloneOrder(o)
	s.history = append(s.history, o)
	cur := cloneOrder(o)
	s.current = &cur
}

// Current returns the order under payment, if any.
func (s *State) Current() (domain.Order, bool) {
	if s.current == nil {
		return domain.Order{}, false
	}
	return cloneOrder(*s.current), true
}

// ClearCurrent forgets the order under payment without touching history.
func (s *State) ClearCurrent() {
	s.current = nil
}

// Orders returns the history, oldest first.
func (s *State) Orders() []domain.Order {
	out := make([]domain.Order, len(s.history))
	for i, o := range s.history {
		out[i] = cloneOrder(o)
	}
	return out
}

// Find looks up a cached order by id.
func (s *State) Find(id int64) (domain.Order, bool) {
	for _, o := range s.history {
		if o.ID == id {
			return cloneOrder(o), true
		}
	}
	return domain.Order{}, false
}

// Refresh replaces the cached copy carrying the same id with the one the
// commerce API returned. Unknown ids are ignored.
func (s *State) Refresh(o domain.Order) bool {
	found := false
	for i := range s.history {
		if s.history[i].ID == o.ID {
			s.history[i] = cloneOrder(o)
			found = true
		}
	}
	if found && s.current != nil && s.current.ID == o.ID {
		cur := cloneOrder(o)
		s.current = &cur
	}
	return found
}

// Len is the number of cached orders.
func (s *State) Len() int {
	return len(s.history)
}

func (s *State) Stats() Stats {
	return Summarize(s.history)
}

// Summarize counts orders by lifecycle status.
func Summarize(list []domain.Order) Stats {
	st := Stats{Total: len(list)}
	for _, o := range list {
		switch o.Status {
		case domain.OrderStatusPending:
			st.Pending++
		case domain.OrderStatusShipped:
			st.Shipped++
		case domain.OrderStatusDelivered:
			st.Delivered++
		}
	}
	return st
}

func cloneOrder(o domain.Order) domain.Order {
	if o.Items != nil {
		items := make([]domain.OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}
