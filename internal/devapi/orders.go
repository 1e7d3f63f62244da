package devapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fireworks-storefront/internal/domain"
	"github.com/google/uuid"
)

// OrderBook stores submitted orders, newest first.
type OrderBook struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int64
	now    func() time.Time
}

func NewOrderBook() *OrderBook {
	return &OrderBook{now: time.Now}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("FW%s%s", now.Format("060102"), suffix)
}

// Create assigns id, order number, status and timestamp.
func (b *OrderBook) Create(draft domain.OrderDraft) domain.OrderReceipt {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	now := b.now().UTC()
	receipt := domain.OrderReceipt{
		ID:          b.nextID,
		OrderNumber: newOrderNumber(now),
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
	}
	b.orders = append([]domain.Order{draft.Complete(receipt)}, b.orders...)
	return receipt
}

func (b *OrderBook) Get(id int64) (domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (b *OrderBook) ByNumber(number string) (domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if strings.EqualFold(o.OrderNumber, number) {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (b *OrderBook) List() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Order(nil), b.orders...)
}

func (b *OrderBook) SetStatus(id int64, status domain.OrderStatus) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders[i].Status = status
			return b.orders[i], nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}
