package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// fakeAPI is an in-memory commerce API with per-call error injection.
type fakeAPI struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	orders   []domain.Order
	users    map[string]domain.AuthResult
	nextID   int64
	drafts   []domain.OrderDraft
	fail     map[string]error
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		products: map[int64]domain.Product{},
		users:    map[string]domain.AuthResult{},
		fail:     map[string]error{},
		nextID:   100,
	}
	f.products[1] = domain.Product{ID: 1, Name: "Sky Rocket", Category: "Rockets", Price: decimal.NewFromInt(500), InStock: true}
	f.products[2] = domain.Product{ID: 2, Name: "Gift Box Deluxe", Category: "Gift Boxes", Price: decimal.NewFromInt(1200), InStock: true}
	f.products[3] = domain.Product{ID: 3, Name: "Flower Pot", Category: "Fountains", Price: decimal.NewFromInt(150), InStock: false}
	f.users["asha@example.com"] = domain.AuthResult{User: domain.User{ID: 7, FirstName: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}, Token: "cust-token"}
	f.users["ops@example.com"] = domain.AuthResult{User: domain.User{ID: 1, FirstName: "Ops", Email: "ops@example.com", Role: domain.RoleAdmin}, Token: "admin-token"}
	return f
}

func (f *fakeAPI) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAPI) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[op]
}

func (f *fakeAPI) ListProducts(ctx context.Context, _ domain.ProductFilter) ([]domain.Product, error) {
	if err := f.check("ListProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for id := int64(1); id <= int64(len(f.products)); id++ {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	if err := f.check("GetProduct"); err != nil {
		return domain.Product{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeAPI) ListCategories(context.Context) ([]string, error) {
	return domain.Categories, f.check("ListCategories")
}

func (f *fakeAPI) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	if err := f.check("CreateProduct"); err != nil {
		return domain.Product{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = int64(len(f.products) + 1)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id int64, p domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	p.ID = id
	f.products[id] = p
	return p, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeAPI) CreateOrder(_ context.Context, draft domain.OrderDraft) (domain.OrderReceipt, error) {
	if err := f.check("CreateOrder"); err != nil {
		return domain.OrderReceipt{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	receipt := domain.OrderReceipt{
		ID:          f.nextID,
		OrderNumber: fmt.Sprintf("FW-%06d", f.nextID),
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
	f.drafts = append(f.drafts, draft)
	f.orders = append(f.orders, draft.Complete(receipt))
	return receipt, nil
}

func (f *fakeAPI) GetOrder(_ context.Context, id int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeAPI) TrackOrder(_ context.Context, number string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeAPI) ListOrders(context.Context) ([]domain.Order, error) {
	if err := f.check("ListOrders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Order{}, f.orders...), nil
}

func (f *fakeAPI) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return f.orders[i], nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeAPI) Login(_ context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	if err := f.check("Login"); err != nil {
		return domain.AuthResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.users[creds.Email]
	if !ok {
		return domain.AuthResult{}, domain.ErrUnauthorized
	}
	return res, nil
}

func (f *fakeAPI) AdminLogin(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	return f.Login(ctx, creds)
}

func (f *fakeAPI) Register(_ context.Context, reg domain.Registration) (domain.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[reg.Email]; ok {
		return domain.AuthResult{}, domain.ErrAlreadyExists
	}
	res := domain.AuthResult{
		User:  domain.User{ID: int64(len(f.users) + 10), FirstName: reg.FirstName, LastName: reg.LastName, Email: reg.Email, Role: domain.RoleCustomer},
		Token: "new-token",
	}
	f.users[reg.Email] = res
	return res, nil
}
