package devapi

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fireworks-storefront/internal/domain"
)

// Catalog is the in-memory product table.
type Catalog struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

func NewCatalog() *Catalog {
	return &Catalog{products: map[int64]domain.Product{}}
}

// List applies the storefront filters. Without a sort key products come back
// in id order.
func (c *Catalog) List(f domain.ProductFilter) []domain.Product {
	c.mu.RLock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	switch f.SortBy {
	case domain.SortByName:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	case domain.SortByPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case domain.SortByPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case domain.SortByRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func matches(p domain.Product, f domain.ProductFilter) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, "All") && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func (c *Catalog) Get(id int64) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// Categories returns the fixed category list restricted to those in use.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	used := map[string]bool{}
	for _, p := range c.products {
		used[strings.ToLower(p.Category)] = true
	}
	out := make([]string, 0, len(domain.Categories))
	for _, name := range domain.Categories {
		if used[strings.ToLower(name)] {
			out = append(out, name)
		}
	}
	return out
}

func (c *Catalog) Create(p domain.Product) domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	p.ID = c.nextID
	c.products[p.ID] = p
	return p
}

func (c *Catalog) Update(id int64, p domain.Product) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	p.ID = id
	c.products[id] = p
	return p, nil
}

func (c *Catalog) Delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.products, id)
	return nil
}

// Upsert matches on the product name, case-insensitively. It satisfies the
// CSV importer's writer.
func (c *Catalog) Upsert(_ context.Context, p domain.Product) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, existing := range c.products {
		if strings.EqualFold(existing.Name, p.Name) {
			p.ID = id
			c.products[id] = p
			return p, nil
		}
	}
	c.nextID++
	p.ID = c.nextID
	c.products[p.ID] = p
	return p, nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
