package commerceapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fireworks-storefront/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	var out []domain.Product
	if err := c.do(ctx, "list products", http.MethodGet, "/products", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, "get product", http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, "list categories", http.MethodGet, "/products/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, "create product", http.MethodPost, "/products", nil, p, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, "update product", http.MethodPut, "/products/"+strconv.FormatInt(id, 10), nil, p, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, "delete product", http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
