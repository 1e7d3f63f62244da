package storefront

import (
	"context"

	"fireworks-storefront/internal/domain"
)

func (a *App) Products(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	list, err := a.api.ListProducts(ctx, f)
	if err != nil {
		return nil, a.apiFailed(ctx, "list products", err)
	}
	return list, nil
}

func (a *App) Product(ctx context.Context, id int64) (domain.Product, error) {
	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, a.apiFailed(ctx, "get product", err)
	}
	return p, nil
}

func (a *App) Categories(ctx context.Context) ([]string, error) {
	list, err := a.api.ListCategories(ctx)
	if err != nil {
		return nil, a.apiFailed(ctx, "list categories", err)
	}
	return list, nil
}
