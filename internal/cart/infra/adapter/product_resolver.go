package adapter

import (
	"context"
	"errors"

	"github.com/mastice-lab/storefront/internal/cart/app"
	catalogapp "github.com/mastice-lab/storefront/internal/catalog/app"
)

// ProductResolver reads cart line data from the in-process catalog.
type ProductResolver struct {
	catalog *catalogapp.Service
}

func NewProductResolver(catalog *catalogapp.Service) *ProductResolver {
	return &ProductResolver{catalog: catalog}
}

func (r *ProductResolver) Product(ctx context.Context, id int) (app.ProductInfo, error) {
	p, err := r.catalog.GetProduct(ctx, id)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return app.ProductInfo{}, app.ErrNotFound
	}
	if err != nil {
		return app.ProductInfo{}, err
	}

	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Code)
	}
	return app.ProductInfo{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Image:    p.Image,
		Price:    p.Price,
		Colors:   colors,
	}, nil
}
