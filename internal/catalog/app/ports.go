package app

import (
	"context"

	"github.com/mastice-lab/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Get(ctx context.Context, id int) (domain.Product, error)
	List(ctx context.Context, f domain.Filter) ([]domain.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
}
