package app

import (
	"context"

	"github.com/mastice-lab/storefront/internal/cart/domain"
)

// CartRepo persists a shopper's whole cart. Load returns an empty cart when
// nothing (or nothing readable) has been saved.
type CartRepo interface {
	Load(ctx context.Context, shopperID string) ([]domain.CartItem, error)
	Save(ctx context.Context, shopperID string, items []domain.CartItem) error
}

// ProductInfo is the catalog data a cart line is built from.
type ProductInfo struct {
	ID       int
	Name     string
	Category string
	Image    string
	Price    int64
	Colors   []string
}

type ProductResolver interface {
	Product(ctx context.Context, id int) (ProductInfo, error)
}
