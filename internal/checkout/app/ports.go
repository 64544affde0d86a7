package app

import (
	"context"

	"github.com/mastice-lab/storefront/internal/checkout/domain"
)

type CartItem struct {
	ProductID int
	Name      string
	Category  string
	Image     string
	Price     int64
	Color     string
	Quantity  int
}

// CartReader reads the cart and takes purchased lines out of it. Lines added
// after the purchase snapshot stay in the cart.
type CartReader interface {
	GetCart(ctx context.Context, shopperID string) ([]CartItem, error)
	RemovePurchased(ctx context.Context, shopperID string, purchased []CartItem) error
}

type Product struct {
	ID    int
	Name  string
	Price int64
}

// CatalogReader returns ErrProductUnavailable for products no longer sold.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID int) (Product, error)
}

type OrderDraft struct {
	Lines       []domain.Line
	TotalPrice  int64
	ShippingFee int64
	Customer    domain.Form
}

type OrderWriter interface {
	AddOrder(ctx context.Context, shopperID string, draft OrderDraft) (string, error)
}

// Deduper guards checkout against duplicate submissions.
type Deduper interface {
	Key(scope, key string) string
	Claim(ctx context.Context, key string) (result string, owned bool, err error)
	Complete(ctx context.Context, key, result string) error
	Release(ctx context.Context, key string) error
}
