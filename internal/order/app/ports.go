package app

import (
	"context"

	"github.com/mastice-lab/storefront/internal/order/domain"
)

// OrderRepo persists a shopper's whole order history, most recent first.
type OrderRepo interface {
	Load(ctx context.Context, shopperID string) ([]domain.Order, error)
	Save(ctx context.Context, shopperID string, orders []domain.Order) error
}

type EventPublisher interface {
	OrderPlaced(ctx context.Context, shopperID string, o domain.Order) error
	OrderStatusChanged(ctx context.Context, shopperID string, o domain.Order, from domain.Status) error
}
