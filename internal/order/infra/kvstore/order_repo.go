package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mastice-lab/storefront/internal/order/domain"
	"github.com/mastice-lab/storefront/pkg/kv"
)

const ordersKey = "orders"

type OrderRepo struct {
	store kv.Store
	log   *slog.Logger
}

func NewOrderRepo(store kv.Store, log *slog.Logger) *OrderRepo {
	return &OrderRepo{store: store, log: log}
}

func (r *OrderRepo) Load(ctx context.Context, shopperID string) ([]domain.Order, error) {
	key := kv.Key(shopperID, ordersKey)
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		r.log.Warn("discarding unreadable order history", "key", key, "err", err)
		return []domain.Order{}, nil
	}

	valid := orders[:0]
	for _, o := range orders {
		if o.ID == "" || !o.Status.Valid() {
			r.log.Warn("dropping invalid order", "key", key, "order_id", o.ID, "status", o.Status)
			continue
		}
		valid = append(valid, o)
	}
	return valid, nil
}

func (r *OrderRepo) Save(ctx context.Context, shopperID string, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	return r.store.Put(ctx, kv.Key(shopperID, ordersKey), raw)
}
