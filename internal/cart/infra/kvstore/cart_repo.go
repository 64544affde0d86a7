package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mastice-lab/storefront/internal/cart/domain"
	"github.com/mastice-lab/storefront/pkg/kv"
)

const cartKey = "cart"

type CartRepo struct {
	store kv.Store
	log   *slog.Logger
}

func NewCartRepo(store kv.Store, log *slog.Logger) *CartRepo {
	return &CartRepo{store: store, log: log}
}

func (r *CartRepo) Load(ctx context.Context, shopperID string) ([]domain.CartItem, error) {
	key := kv.Key(shopperID, cartKey)
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.log.Warn("discarding unreadable cart", "key", key, "err", err)
		return []domain.CartItem{}, nil
	}

	valid := items[:0]
	for _, it := range items {
		if it.ID <= 0 || it.Quantity < 1 || it.Price < 0 {
			r.log.Warn("dropping invalid cart line", "key", key, "product_id", it.ID, "quantity", it.Quantity)
			continue
		}
		valid = append(valid, it)
	}

	merged := domain.Merge(valid)
	if len(merged) != len(valid) {
		r.log.Warn("merged duplicate cart lines", "key", key, "lines", len(valid), "kept", len(merged))
	}
	return merged, nil
}

func (r *CartRepo) Save(ctx context.Context, shopperID string, items []domain.CartItem) error {
	raw, err := json.Marshal(domain.Clone(items))
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return r.store.Put(ctx, kv.Key(shopperID, cartKey), raw)
}
