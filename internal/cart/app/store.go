package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/mastice-lab/storefront/internal/cart/domain"
)

// Store is one shopper's cart. Every mutation persists the next state first
// and only then replaces the in-memory lines, so a failed save leaves the
// cart as it was.
type Store struct {
	mu        sync.Mutex
	shopperID string
	repo      CartRepo
	items     []domain.CartItem
}

func NewStore(ctx context.Context, shopperID string, repo CartRepo) (*Store, error) {
	items, err := repo.Load(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &Store{shopperID: shopperID, repo: repo, items: domain.Clone(items)}, nil
}

func (s *Store) AddToCart(ctx context.Context, item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, domain.Reconcile(s.items, item))
}

func (s *Store) UpdateQuantity(ctx context.Context, id int, color string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.SetQuantity(s.items, id, color, n)
	if !changed {
		return nil
	}
	return s.commit(ctx, next)
}

func (s *Store) RemoveFromCart(ctx context.Context, id int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.Remove(s.items, id, color)
	if !changed {
		return nil
	}
	return s.commit(ctx, next)
}

func (s *Store) UpdateItemColor(ctx context.Context, id int, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.Recolor(s.items, id, from, to)
	if !changed {
		return nil
	}
	return s.commit(ctx, next)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, []domain.CartItem{})
}

func (s *Store) RemoveLines(ctx context.Context, taken []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.Subtract(s.items, taken)
	if !changed {
		return nil
	}
	return s.commit(ctx, next)
}

func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Clone(s.items)
}

func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalPrice(s.items)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TotalItems(s.items)
}

// commit must be called with mu held.
func (s *Store) commit(ctx context.Context, next []domain.CartItem) error {
	if err := s.repo.Save(ctx, s.shopperID, next); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.items = next
	return nil
}
