package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mastice-lab/storefront/internal/order/domain"
	"github.com/mastice-lab/storefront/pkg/storecache"
)

type Service struct {
	repo   OrderRepo
	events EventPublisher
	log    *slog.Logger
	opts   Options
	stores *storecache.Cache[*Store]
}

func NewService(repo OrderRepo, events EventPublisher, log *slog.Logger, opts Options) *Service {
	s := &Service{
		repo:   repo,
		events: events,
		log:    log,
		opts:   opts,
	}
	s.stores = storecache.New(opts.CacheSize, opts.CacheTTL, func(ctx context.Context, shopperID string) (*Store, error) {
		return NewStore(ctx, shopperID, s.repo, s.events, s.log, s.opts)
	})
	return s
}

// Store returns the shopper's order history, loading it on first use or after
// eviction.
func (s *Service) Store(ctx context.Context, shopperID string) (*Store, error) {
	shopperID, err := normalize(shopperID)
	if err != nil {
		return nil, err
	}
	return s.stores.Get(ctx, shopperID)
}

func (s *Service) withStore(ctx context.Context, shopperID string, fn func(*Store) error) error {
	shopperID, err := normalize(shopperID)
	if err != nil {
		return err
	}
	return s.stores.Do(ctx, shopperID, fn)
}

func normalize(shopperID string) (string, error) {
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return "", fmt.Errorf("%w: shopper id is required", ErrInvalidInput)
	}
	return shopperID, nil
}

func (s *Service) PlaceOrder(ctx context.Context, shopperID string, in domain.NewOrder) (domain.Order, error) {
	var o domain.Order
	err := s.withStore(ctx, shopperID, func(st *Store) error {
		id, err := st.AddOrder(ctx, in)
		if err != nil {
			return err
		}
		o, _ = st.GetOrder(id)
		return nil
	})
	return o, err
}

func (s *Service) GetOrder(ctx context.Context, shopperID, orderID string) (domain.Order, error) {
	var o domain.Order
	err := s.withStore(ctx, shopperID, func(st *Store) error {
		var ok bool
		if o, ok = st.GetOrder(orderID); !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, orderID)
		}
		return nil
	})
	return o, err
}

func (s *Service) ListOrders(ctx context.Context, shopperID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.withStore(ctx, shopperID, func(st *Store) error {
		orders = st.Orders()
		return nil
	})
	return orders, err
}

func (s *Service) UpdateStatus(ctx context.Context, shopperID, orderID string, status domain.Status) (domain.Order, error) {
	var o domain.Order
	err := s.withStore(ctx, shopperID, func(st *Store) error {
		ok, err := st.UpdateOrderStatus(ctx, orderID, status)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, orderID)
		}
		o, _ = st.GetOrder(orderID)
		return nil
	})
	return o, err
}
