package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mastice-lab/storefront/internal/order/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

type Options struct {
	// StrictTransitions rejects moves CanTransition does not allow.
	StrictTransitions bool
	Now               func() time.Time
	NewID             func(now time.Time) string

	// CacheSize and CacheTTL bound the in-memory order histories held by
	// Service. Zero values use the storecache defaults.
	CacheSize int
	CacheTTL  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = NewOrderID
	}
	return o
}

// NewOrderID returns ORD-<unix ms>-<9 lowercase alphanumerics>.
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return "ORD-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}

func trackingNumber(now time.Time) string {
	return "TRACK-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Store is one shopper's order history. Mutations persist before they are
// applied in memory; events go out only after a successful save.
type Store struct {
	mu        sync.Mutex
	shopperID string
	repo      OrderRepo
	events    EventPublisher
	log       *slog.Logger
	opts      Options
	orders    []domain.Order
}

func NewStore(ctx context.Context, shopperID string, repo OrderRepo, events EventPublisher, log *slog.Logger, opts Options) (*Store, error) {
	orders, err := repo.Load(ctx, shopperID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return &Store{
		shopperID: shopperID,
		repo:      repo,
		events:    events,
		log:       log,
		opts:      opts.withDefaults(),
		orders:    cloneAll(orders),
	}, nil
}

func (s *Store) AddOrder(ctx context.Context, in domain.NewOrder) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}

	s.mu.Lock()
	now := s.opts.Now().UTC()
	id := s.opts.NewID(now)
	for i := 0; i < 3 && s.index(id) >= 0; i++ {
		id = s.opts.NewID(now)
	}
	o := domain.Order{
		ID:            id,
		OrderDate:     now,
		Items:         slices.Clone(in.Items),
		TotalPrice:    in.TotalPrice,
		ShippingFee:   in.ShippingFee,
		CustomerInfo:  in.CustomerInfo,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.StatusReceived,
	}

	next := make([]domain.Order, 0, len(s.orders)+1)
	next = append(next, o)
	next = append(next, s.orders...)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	s.log.Info("order placed", "shopper_id", s.shopperID, "order_id", o.ID, "total", o.GrandTotal())
	if err := s.events.OrderPlaced(ctx, s.shopperID, o.Clone()); err != nil {
		s.log.Warn("order placed event not published", "order_id", o.ID, "err", err)
	}
	return o.ID, nil
}

func (s *Store) GetOrder(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return domain.Order{}, false
	}
	return s.orders[i].Clone(), true
}

// UpdateOrderStatus reports false for an unknown id. Moving to 배송중 assigns
// a tracking number once; later moves keep it.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	cur := s.orders[i]
	from := cur.Status
	if from == status {
		s.mu.Unlock()
		return true, nil
	}
	if s.opts.StrictTransitions && !domain.CanTransition(from, status) {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, status)
	}

	cur.Status = status
	if status == domain.StatusShipping && cur.TrackingNumber == "" {
		cur.TrackingNumber = trackingNumber(s.opts.Now())
	}
	next := cloneAll(s.orders)
	next[i] = cur
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	s.log.Info("order status changed", "shopper_id", s.shopperID, "order_id", id, "from", from, "to", status)
	if err := s.events.OrderStatusChanged(ctx, s.shopperID, cur.Clone(), from); err != nil {
		s.log.Warn("status change event not published", "order_id", id, "err", err)
	}
	return true, nil
}

func (s *Store) TotalOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Orders returns the history most recent first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.orders)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
}

func (s *Store) commit(ctx context.Context, next []domain.Order) error {
	if err := s.repo.Save(ctx, s.shopperID, next); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	s.orders = next
	return nil
}

func validate(in domain.NewOrder) error {
	switch {
	case len(in.Items) == 0:
		return fmt.Errorf("%w: order has no items", ErrInvalidInput)
	case in.TotalPrice < 0 || in.ShippingFee < 0:
		return fmt.Errorf("%w: negative amount", ErrInvalidInput)
	case !in.PaymentMethod.Valid():
		return fmt.Errorf("%w: payment method %q", ErrInvalidInput, in.PaymentMethod)
	}
	return nil
}

func cloneAll(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
