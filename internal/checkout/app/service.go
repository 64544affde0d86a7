package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mastice-lab/storefront/internal/checkout/domain"
)

var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrInProgress         = errors.New("checkout already in progress")
)

type Config struct {
	Shipping domain.ShippingPolicy
	// Delay is the simulated payment processing time between placing the
	// order and clearing the cart. It is not interrupted by cancellation.
	Delay         time.Duration
	MaxConcurrent int
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader
	Orders  OrderWriter
	Dedup   Deduper

	log   *slog.Logger
	cfg   Config
	sleep func(time.Duration)
}

// NewService wires checkout. dedup may be nil, in which case idempotency
// keys are ignored.
func NewService(cart CartReader, catalog CatalogReader, orders OrderWriter, dedup Deduper, log *slog.Logger, cfg Config) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.Shipping == (domain.ShippingPolicy{}) {
		cfg.Shipping = domain.DefaultShippingPolicy
	}

	return &Service{
		Cart:    cart,
		Catalog: catalog,
		Orders:  orders,
		Dedup:   dedup,
		log:     log,
		cfg:     cfg,
		sleep:   time.Sleep,
	}
}

func (s *Service) Quote(ctx context.Context, shopperID string) (domain.Quote, error) {
	if strings.TrimSpace(shopperID) == "" {
		return domain.Quote{}, fmt.Errorf("%w: shopper id is required", ErrInvalidInput)
	}

	items, err := s.Cart.GetCart(ctx, shopperID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.Line, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			if _, err := s.Catalog.GetProduct(gctx, it.ProductID); err != nil {
				return fmt.Errorf("product %d: %w", it.ProductID, err)
			}

			lines[idx] = domain.Line{
				ProductID: it.ProductID,
				Name:      it.Name,
				Category:  it.Category,
				Image:     it.Image,
				Color:     it.Color,
				Quantity:  it.Quantity,
				UnitPrice: it.Price,
				LineTotal: it.Price * int64(it.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	return domain.NewQuote(lines, s.cfg.Shipping), nil
}

// PlaceOrder turns the shopper's cart into an order. The cart is cleared only
// after the order is stored, so a failed order leaves it intact.
func (s *Service) PlaceOrder(ctx context.Context, shopperID string, form domain.Form, idempotencyKey string) (domain.Receipt, error) {
	form, err := form.Validate()
	if err != nil {
		return domain.Receipt{}, err
	}

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" || s.Dedup == nil {
		return s.placeOrder(ctx, shopperID, form)
	}

	key := s.Dedup.Key("checkout", shopperID+":"+idempotencyKey)
	prev, owned, err := s.Dedup.Claim(ctx, key)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !owned {
		if prev == "" {
			return domain.Receipt{}, ErrInProgress
		}
		var r domain.Receipt
		if err := json.Unmarshal([]byte(prev), &r); err != nil {
			return domain.Receipt{}, fmt.Errorf("decode stored receipt: %w", err)
		}
		r.Replayed = true
		s.log.Info("checkout replayed", "shopper_id", shopperID, "order_id", r.OrderID)
		return r, nil
	}

	receipt, err := s.placeOrder(ctx, shopperID, form)
	if err != nil {
		if rerr := s.Dedup.Release(context.WithoutCancel(ctx), key); rerr != nil {
			s.log.Warn("idempotency key not released", "key", key, "err", rerr)
		}
		return domain.Receipt{}, err
	}

	raw, _ := json.Marshal(receipt)
	if err := s.Dedup.Complete(context.WithoutCancel(ctx), key, string(raw)); err != nil {
		s.log.Warn("idempotency result not recorded", "key", key, "err", err)
	}
	return receipt, nil
}

func (s *Service) placeOrder(ctx context.Context, shopperID string, form domain.Form) (domain.Receipt, error) {
	quote, err := s.Quote(ctx, shopperID)
	if err != nil {
		return domain.Receipt{}, err
	}

	orderID, err := s.Orders.AddOrder(ctx, shopperID, OrderDraft{
		Lines:       quote.Lines,
		TotalPrice:  quote.Subtotal,
		ShippingFee: quote.ShippingFee,
		Customer:    form,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("add order: %w", err)
	}

	s.sleep(s.cfg.Delay)

	if err := s.Cart.RemovePurchased(context.WithoutCancel(ctx), shopperID, purchased(quote.Lines)); err != nil {
		// the order exists; the shopper can still empty the cart by hand
		s.log.Error("cart not cleared after checkout", "shopper_id", shopperID, "order_id", orderID, "err", err)
	}

	s.log.Info("checkout completed", "shopper_id", shopperID, "order_id", orderID, "grand_total", quote.GrandTotal)
	return domain.Receipt{
		OrderID:     orderID,
		TotalPrice:  quote.Subtotal,
		ShippingFee: quote.ShippingFee,
		GrandTotal:  quote.GrandTotal,
	}, nil
}

func purchased(lines []domain.Line) []CartItem {
	out := make([]CartItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, CartItem{ProductID: l.ProductID, Color: l.Color, Quantity: l.Quantity})
	}
	return out
}
