package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/mastice-lab/storefront/internal/cart/domain"
	"github.com/mastice-lab/storefront/pkg/storecache"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Cart is a read view of a shopper's cart.
type Cart struct {
	ShopperID  string            `json:"shopperId"`
	Items      []domain.CartItem `json:"items"`
	TotalPrice int64             `json:"totalPrice"`
	TotalItems int               `json:"totalItems"`
}

// Options bounds the in-memory cart cache. Zero values use the
// storecache defaults.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

type Service struct {
	repo     CartRepo
	products ProductResolver
	log      *slog.Logger
	stores   *storecache.Cache[*Store]
}

func NewService(repo CartRepo, products ProductResolver, log *slog.Logger, opts Options) *Service {
	s := &Service{
		repo:     repo,
		products: products,
		log:      log,
	}
	s.stores = storecache.New(opts.CacheSize, opts.CacheTTL, s.load)
	return s
}

func (s *Service) load(ctx context.Context, shopperID string) (*Store, error) {
	return NewStore(ctx, shopperID, s.repo)
}

// Store returns the shopper's cart, loading it on first use or after it was
// evicted. Service methods go through withStore instead so that an eviction
// cannot race a mutation.
func (s *Service) Store(ctx context.Context, shopperID string) (*Store, error) {
	shopperID, err := normalize(shopperID)
	if err != nil {
		return nil, err
	}
	return s.stores.Get(ctx, shopperID)
}

// withStore runs fn with the shopper's cart held exclusively and returns the
// resulting view.
func (s *Service) withStore(ctx context.Context, shopperID string, fn func(*Store) error) (Cart, error) {
	shopperID, err := normalize(shopperID)
	if err != nil {
		return Cart{}, err
	}

	var out Cart
	err = s.stores.Do(ctx, shopperID, func(st *Store) error {
		if err := fn(st); err != nil {
			return err
		}
		out = view(shopperID, st)
		return nil
	})
	return out, err
}

func normalize(shopperID string) (string, error) {
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return "", fmt.Errorf("%w: shopper id is required", ErrInvalidInput)
	}
	return shopperID, nil
}

func (s *Service) GetCart(ctx context.Context, shopperID string) (Cart, error) {
	return s.withStore(ctx, shopperID, func(*Store) error { return nil })
}

// AddProduct adds qty of a catalog product in the given color. A blank color
// picks the product's first color, as the storefront preselects it.
func (s *Service) AddProduct(ctx context.Context, shopperID string, productID int, color string, qty int) (Cart, error) {
	if productID <= 0 {
		return Cart{}, fmt.Errorf("%w: product id must be positive", ErrInvalidInput)
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return Cart{}, err
	}

	color = strings.TrimSpace(color)
	switch {
	case color == "" && len(p.Colors) > 0:
		color = p.Colors[0]
	case color != "" && !slices.Contains(p.Colors, color):
		return Cart{}, fmt.Errorf("%w: product %d is not offered in %s", ErrInvalidInput, productID, color)
	}

	cart, err := s.withStore(ctx, shopperID, func(st *Store) error {
		return st.AddToCart(ctx, domain.CartItem{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Image:    p.Image,
			Price:    p.Price,
			Color:    color,
			Quantity: qty,
		})
	})
	if err != nil {
		return Cart{}, err
	}

	s.log.Info("cart item added", "shopper_id", cart.ShopperID, "product_id", productID, "color", color, "quantity", max(qty, 1))
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, shopperID string, productID int, color string, n int) (Cart, error) {
	return s.withStore(ctx, shopperID, func(st *Store) error {
		return st.UpdateQuantity(ctx, productID, color, n)
	})
}

func (s *Service) RemoveItem(ctx context.Context, shopperID string, productID int, color string) (Cart, error) {
	return s.withStore(ctx, shopperID, func(st *Store) error {
		return st.RemoveFromCart(ctx, productID, color)
	})
}

// ChangeColor rejects colors the product does not offer when the product is
// still in the catalog.
func (s *Service) ChangeColor(ctx context.Context, shopperID string, productID int, from, to string) (Cart, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Cart{}, fmt.Errorf("%w: color is required", ErrInvalidInput)
	}

	p, err := s.products.Product(ctx, productID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return Cart{}, err
	case !slices.Contains(p.Colors, to):
		return Cart{}, fmt.Errorf("%w: product %d is not offered in %s", ErrInvalidInput, productID, to)
	}

	return s.withStore(ctx, shopperID, func(st *Store) error {
		return st.UpdateItemColor(ctx, productID, from, to)
	})
}

func (s *Service) ClearCart(ctx context.Context, shopperID string) (Cart, error) {
	cart, err := s.withStore(ctx, shopperID, func(st *Store) error {
		return st.ClearCart(ctx)
	})
	if err != nil {
		return Cart{}, err
	}
	s.log.Info("cart cleared", "shopper_id", cart.ShopperID)
	return cart, nil
}

// RemovePurchased takes the given lines' quantities out of the cart. Lines
// added or topped up after the purchase snapshot keep the difference.
func (s *Service) RemovePurchased(ctx context.Context, shopperID string, purchased []domain.CartItem) (Cart, error) {
	cart, err := s.withStore(ctx, shopperID, func(st *Store) error {
		return st.RemoveLines(ctx, purchased)
	})
	if err != nil {
		return Cart{}, err
	}
	s.log.Info("purchased lines removed", "shopper_id", cart.ShopperID, "remaining_items", cart.TotalItems)
	return cart, nil
}

func view(shopperID string, st *Store) Cart {
	items := st.Items()
	return Cart{
		ShopperID:  shopperID,
		Items:      items,
		TotalPrice: domain.TotalPrice(items),
		TotalItems: domain.TotalItems(items),
	}
}
