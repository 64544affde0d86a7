package adapter

import (
	"context"

	cartapp "github.com/mastice-lab/storefront/internal/cart/app"
	cartdomain "github.com/mastice-lab/storefront/internal/cart/domain"
	checkoutapp "github.com/mastice-lab/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, shopperID string) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ID,
			Name:      it.Name,
			Category:  it.Category,
			Image:     it.Image,
			Price:     it.Price,
			Color:     it.Color,
			Quantity:  it.Quantity,
		})
	}
	return items, nil
}

func (r *CartServiceReader) RemovePurchased(ctx context.Context, shopperID string, purchased []checkoutapp.CartItem) error {
	lines := make([]cartdomain.CartItem, 0, len(purchased))
	for _, it := range purchased {
		lines = append(lines, cartdomain.CartItem{ID: it.ProductID, Color: it.Color, Quantity: it.Quantity})
	}
	_, err := r.svc.RemovePurchased(ctx, shopperID, lines)
	return err
}
