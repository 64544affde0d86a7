package adapter

import (
	"context"

	checkoutapp "github.com/mastice-lab/storefront/internal/checkout/app"
	orderapp "github.com/mastice-lab/storefront/internal/order/app"
	orderdomain "github.com/mastice-lab/storefront/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

func (w *OrderServiceWriter) AddOrder(ctx context.Context, shopperID string, d checkoutapp.OrderDraft) (string, error) {
	items := make([]orderdomain.Item, 0, len(d.Lines))
	for _, l := range d.Lines {
		items = append(items, orderdomain.Item{
			ID:       l.ProductID,
			Name:     l.Name,
			Category: l.Category,
			Image:    l.Image,
			Price:    l.UnitPrice,
			Color:    l.Color,
			Quantity: l.Quantity,
		})
	}

	o, err := w.svc.PlaceOrder(ctx, shopperID, orderdomain.NewOrder{
		Items:       items,
		TotalPrice:  d.TotalPrice,
		ShippingFee: d.ShippingFee,
		CustomerInfo: orderdomain.CustomerInfo{
			Name:            d.Customer.Name,
			Email:           d.Customer.Email,
			Phone:           d.Customer.Phone,
			Address:         d.Customer.Address,
			AddressDetail:   d.Customer.AddressDetail,
			PostalCode:      d.Customer.PostalCode,
			DeliveryRequest: d.Customer.DeliveryRequest,
		},
		PaymentMethod: orderdomain.PaymentMethod(d.Customer.PaymentMethod),
	})
	if err != nil {
		return "", err
	}
	return o.ID, nil
}
