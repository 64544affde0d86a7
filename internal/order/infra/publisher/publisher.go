package publisher

import (
	"context"
	"time"

	"github.com/mastice-lab/storefront/internal/order/domain"
	"github.com/mastice-lab/storefront/pkg/events"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type OrderPlacedPayload struct {
	ShopperID     string               `json:"shopperId"`
	OrderID       string               `json:"orderId"`
	OrderDate     time.Time            `json:"orderDate"`
	Items         []domain.Item        `json:"items"`
	TotalPrice    int64                `json:"totalPrice"`
	ShippingFee   int64                `json:"shippingFee"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

type StatusChangedPayload struct {
	ShopperID      string        `json:"shopperId"`
	OrderID        string        `json:"orderId"`
	From           domain.Status `json:"from"`
	To             domain.Status `json:"to"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
}

// OrderEvents turns order store callbacks into outbound events. Customer
// contact details stay out of the payload.
type OrderEvents struct {
	pub events.Publisher
	now func() time.Time
}

func NewOrderEvents(pub events.Publisher) *OrderEvents {
	return &OrderEvents{pub: pub, now: time.Now}
}

func (p *OrderEvents) OrderPlaced(ctx context.Context, shopperID string, o domain.Order) error {
	return p.pub.Publish(ctx, events.Event{
		Type:        EventOrderPlaced,
		AggregateID: o.ID,
		OccurredAt:  o.OrderDate,
		Payload: OrderPlacedPayload{
			ShopperID:     shopperID,
			OrderID:       o.ID,
			OrderDate:     o.OrderDate,
			Items:         o.Items,
			TotalPrice:    o.TotalPrice,
			ShippingFee:   o.ShippingFee,
			PaymentMethod: o.PaymentMethod,
		},
	})
}

func (p *OrderEvents) OrderStatusChanged(ctx context.Context, shopperID string, o domain.Order, from domain.Status) error {
	return p.pub.Publish(ctx, events.Event{
		Type:        EventOrderStatusChanged,
		AggregateID: o.ID,
		OccurredAt:  p.now().UTC(),
		Payload: StatusChangedPayload{
			ShopperID:      shopperID,
			OrderID:        o.ID,
			From:           from,
			To:             o.Status,
			TrackingNumber: o.TrackingNumber,
		},
	})
}
