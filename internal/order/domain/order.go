package domain

import (
	"slices"
	"time"
)

type Status string

const (
	StatusReceived  Status = "주문접수"
	StatusPaid      Status = "결제완료"
	StatusPreparing Status = "배송준비"
	StatusShipping  Status = "배송중"
	StatusDelivered Status = "배송완료"
	StatusCancelled Status = "취소"
)

var statuses = []Status{
	StatusReceived, StatusPaid, StatusPreparing, StatusShipping, StatusDelivered, StatusCancelled,
}

func Statuses() []Status { return slices.Clone(statuses) }

func (s Status) Valid() bool { return slices.Contains(statuses, s) }

func (s Status) Terminal() bool { return s == StatusDelivered || s == StatusCancelled }

// CanTransition is the strict lifecycle: one step forward along the delivery
// path, or cancellation from any non-terminal state.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	i := slices.Index(statuses, from)
	return statuses[i+1] == to
}

type PaymentMethod string

const (
	PaymentCard  PaymentMethod = "card"
	PaymentBank  PaymentMethod = "bank"
	PaymentPhone PaymentMethod = "phone"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentBank || m == PaymentPhone
}

// Item is a cart line frozen into an order.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
}

type CustomerInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AddressDetail   string `json:"addressDetail"`
	PostalCode      string `json:"postalCode"`
	DeliveryRequest string `json:"deliveryRequest"`
}

// Order is immutable after creation except for Status and TrackingNumber.
type Order struct {
	ID             string        `json:"id"`
	OrderDate      time.Time     `json:"orderDate"`
	Items          []Item        `json:"items"`
	TotalPrice     int64         `json:"totalPrice"`
	ShippingFee    int64         `json:"shippingFee"`
	CustomerInfo   CustomerInfo  `json:"customerInfo"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	Status         Status        `json:"status"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
}

func (o Order) GrandTotal() int64 {
	return o.TotalPrice + o.ShippingFee
}

func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	if o.Items == nil {
		o.Items = []Item{}
	}
	return o
}

// NewOrder is what checkout hands over; the store assigns the rest.
type NewOrder struct {
	Items         []Item
	TotalPrice    int64
	ShippingFee   int64
	CustomerInfo  CustomerInfo
	PaymentMethod PaymentMethod
}
