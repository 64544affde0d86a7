package domain

// ShippingPolicy charges a flat Fee below FreeThreshold.
type ShippingPolicy struct {
	FreeThreshold int64
	Fee           int64
}

var DefaultShippingPolicy = ShippingPolicy{FreeThreshold: 50000, Fee: 5000}

func ShippingFee(total int64, p ShippingPolicy) int64 {
	if total >= p.FreeThreshold {
		return 0
	}
	return p.Fee
}

// RemainingForFreeShipping is how much more would waive the fee.
func RemainingForFreeShipping(total int64, p ShippingPolicy) int64 {
	return max(p.FreeThreshold-total, 0)
}

type Line struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	LineTotal int64  `json:"lineTotal"`
}

type Quote struct {
	Lines                    []Line `json:"lines"`
	Subtotal                 int64  `json:"subtotal"`
	ShippingFee              int64  `json:"shippingFee"`
	GrandTotal               int64  `json:"grandTotal"`
	RemainingForFreeShipping int64  `json:"remainingForFreeShipping"`
}

func NewQuote(lines []Line, p ShippingPolicy) Quote {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.LineTotal
	}
	fee := ShippingFee(subtotal, p)
	return Quote{
		Lines:                    lines,
		Subtotal:                 subtotal,
		ShippingFee:              fee,
		GrandTotal:               subtotal + fee,
		RemainingForFreeShipping: RemainingForFreeShipping(subtotal, p),
	}
}

type Receipt struct {
	OrderID     string `json:"orderId"`
	TotalPrice  int64  `json:"totalPrice"`
	ShippingFee int64  `json:"shippingFee"`
	GrandTotal  int64  `json:"grandTotal"`
	// Replayed is set when an idempotency key matched an earlier checkout.
	Replayed bool `json:"replayed,omitempty"`
}
