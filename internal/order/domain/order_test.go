package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusReceived, StatusPaid, true},
		{StatusPaid, StatusPreparing, true},
		{StatusPreparing, StatusShipping, true},
		{StatusShipping, StatusDelivered, true},
		{StatusReceived, StatusCancelled, true},
		{StatusShipping, StatusCancelled, true},
		{StatusReceived, StatusShipping, false},
		{StatusPaid, StatusReceived, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusReceived, false},
		{StatusReceived, Status("환불"), false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestStatusAndPaymentValues(t *testing.T) {
	assert.Len(t, Statuses(), 6)
	assert.True(t, Status("배송중").Valid())
	assert.False(t, Status("shipping").Valid())

	assert.True(t, PaymentMethod("bank").Valid())
	assert.False(t, PaymentMethod("cash").Valid())
}

func TestOrderClone(t *testing.T) {
	o := Order{Items: []Item{{ID: 1, Quantity: 2}}, TotalPrice: 100, ShippingFee: 5000}
	c := o.Clone()
	c.Items[0].Quantity = 9

	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, int64(5100), o.GrandTotal())
	assert.NotNil(t, Order{}.Clone().Items)
}
