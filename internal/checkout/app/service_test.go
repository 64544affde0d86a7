package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastice-lab/storefront/internal/checkout/domain"
	"github.com/mastice-lab/storefront/pkg/idempotency"
	"github.com/mastice-lab/storefront/pkg/logger"
)

type fakeCart struct {
	mu        sync.Mutex
	items     []CartItem
	removeErr error
	removed   int
}

func (c *fakeCart) GetCart(context.Context, string) ([]CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...), nil
}

func (c *fakeCart) add(it CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, it)
}

func (c *fakeCart) RemovePurchased(_ context.Context, _ string, purchased []CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removeErr != nil {
		return c.removeErr
	}
	c.removed++
	for _, p := range purchased {
		for i, it := range c.items {
			if it.ProductID == p.ProductID && it.Color == p.Color {
				c.items[i].Quantity -= p.Quantity
			}
		}
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	c.items = kept
	return nil
}

type fakeCatalog struct {
	missing map[int]bool
}

func (c fakeCatalog) GetProduct(_ context.Context, id int) (Product, error) {
	if c.missing[id] {
		return Product{}, ErrProductUnavailable
	}
	return Product{ID: id}, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	drafts []OrderDraft
	err    error
}

func (o *fakeOrders) AddOrder(_ context.Context, _ string, d OrderDraft) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return "", o.err
	}
	o.drafts = append(o.drafts, d)
	return "ORD-" + string(rune('0'+len(o.drafts))), nil
}

func form() domain.Form {
	return domain.Form{
		Name:       "홍길동",
		Email:      "hong@example.com",
		Phone:      "010-1234-5678",
		Address:    "서울특별시 성동구",
		PostalCode: "04524",
	}
}

type fixture struct {
	svc    *Service
	cart   *fakeCart
	orders *fakeOrders
	slept  []time.Duration
}

func newFixture(items ...CartItem) *fixture {
	f := &fixture{cart: &fakeCart{items: items}, orders: &fakeOrders{}}
	f.svc = NewService(f.cart, fakeCatalog{}, f.orders, idempotency.NewMemoryStore(time.Minute), logger.Discard(), Config{
		Delay: 1500 * time.Millisecond,
	})
	f.svc.sleep = func(d time.Duration) { f.slept = append(f.slept, d) }
	return f
}

func TestQuoteShippingBoundary(t *testing.T) {
	cases := []struct {
		price   int64
		wantFee int64
	}{
		{49999, 5000},
		{50000, 0},
	}
	for _, tc := range cases {
		f := newFixture(CartItem{ProductID: 1, Name: "a", Price: tc.price, Quantity: 1})
		q, err := f.svc.Quote(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, tc.wantFee, q.ShippingFee, "subtotal %d", tc.price)
		assert.Equal(t, tc.price+tc.wantFee, q.GrandTotal)
	}
}

func TestQuoteErrors(t *testing.T) {
	_, err := newFixture().svc.Quote(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = newFixture().svc.Quote(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	f := newFixture(CartItem{ProductID: 1, Price: 100, Quantity: 1}, CartItem{ProductID: 2, Price: 100, Quantity: 1})
	f.svc.Catalog = fakeCatalog{missing: map[int]bool{2: true}}
	_, err = f.svc.Quote(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(CartItem{ProductID: 1, Name: "Table / stool [set]", Price: 10000, Color: "#F5F5DC", Quantity: 1})

	r, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.Receipt{OrderID: "ORD-1", TotalPrice: 10000, ShippingFee: 5000, GrandTotal: 15000}, r)

	require.Len(t, f.orders.drafts, 1)
	d := f.orders.drafts[0]
	assert.Equal(t, int64(10000), d.TotalPrice)
	assert.Equal(t, "card", d.Customer.PaymentMethod)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, 1, d.Lines[0].Quantity)

	assert.Equal(t, 1, f.cart.removed)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, f.slept)
}

func TestPlaceOrderInvalidFormTouchesNothing(t *testing.T) {
	f := newFixture(CartItem{ProductID: 1, Price: 10000, Quantity: 1})
	bad := form()
	bad.Email = ""

	_, err := f.svc.PlaceOrder(context.Background(), "s1", bad, "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.orders.drafts)
	assert.Zero(t, f.cart.removed)
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	f := newFixture(CartItem{ProductID: 1, Price: 10000, Quantity: 1})
	f.orders.err = errors.New("disk full")

	_, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "key-1")
	require.Error(t, err)
	assert.Zero(t, f.cart.removed)
	assert.Empty(t, f.slept)

	f.orders.err = nil
	r, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "key-1")
	require.NoError(t, err, "a failed attempt releases its key")
	assert.False(t, r.Replayed)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture()
	_, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderIdempotency(t *testing.T) {
	f := newFixture(CartItem{ProductID: 2, Price: 2000000, Quantity: 1})
	ctx := context.Background()

	first, err := f.svc.PlaceOrder(ctx, "s1", form(), "key-1")
	require.NoError(t, err)

	again, err := f.svc.PlaceOrder(ctx, "s1", form(), "key-1")
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.OrderID, again.OrderID)
	assert.Equal(t, first.GrandTotal, again.GrandTotal)
	assert.Len(t, f.orders.drafts, 1, "replay does not place a second order")

	key := f.svc.Dedup.Key("checkout", "s1:key-2")
	_, owned, err := f.svc.Dedup.Claim(ctx, key)
	require.NoError(t, err)
	require.True(t, owned)

	_, err = f.svc.PlaceOrder(ctx, "s1", form(), "key-2")
	assert.ErrorIs(t, err, ErrInProgress)
}

func TestPlaceOrderClearFailureStillReturnsReceipt(t *testing.T) {
	f := newFixture(CartItem{ProductID: 1, Price: 60000, Quantity: 1})
	f.cart.removeErr = errors.New("storage unavailable")

	r, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(60000), r.GrandTotal)
}

func TestPlaceOrderKeepsLinesAddedDuringDelay(t *testing.T) {
	f := newFixture(CartItem{ProductID: 1, Name: "Table / stool [set]", Price: 10000, Quantity: 1})
	late := CartItem{ProductID: 2, Name: "Mastice Portfolio#141", Price: 2000000, Color: "#4A4A4A", Quantity: 1}
	f.svc.sleep = func(time.Duration) { f.cart.add(late) }

	_, err := f.svc.PlaceOrder(context.Background(), "s1", form(), "")
	require.NoError(t, err)

	require.Len(t, f.orders.drafts, 1)
	require.Len(t, f.orders.drafts[0].Lines, 1)
	assert.Equal(t, 1, f.orders.drafts[0].Lines[0].ProductID)

	left, err := f.cart.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []CartItem{late}, left, "the line added mid-checkout stays in the cart")
}
