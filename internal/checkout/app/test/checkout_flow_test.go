package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/mastice-lab/storefront/internal/cart/app"
	cartadapter "github.com/mastice-lab/storefront/internal/cart/infra/adapter"
	cartkv "github.com/mastice-lab/storefront/internal/cart/infra/kvstore"
	catalogapp "github.com/mastice-lab/storefront/internal/catalog/app"
	"github.com/mastice-lab/storefront/internal/catalog/infra/static"
	"github.com/mastice-lab/storefront/internal/checkout/app"
	"github.com/mastice-lab/storefront/internal/checkout/domain"
	"github.com/mastice-lab/storefront/internal/checkout/infra/adapter"
	orderapp "github.com/mastice-lab/storefront/internal/order/app"
	orderkv "github.com/mastice-lab/storefront/internal/order/infra/kvstore"
	"github.com/mastice-lab/storefront/internal/order/infra/publisher"
	"github.com/mastice-lab/storefront/pkg/events"
	"github.com/mastice-lab/storefront/pkg/idempotency"
	"github.com/mastice-lab/storefront/pkg/kv"
	"github.com/mastice-lab/storefront/pkg/logger"
)

const sampleCatalog = `
- id: 1
  name: "Coffee plaster sample"
  category: "샘플"
  price: 10000
  colors:
    - { name: "에스프레소", code: "#3B2F2F" }
`

func TestCheckoutFlow(t *testing.T) {
	ctx := context.Background()
	log := logger.Discard()
	store := kv.NewMemoryStore()

	products, err := static.ParseProducts([]byte(sampleCatalog))
	require.NoError(t, err)
	catalog := catalogapp.NewService(products)

	carts := cartapp.NewService(cartkv.NewCartRepo(store, log), cartadapter.NewProductResolver(catalog), log, cartapp.Options{})
	orders := orderapp.NewService(orderkv.NewOrderRepo(store, log), publisher.NewOrderEvents(events.NewLogPublisher(log)), log, orderapp.Options{})
	checkout := app.NewService(
		adapter.NewCartServiceReader(carts),
		adapter.NewCatalogServiceReader(catalog),
		adapter.NewOrderServiceWriter(orders),
		idempotency.NewMemoryStore(time.Minute),
		log,
		app.Config{Delay: time.Millisecond},
	)

	_, err = carts.AddProduct(ctx, "s1", 1, "#3B2F2F", 1)
	require.NoError(t, err)
	cart, err := carts.AddProduct(ctx, "s1", 1, "#3B2F2F", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(20000), cart.TotalPrice)

	cart, err = carts.UpdateQuantity(ctx, "s1", 1, "#3B2F2F", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), cart.TotalPrice)

	receipt, err := checkout.PlaceOrder(ctx, "s1", domain.Form{
		Name:          "홍길동",
		Email:         "hong@example.com",
		Phone:         "010-1234-5678",
		Address:       "서울특별시 성동구",
		PostalCode:    "04524",
		PaymentMethod: "bank",
	}, "")
	require.NoError(t, err)

	o, err := orders.GetOrder(ctx, "s1", receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), o.TotalPrice)
	assert.Equal(t, int64(5000), o.ShippingFee)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, "#3B2F2F", o.Items[0].Color)
	assert.Equal(t, "홍길동", o.CustomerInfo.Name)

	after, err := carts.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	// a fresh process sees the same state
	reloaded := orderapp.NewService(orderkv.NewOrderRepo(store, log), publisher.NewOrderEvents(events.NewLogPublisher(log)), log, orderapp.Options{})
	list, err := reloaded.ListOrders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, receipt.OrderID, list[0].ID)
}
