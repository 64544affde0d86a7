package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/cart/app"
	"github.com/mastice-lab/storefront/internal/cart/infra/adapter"
	"github.com/mastice-lab/storefront/internal/cart/infra/kvstore"
	catalogapp "github.com/mastice-lab/storefront/internal/catalog/app"
	"github.com/mastice-lab/storefront/internal/catalog/infra/static"
	"github.com/mastice-lab/storefront/pkg/kv"
	"github.com/mastice-lab/storefront/pkg/logger"
	"github.com/mastice-lab/storefront/pkg/rpc/rpctest"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	products, err := static.NewProductRepo()
	require.NoError(t, err)

	svc := app.NewService(
		kvstore.NewCartRepo(kv.NewMemoryStore(), logger.Discard()),
		adapter.NewProductResolver(catalogapp.NewService(products)),
		logger.Discard(),
		app.Options{},
	)
	srv := NewServer(svc)
	return NewClient(rpctest.Serve(t, func(s *grpc.Server) { Register(s, srv) }))
}

func TestCartOverGRPC(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	cart, err := c.AddItem(ctx, AddItemRequest{ShopperID: "s1", ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "#4A4A4A", cart.Items[0].Color)

	cart, err = c.AddItem(ctx, AddItemRequest{ShopperID: "s1", ProductID: 2, Color: "#4A4A4A", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, int64(4000000), cart.TotalPrice)

	cart, err = c.ChangeColor(ctx, ChangeColorRequest{ShopperID: "s1", ProductID: 2, From: "#4A4A4A", To: "#2C2C2C"})
	require.NoError(t, err)
	assert.Equal(t, "#2C2C2C", cart.Items[0].Color)

	cart, err = c.SetItemQuantity(ctx, SetItemQuantityRequest{ShopperID: "s1", ProductID: 2, Color: "#2C2C2C", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalItems)

	cart, err = c.RemoveItem(ctx, RemoveItemRequest{ShopperID: "s1", ProductID: 2, Color: "#2C2C2C"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = c.AddItem(ctx, AddItemRequest{ShopperID: "s1", ProductID: 77, Quantity: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.GetCart(ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.AddItem(ctx, AddItemRequest{ShopperID: "s1", ProductID: 3, Quantity: 1})
	require.NoError(t, err)
	cart, err = c.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, cart.TotalItems)
}
