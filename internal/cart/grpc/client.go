package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mastice-lab/storefront/internal/cart/app"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) call(ctx context.Context, method string, req any) (app.Cart, error) {
	var out app.Cart
	err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, method), req, &out)
	return out, err
}

func (c *Client) GetCart(ctx context.Context, shopperID string) (app.Cart, error) {
	return c.call(ctx, "GetCart", &ShopperRequest{ShopperID: shopperID})
}

func (c *Client) AddItem(ctx context.Context, req AddItemRequest) (app.Cart, error) {
	return c.call(ctx, "AddItem", &req)
}

func (c *Client) SetItemQuantity(ctx context.Context, req SetItemQuantityRequest) (app.Cart, error) {
	return c.call(ctx, "SetItemQuantity", &req)
}

func (c *Client) RemoveItem(ctx context.Context, req RemoveItemRequest) (app.Cart, error) {
	return c.call(ctx, "RemoveItem", &req)
}

func (c *Client) ChangeColor(ctx context.Context, req ChangeColorRequest) (app.Cart, error) {
	return c.call(ctx, "ChangeColor", &req)
}

func (c *Client) ClearCart(ctx context.Context, shopperID string) (app.Cart, error) {
	return c.call(ctx, "ClearCart", &ShopperRequest{ShopperID: shopperID})
}
