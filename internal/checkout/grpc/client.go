package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mastice-lab/storefront/internal/checkout/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Quote(ctx context.Context, shopperID string) (domain.Quote, error) {
	var out domain.Quote
	err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "Quote"), &QuoteRequest{ShopperID: shopperID}, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Receipt, error) {
	var out domain.Receipt
	err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "PlaceOrder"), &req, &out)
	return out, err
}
