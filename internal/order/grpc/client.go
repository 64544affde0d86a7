package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mastice-lab/storefront/internal/order/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) ListOrders(ctx context.Context, shopperID string) ([]domain.Order, error) {
	var out ListOrdersResponse
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "ListOrders"), &ListOrdersRequest{ShopperID: shopperID}, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, shopperID, orderID string) (domain.Order, error) {
	var out OrderResponse
	req := &GetOrderRequest{ShopperID: shopperID, OrderID: orderID}
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "GetOrder"), req, &out); err != nil {
		return domain.Order{}, err
	}
	return out.Order, nil
}

func (c *Client) UpdateStatus(ctx context.Context, shopperID, orderID string, s domain.Status) (domain.Order, error) {
	var out OrderResponse
	req := &UpdateStatusRequest{ShopperID: shopperID, OrderID: orderID, Status: s}
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "UpdateStatus"), req, &out); err != nil {
		return domain.Order{}, err
	}
	return out.Order, nil
}
