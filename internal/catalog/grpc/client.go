package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mastice-lab/storefront/internal/catalog/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

// Client calls CatalogService over an existing connection.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	var out GetProductResponse
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "GetProduct"), &GetProductRequest{ID: id}, &out); err != nil {
		return domain.Product{}, err
	}
	return out.Product, nil
}

func (c *Client) ListProducts(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error) {
	var out ListProductsResponse
	err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "ListProducts"), &req, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out ListCategoriesResponse
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "ListCategories"), &ListCategoriesRequest{}, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
