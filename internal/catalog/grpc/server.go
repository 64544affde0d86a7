package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/catalog/app"
	"github.com/mastice-lab/storefront/internal/catalog/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.catalog.v1.CatalogService"

type GetProductRequest struct {
	ID int `json:"id"`
}

type GetProductResponse struct {
	Product domain.Product `json:"product"`
}

type ListProductsRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Cursor   int    `json:"cursor,omitempty"`
}

type ListProductsResponse struct {
	Products   []domain.Product `json:"products"`
	NextCursor int              `json:"nextCursor,omitempty"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

var ServiceDesc = rpc.Service(ServiceName, "catalog/v1/catalog.proto",
	rpc.Method(ServiceName, "GetProduct", (*Server).GetProduct),
	rpc.Method(ServiceName, "ListProducts", (*Server).ListProducts),
	rpc.Method(ServiceName, "ListCategories", (*Server).ListCategories),
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func Register(s grpc.ServiceRegistrar, srv *Server) {
	s.RegisterService(&ServiceDesc, srv)
}

func (s *Server) GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &GetProductResponse{Product: p}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	products, next, err := s.svc.ListProducts(ctx, domain.Filter{
		Query:    req.Query,
		Category: req.Category,
		Limit:    req.Limit,
		Cursor:   req.Cursor,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &ListProductsResponse{Products: products, NextCursor: next}, nil
}

func (s *Server) ListCategories(ctx context.Context, _ *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	cats, err := s.svc.Categories(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ListCategoriesResponse{Categories: cats}, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
