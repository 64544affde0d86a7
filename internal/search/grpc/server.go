package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/search/app"
	"github.com/mastice-lab/storefront/internal/search/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.search.v1.SearchService"

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type SearchResponse struct {
	Results []domain.Document `json:"results"`
}

var ServiceDesc = rpc.Service(ServiceName, "search/v1/search.proto",
	rpc.Method(ServiceName, "Search", (*Server).Search),
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

func (s *Server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	docs, err := s.svc.Search(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "search failed: %v", err)
	}
	return &SearchResponse{Results: docs}, nil
}

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	var out SearchResponse
	if err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "Search"), &SearchRequest{Query: query, Limit: limit}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
