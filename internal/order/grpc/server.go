package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/order/app"
	"github.com/mastice-lab/storefront/internal/order/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.order.v1.OrderService"

type ListOrdersRequest struct {
	ShopperID string `json:"shopperId"`
}

type ListOrdersResponse struct {
	Orders      []domain.Order `json:"orders"`
	TotalOrders int            `json:"totalOrders"`
}

type GetOrderRequest struct {
	ShopperID string `json:"shopperId"`
	OrderID   string `json:"orderId"`
}

type UpdateStatusRequest struct {
	ShopperID string        `json:"shopperId"`
	OrderID   string        `json:"orderId"`
	Status    domain.Status `json:"status"`
}

type OrderResponse struct {
	Order domain.Order `json:"order"`
}

var ServiceDesc = rpc.Service(ServiceName, "order/v1/order.proto",
	rpc.Method(ServiceName, "ListOrders", (*Server).ListOrders),
	rpc.Method(ServiceName, "GetOrder", (*Server).GetOrder),
	rpc.Method(ServiceName, "UpdateStatus", (*Server).UpdateStatus),
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

func (s *Server) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	orders, err := s.svc.ListOrders(ctx, req.ShopperID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ListOrdersResponse{Orders: orders, TotalOrders: len(orders)}, nil
}

func (s *Server) GetOrder(ctx context.Context, req *GetOrderRequest) (*OrderResponse, error) {
	if req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order id is required")
	}
	o, err := s.svc.GetOrder(ctx, req.ShopperID, req.OrderID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &OrderResponse{Order: o}, nil
}

// UpdateStatus is the manual lifecycle hook used by operators.
func (s *Server) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*OrderResponse, error) {
	if req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order id is required")
	}
	o, err := s.svc.UpdateStatus(ctx, req.ShopperID, req.OrderID, req.Status)
	if err != nil {
		return nil, mapErr(err)
	}
	return &OrderResponse{Order: o}, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrInvalidStatus):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrIllegalTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Errorf(codes.Internal, "order: %v", err)
	}
}
