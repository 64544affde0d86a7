package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/checkout/app"
	"github.com/mastice-lab/storefront/internal/checkout/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.checkout.v1.CheckoutService"

type QuoteRequest struct {
	ShopperID string `json:"shopperId"`
}

type PlaceOrderRequest struct {
	ShopperID      string      `json:"shopperId"`
	Form           domain.Form `json:"form"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

var ServiceDesc = rpc.Service(ServiceName, "checkout/v1/checkout.proto",
	rpc.Method(ServiceName, "Quote", (*Server).Quote),
	rpc.Method(ServiceName, "PlaceOrder", (*Server).PlaceOrder),
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

func (s *Server) Quote(ctx context.Context, req *QuoteRequest) (*domain.Quote, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}

	q, err := s.svc.Quote(ctx, req.ShopperID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &q, nil
}

func (s *Server) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*domain.Receipt, error) {
	if req.ShopperID == "" {
		return nil, status.Error(codes.InvalidArgument, "shopper_id is required")
	}

	r, err := s.svc.PlaceOrder(ctx, req.ShopperID, req.Form, req.IdempotencyKey)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrEmptyCart), errors.Is(err, app.ErrProductUnavailable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, app.ErrInProgress):
		return status.Error(codes.Aborted, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "checkout failed: %v", err)
}
