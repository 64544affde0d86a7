package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/cart/app"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.cart.v1.CartService"

type ShopperRequest struct {
	ShopperID string `json:"shopperId"`
}

type AddItemRequest struct {
	ShopperID string `json:"shopperId"`
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

type SetItemQuantityRequest struct {
	ShopperID string `json:"shopperId"`
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

type RemoveItemRequest struct {
	ShopperID string `json:"shopperId"`
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
}

type ChangeColorRequest struct {
	ShopperID string `json:"shopperId"`
	ProductID int    `json:"productId"`
	From      string `json:"from,omitempty"`
	To        string `json:"to"`
}

var ServiceDesc = rpc.Service(ServiceName, "cart/v1/cart.proto",
	rpc.Method(ServiceName, "GetCart", (*Server).GetCart),
	rpc.Method(ServiceName, "AddItem", (*Server).AddItem),
	rpc.Method(ServiceName, "SetItemQuantity", (*Server).SetItemQuantity),
	rpc.Method(ServiceName, "RemoveItem", (*Server).RemoveItem),
	rpc.Method(ServiceName, "ChangeColor", (*Server).ChangeColor),
	rpc.Method(ServiceName, "ClearCart", (*Server).ClearCart),
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

func (s *Server) GetCart(ctx context.Context, req *ShopperRequest) (*app.Cart, error) {
	return respond(s.svc.GetCart(ctx, req.ShopperID))
}

func (s *Server) AddItem(ctx context.Context, req *AddItemRequest) (*app.Cart, error) {
	return respond(s.svc.AddProduct(ctx, req.ShopperID, req.ProductID, req.Color, req.Quantity))
}

func (s *Server) SetItemQuantity(ctx context.Context, req *SetItemQuantityRequest) (*app.Cart, error) {
	return respond(s.svc.UpdateQuantity(ctx, req.ShopperID, req.ProductID, req.Color, req.Quantity))
}

func (s *Server) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*app.Cart, error) {
	return respond(s.svc.RemoveItem(ctx, req.ShopperID, req.ProductID, req.Color))
}

func (s *Server) ChangeColor(ctx context.Context, req *ChangeColorRequest) (*app.Cart, error) {
	return respond(s.svc.ChangeColor(ctx, req.ShopperID, req.ProductID, req.From, req.To))
}

func (s *Server) ClearCart(ctx context.Context, req *ShopperRequest) (*app.Cart, error) {
	return respond(s.svc.ClearCart(ctx, req.ShopperID))
}

func respond(cart app.Cart, err error) (*app.Cart, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	return &cart, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Errorf(codes.Internal, "cart: %v", err)
}
