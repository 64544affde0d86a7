package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mastice-lab/storefront/internal/contact/app"
	"github.com/mastice-lab/storefront/internal/contact/domain"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

const ServiceName = "mastice.contact.v1.ContactService"

type SubmitResponse struct {
	TicketID   string `json:"ticketId"`
	ReceivedAt string `json:"receivedAt"`
}

var ServiceDesc = rpc.Service(ServiceName, "contact/v1/contact.proto",
	rpc.Method(ServiceName, "Submit", (*Server).Submit),
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

func (s *Server) Submit(ctx context.Context, req *domain.Message) (*SubmitResponse, error) {
	msg, err := s.svc.Submit(ctx, *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "contact: %v", err)
	}
	return &SubmitResponse{TicketID: msg.TicketID, ReceivedAt: msg.ReceivedAt.Format("2006-01-02T15:04:05Z07:00")}, nil
}

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Submit(ctx context.Context, msg domain.Message) (SubmitResponse, error) {
	var out SubmitResponse
	err := c.conn.Invoke(ctx, rpc.FullMethod(ServiceName, "Submit"), &msg, &out)
	return out, err
}
