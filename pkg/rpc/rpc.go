// Package rpc carries the gRPC plumbing shared by every service: a JSON wire
// codec, a typed method-descriptor helper, client dialing and a logging
// interceptor.
package rpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// ContentSubtype is negotiated as application/grpc+json.
const ContentSubtype = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return ContentSubtype }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Method builds a unary MethodDesc for a typed server method, e.g.
// rpc.Method("mastice.cart.v1.CartService", "AddItem", (*Server).AddItem).
func Method[S any, Req any, Resp any](service, name string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Service assembles a ServiceDesc with no streams.
func Service(name, file string, methods ...grpc.MethodDesc) grpc.ServiceDesc {
	return grpc.ServiceDesc{
		ServiceName: name,
		HandlerType: (*any)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    file,
	}
}

// FullMethod returns the "/service/method" path used by ClientConn.Invoke.
func FullMethod(service, name string) string {
	return "/" + service + "/" + name
}

// Dial opens a client connection that speaks the JSON codec by default.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(ContentSubtype)),
	}
	return grpc.NewClient(addr, append(base, opts...)...)
}

// NewServer returns a grpc.Server with the logging interceptor chained in
// front of any extra interceptors.
func NewServer(log *slog.Logger, interceptors ...grpc.UnaryServerInterceptor) *grpc.Server {
	chain := append([]grpc.UnaryServerInterceptor{LoggingInterceptor(log)}, interceptors...)
	return grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
}

func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("took", time.Since(start)),
		}
		if err != nil {
			log.Warn("grpc call failed", append(attrs, slog.Any("err", err))...)
		} else {
			log.Debug("grpc call", attrs...)
		}
		return resp, err
	}
}
