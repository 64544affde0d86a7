// Package rpctest runs services on an in-memory listener for tests.
package rpctest

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/mastice-lab/storefront/pkg/logger"
	"github.com/mastice-lab/storefront/pkg/rpc"
)

// Serve starts a server with whatever register installs and returns a
// client connection to it. Both are torn down with the test.
func Serve(t testing.TB, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := rpc.NewServer(logger.Discard())
	register(srv)
	go func() { _ = srv.Serve(lis) }()

	conn, err := rpc.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	return conn
}
