package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	cartgrpc "github.com/mastice-lab/storefront/internal/cart/grpc"
	cgrpc "github.com/mastice-lab/storefront/internal/catalog/grpc"
	checkoutgrpc "github.com/mastice-lab/storefront/internal/checkout/grpc"
	contactgrpc "github.com/mastice-lab/storefront/internal/contact/grpc"
	ordergrpc "github.com/mastice-lab/storefront/internal/order/grpc"
	searchgrpc "github.com/mastice-lab/storefront/internal/search/grpc"
	"github.com/mastice-lab/storefront/pkg/config"
	"github.com/mastice-lab/storefront/pkg/logger"
	"github.com/mastice-lab/storefront/pkg/rpc"
	"github.com/mastice-lab/storefront/pkg/shutdown"
	"github.com/mastice-lab/storefront/pkg/tracing"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "gateway",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	stopTracing, err := tracing.Init(ctx, "gateway", cfg.TracingEnabled, log)
	if err != nil {
		log.Error("tracing init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() { _ = stopTracing(context.Background()) }()

	conn, err := rpc.Dial(cfg.APIAddr, grpc.WithChainUnaryInterceptor(tracing.UnaryClientInterceptor()))
	if err != nil {
		log.Error("api dial failed", slog.Any("err", err), slog.String("addr", cfg.APIAddr))
		os.Exit(1)
	}
	defer conn.Close()
	conn.Connect()

	h := &handlers{
		c:   newClients(conn),
		log: log,
		ready: func() bool {
			s := conn.GetState()
			return s != connectivity.TransientFailure && s != connectivity.Shutdown
		},
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.String("api", cfg.APIAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func newClients(conn grpc.ClientConnInterface) clients {
	return clients{
		catalog:  cgrpc.NewClient(conn),
		cart:     cartgrpc.NewClient(conn),
		checkout: checkoutgrpc.NewClient(conn),
		orders:   ordergrpc.NewClient(conn),
		search:   searchgrpc.NewClient(conn),
		contact:  contactgrpc.NewClient(conn),
	}
}
