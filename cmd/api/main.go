package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	cartapp "github.com/mastice-lab/storefront/internal/cart/app"
	cartgrpc "github.com/mastice-lab/storefront/internal/cart/grpc"
	cartadapter "github.com/mastice-lab/storefront/internal/cart/infra/adapter"
	cartkv "github.com/mastice-lab/storefront/internal/cart/infra/kvstore"

	catalogapp "github.com/mastice-lab/storefront/internal/catalog/app"
	cgrpc "github.com/mastice-lab/storefront/internal/catalog/grpc"
	cstatic "github.com/mastice-lab/storefront/internal/catalog/infra/static"

	checkoutapp "github.com/mastice-lab/storefront/internal/checkout/app"
	checkoutdomain "github.com/mastice-lab/storefront/internal/checkout/domain"
	checkoutgrpc "github.com/mastice-lab/storefront/internal/checkout/grpc"
	checkoutadapter "github.com/mastice-lab/storefront/internal/checkout/infra/adapter"

	orderapp "github.com/mastice-lab/storefront/internal/order/app"
	ordergrpc "github.com/mastice-lab/storefront/internal/order/grpc"
	orderkv "github.com/mastice-lab/storefront/internal/order/infra/kvstore"
	orderpub "github.com/mastice-lab/storefront/internal/order/infra/publisher"

	contactapp "github.com/mastice-lab/storefront/internal/contact/app"
	contactgrpc "github.com/mastice-lab/storefront/internal/contact/grpc"

	searchapp "github.com/mastice-lab/storefront/internal/search/app"
	searchgrpc "github.com/mastice-lab/storefront/internal/search/grpc"
	sstatic "github.com/mastice-lab/storefront/internal/search/infra/static"

	"github.com/mastice-lab/storefront/pkg/config"
	"github.com/mastice-lab/storefront/pkg/events"
	"github.com/mastice-lab/storefront/pkg/idempotency"
	"github.com/mastice-lab/storefront/pkg/kv"
	"github.com/mastice-lab/storefront/pkg/logger"
	"github.com/mastice-lab/storefront/pkg/rpc"
	"github.com/mastice-lab/storefront/pkg/shutdown"
	"github.com/mastice-lab/storefront/pkg/tracing"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	stopTracing, err := tracing.Init(ctx, "api", cfg.TracingEnabled, log)
	if err != nil {
		log.Error("tracing init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() { _ = stopTracing(context.Background()) }()

	store := mustStore(ctx, cfg, log)
	defer store.Close()

	orderEvents, contactEvents, closeEvents := publishers(cfg, log)
	defer closeEvents()

	// Catalog
	catalogRepo, err := cstatic.NewProductRepo()
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart
	cartRepo := cartkv.NewCartRepo(store, log)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewProductResolver(catalogSvc), log, cartapp.Options{
		CacheSize: cfg.StoreCacheSize,
		CacheTTL:  cfg.StoreCacheTTL,
	})

	// Orders
	orderRepo := orderkv.NewOrderRepo(store, log)
	orderSvc := orderapp.NewService(orderRepo, orderpub.NewOrderEvents(orderEvents), log, orderapp.Options{
		StrictTransitions: cfg.StrictStatusTransitions,
		CacheSize:         cfg.StoreCacheSize,
		CacheTTL:          cfg.StoreCacheTTL,
	})

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	orderWriter := checkoutadapter.NewOrderServiceWriter(orderSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, orderWriter, deduper(store, cfg), log, checkoutapp.Config{
		Shipping: checkoutdomain.ShippingPolicy{
			FreeThreshold: cfg.FreeShippingThreshold,
			Fee:           cfg.ShippingFee,
		},
		Delay:         cfg.CheckoutDelay,
		MaxConcurrent: 10,
	})

	// Search + contact
	docs, err := sstatic.NewDocumentRepo()
	if err != nil {
		log.Error("search documents load failed", slog.Any("err", err))
		os.Exit(1)
	}
	searchSvc := searchapp.NewService(docs)
	contactSvc := contactapp.NewService(contactEvents, log)

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", addr))
		os.Exit(1)
	}

	grpcServer := rpc.NewServer(log, tracing.UnaryServerInterceptor("mastice/api"))
	cgrpc.Register(grpcServer, cgrpc.NewServer(catalogSvc))
	cartgrpc.Register(grpcServer, cartgrpc.NewServer(cartSvc))
	checkoutgrpc.Register(grpcServer, checkoutgrpc.NewServer(checkoutSvc))
	ordergrpc.Register(grpcServer, ordergrpc.NewServer(orderSvc))
	searchgrpc.Register(grpcServer, searchgrpc.NewServer(searchSvc))
	contactgrpc.Register(grpcServer, contactgrpc.NewServer(contactSvc))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("grpc starting", slog.String("addr", addr), slog.String("storage", cfg.StorageDriver))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	if !shutdown.Graceful(10*time.Second, grpcServer.GracefulStop, grpcServer.Stop) {
		log.Warn("graceful stop timeout, forcing stop")
	}

	wg.Wait()
	log.Info("bye")
}

func mustStore(ctx context.Context, cfg config.Config, log *slog.Logger) kv.Store {
	store, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.StorageDriver,
		DataDir:     cfg.DataDir,
		RedisAddr:   cfg.RedisAddr,
		PostgresURL: cfg.PostgresURL,
	})
	if err != nil {
		log.Error("storage open failed", slog.Any("err", err), slog.String("driver", cfg.StorageDriver))
		os.Exit(1)
	}
	return store
}

// deduper shares the Redis connection when storage is Redis so duplicate
// checkouts are caught across api replicas.
func deduper(store kv.Store, cfg config.Config) checkoutapp.Deduper {
	if rs, ok := store.(*kv.RedisStore); ok {
		return idempotency.NewStore(rs.Client(), cfg.IdempotencyTTL)
	}
	return idempotency.NewMemoryStore(cfg.IdempotencyTTL)
}

func publishers(cfg config.Config, log *slog.Logger) (orders, contacts events.Publisher, closeFn func()) {
	if len(cfg.KafkaBrokers) == 0 {
		pub := events.NewLogPublisher(log)
		return pub, pub, func() {}
	}

	w := events.NewWriter(cfg.KafkaBrokers)
	log.Info("kafka publishing enabled", slog.Any("brokers", cfg.KafkaBrokers))
	return events.NewKafkaPublisher(log, w, cfg.OrderTopic, "api"),
		events.NewKafkaPublisher(log, w, cfg.ContactTopic, "api"),
		func() { closeWriter(w, log) }
}

func closeWriter(w *kafka.Writer, log *slog.Logger) {
	if err := w.Close(); err != nil {
		log.Warn("kafka writer close failed", slog.Any("err", err))
	}
}
