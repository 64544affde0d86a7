package app_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mastice-lab/storefront/internal/cart/app"
	"github.com/mastice-lab/storefront/internal/cart/infra/kvstore"
	"github.com/mastice-lab/storefront/pkg/kv"
	"github.com/mastice-lab/storefront/pkg/logger"
)

type oneProduct struct{}

func (oneProduct) Product(_ context.Context, id int) (app.ProductInfo, error) {
	return app.ProductInfo{ID: id, Name: "Mastice Portfolio#129", Price: 9900000, Colors: []string{"#E8DCC6"}}, nil
}

func newTestService(t *testing.T) (*app.Service, *kvstore.CartRepo) {
	t.Helper()
	repo := kvstore.NewCartRepo(kv.NewMemoryStore(), logger.Discard())
	return app.NewService(repo, oneProduct{}, logger.Discard(), app.Options{}), repo
}

func TestCart_ConcurrentStoreLookup_SingleStore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	shopperID := uuid.NewString()

	const N = 50
	stores := make([]*app.Store, N)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		i := i
		g.Go(func() error {
			st, err := svc.Store(ctx, shopperID)
			stores[i] = st
			return err
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Store failed: %v", err)
	}
	for i, st := range stores {
		if st != stores[0] {
			t.Fatalf("store %d differs from store 0", i)
		}
	}
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	shopperID := uuid.NewString()

	const N = 100
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.AddProduct(gctx, shopperID, 3, "#E8DCC6", 1)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddProduct failed: %v", err)
	}

	cart, err := svc.GetCart(ctx, shopperID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != N {
		t.Fatalf("expected one line with quantity=%d, got %+v", N, cart.Items)
	}

	persisted, err := repo.Load(ctx, shopperID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Quantity != N {
		t.Fatalf("persisted cart diverged: %+v", persisted)
	}
}
