package app

import (
	"context"
	"errors"
	"testing"

	"github.com/mastice-lab/storefront/internal/catalog/domain"
)

type fakeRepo struct {
	lastFilter domain.Filter
}

func (r *fakeRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	if id == 7 {
		return domain.Product{ID: 7, Name: "Mastice Portfolio#7"}, nil
	}
	return domain.Product{}, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, f domain.Filter) ([]domain.Product, int, error) {
	r.lastFilter = f
	return nil, 0, nil
}

func (r *fakeRepo) Categories(ctx context.Context) ([]string, error) {
	return []string{"가구"}, nil
}

func TestGetProduct(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("non-positive id -> invalid", func(t *testing.T) {
		_, err := svc.GetProduct(context.Background(), 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		_, err := svc.GetProduct(context.Background(), 8)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("known id", func(t *testing.T) {
		p, err := svc.GetProduct(context.Background(), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Mastice Portfolio#7" {
			t.Fatalf("unexpected product %+v", p)
		}
	})
}

func TestListProductsNormalisesFilter(t *testing.T) {
	cases := []struct {
		name      string
		in        domain.Filter
		wantLimit int
		wantQuery string
	}{
		{"default limit", domain.Filter{}, 20, ""},
		{"limit capped", domain.Filter{Limit: 500}, 100, ""},
		{"query trimmed", domain.Filter{Limit: 5, Query: "  stone "}, 5, "stone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo)
			if _, _, err := svc.ListProducts(context.Background(), tc.in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastFilter.Limit != tc.wantLimit {
				t.Fatalf("limit: want %d, got %d", tc.wantLimit, repo.lastFilter.Limit)
			}
			if repo.lastFilter.Query != tc.wantQuery {
				t.Fatalf("query: want %q, got %q", tc.wantQuery, repo.lastFilter.Query)
			}
		})
	}

	t.Run("negative cursor -> invalid", func(t *testing.T) {
		_, _, err := NewService(&fakeRepo{}).ListProducts(context.Background(), domain.Filter{Cursor: -1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
