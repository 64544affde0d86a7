package static

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mastice-lab/storefront/internal/catalog/app"
	"github.com/mastice-lab/storefront/internal/catalog/domain"
)

//go:embed products.yaml
var productsYAML []byte

// ProductRepo serves the immutable catalog, ordered by id.
type ProductRepo struct {
	products []domain.Product
}

func NewProductRepo() (*ProductRepo, error) {
	return ParseProducts(productsYAML)
}

func ParseProducts(raw []byte) (*ProductRepo, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %d: id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %d", i, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d: negative price", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	slices.SortFunc(products, func(a, b domain.Product) int { return a.ID - b.ID })
	return &ProductRepo{products: products}, nil
}

func (r *ProductRepo) Get(_ context.Context, id int) (domain.Product, error) {
	i, ok := slices.BinarySearchFunc(r.products, id, func(p domain.Product, id int) int { return p.ID - id })
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[i], nil
}

func (r *ProductRepo) List(_ context.Context, f domain.Filter) ([]domain.Product, int, error) {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.TrimSpace(f.Category)

	out := make([]domain.Product, 0, f.Limit)
	var nextCursor int

	for _, p := range r.products {
		if p.ID <= f.Cursor {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		if len(out) == f.Limit {
			// one more match exists past this page
			nextCursor = out[len(out)-1].ID
			break
		}
		out = append(out, p)
	}

	return out, nextCursor, nil
}

func (r *ProductRepo) Categories(_ context.Context) ([]string, error) {
	var out []string
	for _, p := range r.products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func matches(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}
