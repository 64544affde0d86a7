package app

import (
	"context"
	"strings"

	"github.com/mastice-lab/storefront/internal/search/domain"
)

type DocumentRepo interface {
	All(ctx context.Context) ([]domain.Document, error)
}

type Service struct {
	repo DocumentRepo
}

func NewService(repo DocumentRepo) *Service {
	return &Service{repo: repo}
}

// Search returns matching documents in page order. A blank query matches
// nothing; limit <= 0 means no limit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Document{}, nil
	}

	docs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Document{}
	for _, d := range docs {
		if !d.Matches(q) {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
