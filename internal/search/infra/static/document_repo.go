package static

import (
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mastice-lab/storefront/internal/search/domain"
)

//go:embed documents.yaml
var documentsYAML []byte

type DocumentRepo struct {
	docs []domain.Document
}

func NewDocumentRepo() (*DocumentRepo, error) {
	return ParseDocuments(documentsYAML)
}

// ParseDocuments keeps file order, which is page order.
func ParseDocuments(raw []byte) (*DocumentRepo, error) {
	var docs []domain.Document
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse search documents: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("document %d: missing id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("document %d: duplicate id %q", i, d.ID)
		}
		if d.Title == "" || d.Target() == "" {
			return nil, fmt.Errorf("document %q: title and section are required", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return &DocumentRepo{docs: docs}, nil
}

// All returns the documents in page order.
func (r *DocumentRepo) All(context.Context) ([]domain.Document, error) {
	return slices.Clone(r.docs), nil
}
