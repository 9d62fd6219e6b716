package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// DatasetRepository defines persistence for uploaded datasets.
type DatasetRepository interface {
	// Save replaces any existing dataset for (org, category) with rows.
	// Replacement is atomic: concurrent saves never leave more than one
	// stored row-set per key.
	Save(ctx context.Context, orgID int64, category domain.Category, rows domain.Rows) error
	// Load returns all stored datasets for the organization keyed by category.
	Load(ctx context.Context, orgID int64) (map[domain.Category]domain.Rows, error)
	// All returns every stored dataset for the organization.
	All(ctx context.Context, orgID int64) ([]*domain.Dataset, error)
	Get(ctx context.Context, orgID int64, category domain.Category) (*domain.Dataset, error)
}
