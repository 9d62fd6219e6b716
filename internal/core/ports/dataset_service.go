package ports

import (
	"context"
	"time"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// UploadInput is one uploaded file as received by the API layer.
type UploadInput struct {
	OrgID    int64
	Filename string
	Payload  []byte
}

// UploadResult describes what one uploaded file was stored as.
type UploadResult struct {
	Filename string
	Category domain.Category
	RowCount int
}

// DatasetSummary is the lightweight listing view (no rows).
type DatasetSummary struct {
	Category   domain.Category
	RowCount   int
	UploadedAt time.Time
}

// DatasetService covers ingestion and retrieval of per-category datasets.
type DatasetService interface {
	// Upload parses, classifies and stores one uploaded file. Spreadsheets
	// may carry several sheets; each sheet is stored as its own category.
	Upload(ctx context.Context, input UploadInput) ([]UploadResult, error)
	List(ctx context.Context, orgID int64) ([]DatasetSummary, error)
	Get(ctx context.Context, orgID int64, category domain.Category) (*domain.Dataset, error)
}
