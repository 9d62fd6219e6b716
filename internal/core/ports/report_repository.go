package ports

import (
	"context"
	"time"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// Report is a generated analysis document persisted to the report store.
type Report struct {
	ID         string             `json:"id"`
	OrgID      int64              `json:"org_id"`
	OrgName    string             `json:"org_name"`
	CreatedBy  string             `json:"created_by"`
	Summary    string             `json:"summary"`
	AISummary  bool               `json:"ai_summary"`
	Insights   []string           `json:"insights"`
	Sections   []*CategorySummary `json:"sections"`
	Categories []domain.Category  `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ReportRepository defines persistence for generated reports.
type ReportRepository interface {
	Insert(ctx context.Context, report *Report) (string, error)
	FindByID(ctx context.Context, id string) (*Report, error)
	ListByOrg(ctx context.Context, orgID int64, limit int) ([]*Report, error)
}
