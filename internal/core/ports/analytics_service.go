package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// Metric is one named figure in a category summary.
type Metric struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// TrendPoint is one step of the monthly series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Anomaly flags a trend point whose z-score is 2 or more standard deviations
// from the mean.
type Anomaly struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Z     float64 `json:"z"`
}

// CategorySummary is the single parameterized analysis view. The five
// dashboards share this shape; fields irrelevant to a category stay empty.
type CategorySummary struct {
	Category  domain.Category `json:"category"`
	Title     string          `json:"title"`
	RowCount  int             `json:"row_count"`
	Metrics   []Metric        `json:"metrics"`
	TopRows   domain.Rows     `json:"top_rows,omitempty"`
	Trend     []TrendPoint    `json:"trend,omitempty"`
	Anomalies []Anomaly       `json:"anomalies,omitempty"`
	RiskLevel string          `json:"risk_level,omitempty"`
}

// AnalyticsService computes per-category summaries over stored datasets.
type AnalyticsService interface {
	Summarize(ctx context.Context, orgID int64, category domain.Category) (*CategorySummary, error)
	// SummarizeAll returns summaries for every category the organization has
	// uploaded, in display order.
	SummarizeAll(ctx context.Context, orgID int64) ([]*CategorySummary, error)
}
