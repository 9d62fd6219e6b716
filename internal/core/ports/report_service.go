package ports

import "context"

// ReportService generates and retrieves analysis reports.
type ReportService interface {
	// Generate computes summaries over every stored dataset of the
	// organization, asks the responder for an executive summary when one is
	// configured, persists the document and returns it.
	Generate(ctx context.Context, orgID int64, createdBy string) (*Report, error)
	List(ctx context.Context, orgID int64, limit int) ([]*Report, error)
	Get(ctx context.Context, id string) (*Report, error)
}
