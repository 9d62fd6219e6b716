package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// PortfolioService manages investor↔organization links and answers the access
// question every data-reading operation must ask first.
type PortfolioService interface {
	ListCompanies(ctx context.Context, investorID int64) ([]*domain.Organization, error)
	Connect(ctx context.Context, investorID, orgID int64) error
	Disconnect(ctx context.Context, investorID, orgID int64) error
	// Authorize returns nil when the caller may read orgID's data:
	// investees only their own organization, investors only subscribed ones.
	// Everything else is domain.ErrForbidden.
	Authorize(ctx context.Context, role string, userID, orgID int64) error
}
