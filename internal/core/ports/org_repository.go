package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// OrgRepository defines persistence for organizations and subscription links.
type OrgRepository interface {
	FindByID(ctx context.Context, orgID int64) (*domain.Organization, error)
	FindByOwner(ctx context.Context, ownerID int64) (*domain.Organization, error)
	// ListSubscribed returns the organizations the investor is linked to.
	ListSubscribed(ctx context.Context, investorID int64) ([]*domain.Organization, error)
	Subscribe(ctx context.Context, investorID, orgID int64) error
	Unsubscribe(ctx context.Context, investorID, orgID int64) error
	IsSubscribed(ctx context.Context, investorID, orgID int64) (bool, error)
}
