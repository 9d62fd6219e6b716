package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// CreateWithOrg inserts the user and, when org is non-nil, the owned
	// organization in the same transaction.
	CreateWithOrg(ctx context.Context, user *domain.User, org *domain.Organization) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
