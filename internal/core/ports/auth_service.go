package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

type AuthService interface {
	// Register creates a user. For the investee role an organization named
	// orgName is created and owned by the new user.
	Register(ctx context.Context, username, password, role, orgName string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
