package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// PortfolioService manages investor subscriptions and access checks.
type PortfolioService struct {
	orgs   ports.OrgRepository
	logger zerolog.Logger
}

func NewPortfolioService(orgs ports.OrgRepository, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{orgs: orgs, logger: logger}
}

func (s *PortfolioService) ListCompanies(ctx context.Context, investorID int64) ([]*domain.Organization, error) {
	return s.orgs.ListSubscribed(ctx, investorID)
}

func (s *PortfolioService) Connect(ctx context.Context, investorID, orgID int64) error {
	if _, err := s.orgs.FindByID(ctx, orgID); err != nil {
		return err
	}
	if err := s.orgs.Subscribe(ctx, investorID, orgID); err != nil {
		return err
	}
	s.logger.Info().Int64("investor_id", investorID).Int64("org_id", orgID).Msg("investor connected to organization")
	return nil
}

func (s *PortfolioService) Disconnect(ctx context.Context, investorID, orgID int64) error {
	if err := s.orgs.Unsubscribe(ctx, investorID, orgID); err != nil {
		return err
	}
	s.logger.Info().Int64("investor_id", investorID).Int64("org_id", orgID).Msg("investor disconnected from organization")
	return nil
}

// Authorize enforces the read rules: investees see only their own
// organization, investors only organizations they subscribe to.
func (s *PortfolioService) Authorize(ctx context.Context, role string, userID, orgID int64) error {
	switch role {
	case domain.RoleInvestee:
		org, err := s.orgs.FindByOwner(ctx, userID)
		if err != nil {
			return err
		}
		if org.ID != orgID {
			return domain.ErrForbidden
		}
		return nil
	case domain.RoleInvestor:
		ok, err := s.orgs.IsSubscribed(ctx, userID, orgID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}
