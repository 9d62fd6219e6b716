package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// OrgRepository persists organizations and investor subscription links.
type OrgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

func (r *OrgRepository) FindByID(ctx context.Context, orgID int64) (*domain.Organization, error) {
	var rec companyRecord
	err := r.db.WithContext(ctx).First(&rec, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	org := rec.toDomain()
	return &org, nil
}

func (r *OrgRepository) FindByOwner(ctx context.Context, ownerID int64) (*domain.Organization, error) {
	var rec companyRecord
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, fmt.Errorf("find organization by owner: %w", err)
	}
	org := rec.toDomain()
	return &org, nil
}

func (r *OrgRepository) ListSubscribed(ctx context.Context, investorID int64) ([]*domain.Organization, error) {
	var recs []companyRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN investor_companies ic ON ic.company_id = companies.id").
		Where("ic.investor_id = ?", investorID).
		Order("companies.name").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list subscribed organizations: %w", err)
	}

	orgs := make([]*domain.Organization, len(recs))
	for i, rec := range recs {
		org := rec.toDomain()
		orgs[i] = &org
	}
	return orgs, nil
}

func (r *OrgRepository) Subscribe(ctx context.Context, investorID, orgID int64) error {
	rec := investorCompanyRecord{
		InvestorID: investorID,
		CompanyID:  orgID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *OrgRepository) Unsubscribe(ctx context.Context, investorID, orgID int64) error {
	res := r.db.WithContext(ctx).
		Where("investor_id = ? AND company_id = ?", investorID, orgID).
		Delete(&investorCompanyRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (r *OrgRepository) IsSubscribed(ctx context.Context, investorID, orgID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&investorCompanyRecord{}).
		Where("investor_id = ? AND company_id = ?", investorID, orgID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return n > 0, nil
}

func (rec companyRecord) toDomain() domain.Organization {
	return domain.Organization{
		ID:        rec.ID,
		Name:      rec.Name,
		OwnerID:   rec.OwnerID,
		CreatedAt: rec.CreatedAt,
	}
}
