package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// AuthRepository persists users (and, for investees, their organization).
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) CreateWithOrg(ctx context.Context, user *domain.User, org *domain.Organization) (*domain.User, error) {
	rec := userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		OrgName:      user.OrgName,
		CreatedAt:    user.CreatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		if org != nil {
			company := companyRecord{
				Name:      org.Name,
				OwnerID:   rec.ID,
				CreatedAt: org.CreatedAt,
			}
			if err := tx.Create(&company).Error; err != nil {
				return err
			}
			org.ID = company.ID
			org.OwnerID = rec.ID
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := rec.toDomain()
	return &created, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := rec.toDomain()
	return &user, nil
}

func (rec userRecord) toDomain() domain.User {
	return domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		OrgName:      rec.OrgName,
		CreatedAt:    rec.CreatedAt,
	}
}

// isUniqueViolation covers both gorm's translated error and the raw SQLite
// constraint message.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
