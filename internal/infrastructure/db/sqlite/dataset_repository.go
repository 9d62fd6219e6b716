package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// DatasetRepository persists the serialized per-category row-sets.
type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Save replaces the stored dataset for (org, category). Delete and insert run
// in one transaction so a crash or a concurrent save never leaves zero or two
// row-sets for the key.
func (r *DatasetRepository) Save(ctx context.Context, orgID int64, category domain.Category, rows domain.Rows) error {
	content, err := marshalRows(rows)
	if err != nil {
		return fmt.Errorf("serialize dataset: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("company_id = ? AND data_type = ?", orgID, category).
			Delete(&companyDataRecord{}).Error; err != nil {
			return fmt.Errorf("delete dataset: %w", err)
		}
		rec := companyDataRecord{
			CompanyID:   orgID,
			DataType:    string(category),
			DataContent: content,
			UploadedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}
		return nil
	})
}

func (r *DatasetRepository) Load(ctx context.Context, orgID int64) (map[domain.Category]domain.Rows, error) {
	datasets, err := r.All(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Category]domain.Rows, len(datasets))
	for _, ds := range datasets {
		out[ds.Category] = ds.Rows
	}
	return out, nil
}

func (r *DatasetRepository) All(ctx context.Context, orgID int64) ([]*domain.Dataset, error) {
	var recs []companyDataRecord
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", orgID).
		Order("data_type").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	datasets := make([]*domain.Dataset, 0, len(recs))
	for _, rec := range recs {
		ds, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func (r *DatasetRepository) Get(ctx context.Context, orgID int64, category domain.Category) (*domain.Dataset, error) {
	var rec companyDataRecord
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND data_type = ?", orgID, category).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("find dataset: %w", err)
	}
	return rec.toDomain()
}

func (rec companyDataRecord) toDomain() (*domain.Dataset, error) {
	var rows domain.Rows
	if err := json.Unmarshal([]byte(rec.DataContent), &rows); err != nil {
		return nil, fmt.Errorf("deserialize dataset %s: %w", rec.DataType, err)
	}
	return &domain.Dataset{
		OrgID:      rec.CompanyID,
		Category:   domain.Category(rec.DataType),
		Rows:       rows,
		UploadedAt: rec.UploadedAt,
	}, nil
}

// marshalRows serializes rows, retrying once with every value stringified
// when a value slips through ingestion that the encoder rejects.
func marshalRows(rows domain.Rows) (string, error) {
	b, err := json.Marshal(rows)
	if err == nil {
		return string(b), nil
	}

	stringified := make(domain.Rows, len(rows))
	for i, row := range rows {
		safe := make(domain.Row, len(row))
		for col, v := range row {
			if v == nil {
				safe[col] = nil
				continue
			}
			safe[col] = domain.Text(v)
		}
		stringified[i] = safe
	}
	b, err = json.Marshal(stringified)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
