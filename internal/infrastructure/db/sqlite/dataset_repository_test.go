package sqlite

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

func TestDatasetRepository_RoundTrip(t *testing.T) {
	repo := NewDatasetRepository(testDB(t))
	ctx := context.Background()

	rows := domain.Rows{
		{domain.ColMonth: "Jan", domain.ColRevenue: 100.5, "Note": "first"},
		{domain.ColMonth: "Feb", domain.ColRevenue: 120.0, "Note": nil},
	}
	if err := repo.Save(ctx, 1, domain.CategoryMonthly, rows); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ds, err := repo.Get(ctx, 1, domain.CategoryMonthly)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d", len(ds.Rows))
	}
	if v, ok := domain.Number(ds.Rows[0][domain.ColRevenue]); !ok || v != 100.5 {
		t.Fatalf("revenue = %v", ds.Rows[0][domain.ColRevenue])
	}
	if ds.Rows[0][domain.ColMonth] != "Jan" {
		t.Fatalf("month = %v", ds.Rows[0][domain.ColMonth])
	}
	if ds.UploadedAt.IsZero() {
		t.Fatalf("expected upload timestamp")
	}
}

func TestDatasetRepository_SaveStringifiesUnencodableValues(t *testing.T) {
	repo := NewDatasetRepository(testDB(t))
	ctx := context.Background()

	// NaN never survives ingestion, but a value the JSON encoder rejects must
	// degrade to the stringified form instead of losing the whole row-set.
	rows := domain.Rows{
		{domain.ColMonth: "Jan", domain.ColRevenue: 123.45, "Growth": math.NaN()},
	}
	if err := repo.Save(ctx, 1, domain.CategoryMonthly, rows); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ds, err := repo.Get(ctx, 1, domain.CategoryMonthly)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("rows = %d", len(ds.Rows))
	}
	if v, ok := domain.Number(ds.Rows[0][domain.ColRevenue]); !ok || v != 123.45 {
		t.Fatalf("revenue not recoverable from stringified form: %v", ds.Rows[0][domain.ColRevenue])
	}
	if got := domain.Text(ds.Rows[0]["Growth"]); got != "NaN" {
		t.Fatalf("growth = %q", got)
	}
	if got := domain.Text(ds.Rows[0][domain.ColMonth]); got != "Jan" {
		t.Fatalf("month = %q", got)
	}
}

func TestDatasetRepository_SaveIsIdempotentReplace(t *testing.T) {
	db := testDB(t)
	repo := NewDatasetRepository(db)
	ctx := context.Background()

	first := domain.Rows{{domain.ColRevenue: 1.0}}
	second := domain.Rows{{domain.ColRevenue: 2.0}, {domain.ColRevenue: 3.0}}

	if err := repo.Save(ctx, 1, domain.CategoryMonthly, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.Save(ctx, 1, domain.CategoryMonthly, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	// Exactly one stored row-set per (company, category).
	var n int64
	if err := db.Model(&companyDataRecord{}).
		Where("company_id = ? AND data_type = ?", 1, domain.CategoryMonthly).
		Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}

	ds, err := repo.Get(ctx, 1, domain.CategoryMonthly)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("replace failed, rows = %d", len(ds.Rows))
	}
}

func TestDatasetRepository_ScopedByOrg(t *testing.T) {
	repo := NewDatasetRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, 1, domain.CategoryMonthly, domain.Rows{{domain.ColRevenue: 1.0}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := repo.Get(ctx, 2, domain.CategoryMonthly); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound for other org, got %v", err)
	}

	stored, err := repo.Load(ctx, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("other org must see nothing, got %v", stored)
	}
}

func TestDatasetRepository_LoadAll(t *testing.T) {
	repo := NewDatasetRepository(testDB(t))
	ctx := context.Background()

	if err := repo.Save(ctx, 1, domain.CategoryMonthly, domain.Rows{{domain.ColRevenue: 1.0}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, 1, domain.CategoryQuarterly, domain.Rows{{domain.ColQ3Revenue: 1.0}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored, err := repo.Load(ctx, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stored))
	}
	if _, ok := stored[domain.CategoryMonthly]; !ok {
		t.Fatalf("monthly missing: %v", stored)
	}

	all, err := repo.All(ctx, 1)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(all))
	}
}
