package service

import (
	"context"
	"errors"
	"testing"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

func TestDatasetService_Upload_CSV(t *testing.T) {
	repo := newMemDatasetRepo()
	svc := NewDatasetService(repo, testLogger())

	payload := []byte("Month,Revenue\nJan,100\nFeb,120\n")
	results, err := svc.Upload(context.Background(), ports.UploadInput{
		OrgID:    1,
		Filename: "monthly_revenue.csv",
		Payload:  payload,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Category != domain.CategoryMonthly || results[0].RowCount != 2 {
		t.Fatalf("result = %+v", results[0])
	}

	ds, err := repo.Get(context.Background(), 1, domain.CategoryMonthly)
	if err != nil {
		t.Fatalf("dataset not stored: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("stored rows = %d", len(ds.Rows))
	}
}

func TestDatasetService_Upload_ReplacesExisting(t *testing.T) {
	repo := newMemDatasetRepo()
	svc := NewDatasetService(repo, testLogger())
	ctx := context.Background()

	first := []byte("Month,Revenue\nJan,100\n")
	second := []byte("Month,Revenue\nJan,100\nFeb,120\nMar,90\n")

	if _, err := svc.Upload(ctx, ports.UploadInput{OrgID: 1, Filename: "monthly.csv", Payload: first}); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := svc.Upload(ctx, ports.UploadInput{OrgID: 1, Filename: "monthly.csv", Payload: second}); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	ds, err := repo.Get(ctx, 1, domain.CategoryMonthly)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("re-upload must replace, stored rows = %d", len(ds.Rows))
	}
}

func TestDatasetService_Upload_UnsupportedFormat(t *testing.T) {
	svc := NewDatasetService(newMemDatasetRepo(), testLogger())

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		OrgID:    1,
		Filename: "notes.txt",
		Payload:  []byte("hello"),
	})
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDatasetService_List(t *testing.T) {
	repo := newMemDatasetRepo()
	repo.seed(1, domain.CategoryMonthly, domain.Rows{{domain.ColRevenue: 1.0}})
	repo.seed(1, domain.CategoryQuarterly, domain.Rows{{domain.ColQ3Revenue: 1.0}, {domain.ColQ3Revenue: 2.0}})
	svc := NewDatasetService(repo, testLogger())

	summaries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// Sorted by category name.
	if summaries[0].Category != domain.CategoryMonthly || summaries[0].RowCount != 1 {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[1].Category != domain.CategoryQuarterly || summaries[1].RowCount != 2 {
		t.Fatalf("summaries = %+v", summaries)
	}
}
