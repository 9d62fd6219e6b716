package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ingest"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// DatasetService handles upload ingestion and dataset retrieval.
type DatasetService struct {
	repo   ports.DatasetRepository
	logger zerolog.Logger
}

func NewDatasetService(repo ports.DatasetRepository, logger zerolog.Logger) *DatasetService {
	return &DatasetService{repo: repo, logger: logger}
}

// Upload parses and classifies one uploaded file and replaces the stored
// dataset for every category it yields.
func (s *DatasetService) Upload(ctx context.Context, input ports.UploadInput) ([]ports.UploadResult, error) {
	sheets, err := ingest.ParseFile(input.Filename, input.Payload)
	if err != nil {
		return nil, err
	}

	results := make([]ports.UploadResult, 0, len(sheets))
	for _, sheet := range sheets {
		if err := s.repo.Save(ctx, input.OrgID, sheet.Category, sheet.Rows); err != nil {
			return nil, err
		}
		s.logger.Info().
			Int64("org_id", input.OrgID).
			Str("category", string(sheet.Category)).
			Int("rows", len(sheet.Rows)).
			Str("file", input.Filename).
			Msg("dataset stored")
		results = append(results, ports.UploadResult{
			Filename: input.Filename,
			Category: sheet.Category,
			RowCount: len(sheet.Rows),
		})
	}
	return results, nil
}

func (s *DatasetService) List(ctx context.Context, orgID int64) ([]ports.DatasetSummary, error) {
	stored, err := s.repo.All(ctx, orgID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.DatasetSummary, 0, len(stored))
	for _, ds := range stored {
		summaries = append(summaries, ports.DatasetSummary{
			Category:   ds.Category,
			RowCount:   len(ds.Rows),
			UploadedAt: ds.UploadedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Category < summaries[j].Category })
	return summaries, nil
}

func (s *DatasetService) Get(ctx context.Context, orgID int64, category domain.Category) (*domain.Dataset, error) {
	return s.repo.Get(ctx, orgID, category)
}
